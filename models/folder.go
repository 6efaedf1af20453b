package models

import "gorm.io/gorm"

// Folder groups flashcard sets. Mastery is derived from the member sets and
// is nil while the folder holds no sets.
type Folder struct {
	gorm.Model
	PublicID    string   `gorm:"size:100;uniqueIndex"`
	Name        string   `gorm:"not null;size:100"`
	Description string   `gorm:"size:1000"`
	Mastery     *float64 `gorm:"default:null"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
}
