package models

import (
	"gorm.io/gorm"
)

// FlashcardSet represents a collection of flashcards
type FlashcardSet struct {
	gorm.Model
	PublicID    string `gorm:"size:100;uniqueIndex"`
	Title       string `gorm:"not null;size:100"`
	Description string `gorm:"size:1000"`

	// FolderID is nil for unfiled sets.
	FolderID *uint  `gorm:"index"`
	Folder   Folder `gorm:"foreignKey:FolderID" json:"-"`

	// Proficiency is the score of the latest completed review, 0-100.
	Proficiency float64 `gorm:"not null;default:0"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Flashcards []Flashcard `gorm:"foreignKey:FlashcardSetID" json:",omitempty"`
}
