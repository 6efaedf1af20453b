package models

import (
	"gorm.io/gorm"
)

// Flashcard represents an individual flashcard
type Flashcard struct {
	gorm.Model
	PublicID   string `gorm:"size:100;uniqueIndex"`
	Term       string `gorm:"not null;size:200"`
	Definition string `gorm:"not null;size:1000"`

	FlashcardSetID uint         `gorm:"not null;index"`
	FlashcardSet   FlashcardSet `gorm:"foreignKey:FlashcardSetID" json:"-"`
	UserID         uint         `gorm:"not null;index"`
}
