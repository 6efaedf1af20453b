package models

import (
	"time"
)

// ReviewResult records one completed play-through of a flashcard set.
type ReviewResult struct {
	ID                 uint         `gorm:"primaryKey"`
	UserID             uint         `gorm:"not null;index"`
	User               User         `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FlashcardSetID     uint         `gorm:"not null;index"`
	FlashcardSet       FlashcardSet `gorm:"foreignKey:FlashcardSetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	KnowCount          int          `gorm:"not null"`
	StillLearningCount int          `gorm:"not null"`
	TotalCards         int          `gorm:"not null"`
	Proficiency        float64      `gorm:"not null"`
	PlayedAt           time.Time    `gorm:"autoCreateTime"`
}
