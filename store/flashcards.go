package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrewpaige1/flipsnap-api/models"
)

// ListFlashcards returns the cards of a set in a stable order.
func (s *Store) ListFlashcards(ctx context.Context, setID uint) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := s.db.WithContext(ctx).Where("flashcard_set_id = ?", setID).Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list flashcards > %w", err)
	}
	return cards, nil
}

func (s *Store) GetFlashcard(ctx context.Context, setID uint, publicID string) (models.Flashcard, error) {
	var card models.Flashcard
	if err := s.db.WithContext(ctx).Where("public_id = ? AND flashcard_set_id = ?", publicID, setID).First(&card).Error; err != nil {
		return models.Flashcard{}, notFound(err)
	}
	return card, nil
}

// AddFlashcards appends cards to an existing set in one transaction.
func (s *Store) AddFlashcards(ctx context.Context, set models.FlashcardSet, cards []models.Flashcard) ([]models.Flashcard, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range cards {
			publicID, err := newPublicID()
			if err != nil {
				return err
			}
			cards[i].PublicID = publicID
			cards[i].FlashcardSetID = set.ID
			cards[i].UserID = set.UserID
			if err := tx.Create(&cards[i]).Error; err != nil {
				return fmt.Errorf("create flashcard > %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

type FlashcardUpdate struct {
	Term       *string
	Definition *string
}

func (s *Store) UpdateFlashcard(ctx context.Context, setID uint, publicID string, update FlashcardUpdate) (models.Flashcard, error) {
	card, err := s.GetFlashcard(ctx, setID, publicID)
	if err != nil {
		return models.Flashcard{}, err
	}
	if update.Term != nil {
		card.Term = *update.Term
	}
	if update.Definition != nil {
		card.Definition = *update.Definition
	}
	if err := s.db.WithContext(ctx).Save(&card).Error; err != nil {
		return models.Flashcard{}, fmt.Errorf("update flashcard > %w", err)
	}
	return card, nil
}

func (s *Store) DeleteFlashcard(ctx context.Context, setID uint, publicID string) error {
	result := s.db.WithContext(ctx).Where("public_id = ? AND flashcard_set_id = ?", publicID, setID).Delete(&models.Flashcard{})
	if result.Error != nil {
		return fmt.Errorf("delete flashcard > %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
