package review

import (
	"context"

	"github.com/andrewpaige1/flipsnap-api/models"
)

//go:generate mockgen -source=store.go -destination=../mocks/review/mock_store.go -package=mock_review

// Store is the persistence the engine needs.
type Store interface {
	GetSet(ctx context.Context, userID uint, publicID string) (models.FlashcardSet, error)
	ListFlashcards(ctx context.Context, setID uint) ([]models.Flashcard, error)
	UpdateSetProficiency(ctx context.Context, setID uint, proficiency float64) error
	CreateReviewResult(ctx context.Context, result *models.ReviewResult) error
}
