package store

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/flipsnap-api/models"
)

func (s *Store) CreateReviewResult(ctx context.Context, result *models.ReviewResult) error {
	if err := s.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("create review result > %w", err)
	}
	return nil
}

// ListReviewResults returns the latest results of a set, newest first.
func (s *Store) ListReviewResults(ctx context.Context, setID uint, limit int) ([]models.ReviewResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var results []models.ReviewResult
	err := s.db.WithContext(ctx).
		Where("flashcard_set_id = ?", setID).
		Order("played_at desc").Order("id desc").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list review results > %w", err)
	}
	return results, nil
}
