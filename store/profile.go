package store

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/flipsnap-api/models"
)

// Profile is a user's account summary.
type Profile struct {
	models.User
	SetCount     int64
	FolderCount  int64
	ReviewCount  int64
	LastReviewed *models.ReviewResult `json:",omitempty"`
}

func (s *Store) GetProfile(ctx context.Context, userID uint) (Profile, error) {
	var p Profile
	if err := s.db.WithContext(ctx).First(&p.User, userID).Error; err != nil {
		return Profile{}, notFound(err)
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&models.FlashcardSet{}).Where("user_id = ?", userID).Count(&p.SetCount).Error; err != nil {
		return Profile{}, fmt.Errorf("count sets > %w", err)
	}
	if err := db.Model(&models.Folder{}).Where("user_id = ?", userID).Count(&p.FolderCount).Error; err != nil {
		return Profile{}, fmt.Errorf("count folders > %w", err)
	}
	if err := db.Model(&models.ReviewResult{}).Where("user_id = ?", userID).Count(&p.ReviewCount).Error; err != nil {
		return Profile{}, fmt.Errorf("count reviews > %w", err)
	}

	if p.ReviewCount > 0 {
		var last models.ReviewResult
		err := db.Where("user_id = ?", userID).Order("played_at desc").Order("id desc").First(&last).Error
		if err != nil {
			return Profile{}, fmt.Errorf("load last review > %w", err)
		}
		p.LastReviewed = &last
	}
	return p, nil
}
