package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrewpaige1/flipsnap-api/models"
)

type SearchResult struct {
	Folders []models.Folder
	Sets    []SetSummary
}

// Search matches keyword case-insensitively against folder names and
// descriptions and set titles and descriptions.
func (s *Store) Search(ctx context.Context, userID uint, keyword string) (SearchResult, error) {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	var folders []models.Folder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("id").
		Find(&folders).Error
	if err != nil {
		return SearchResult{}, fmt.Errorf("search folders > %w", err)
	}

	var sets []models.FlashcardSet
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("id").
		Find(&sets).Error
	if err != nil {
		return SearchResult{}, fmt.Errorf("search sets > %w", err)
	}
	summaries, err := s.summarize(ctx, sets)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{Folders: folders, Sets: summaries}, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
