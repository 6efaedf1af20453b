package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrewpaige1/flipsnap-api/models"
)

// SetSummary is a set together with the number of cards it holds.
type SetSummary struct {
	models.FlashcardSet
	FlashcardCount int
}

func (s *Store) ListSets(ctx context.Context, userID uint) ([]SetSummary, error) {
	var sets []models.FlashcardSet
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list sets > %w", err)
	}
	return s.summarize(ctx, sets)
}

// ListSetsByFolder returns the current members of a folder.
func (s *Store) ListSetsByFolder(ctx context.Context, folderID uint) ([]models.FlashcardSet, error) {
	var sets []models.FlashcardSet
	if err := s.db.WithContext(ctx).Where("folder_id = ?", folderID).Order("id").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("list sets by folder > %w", err)
	}
	return sets, nil
}

func (s *Store) ListSetSummariesByFolder(ctx context.Context, folderID uint) ([]SetSummary, error) {
	sets, err := s.ListSetsByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, sets)
}

func (s *Store) summarize(ctx context.Context, sets []models.FlashcardSet) ([]SetSummary, error) {
	summaries := make([]SetSummary, 0, len(sets))
	if len(sets) == 0 {
		return summaries, nil
	}

	ids := make([]uint, len(sets))
	for i := range sets {
		ids[i] = sets[i].ID
	}
	var rows []struct {
		FlashcardSetID uint
		Count          int
	}
	err := s.db.WithContext(ctx).Model(&models.Flashcard{}).
		Select("flashcard_set_id, count(*) as count").
		Where("flashcard_set_id IN ?", ids).
		Group("flashcard_set_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count flashcards > %w", err)
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.FlashcardSetID] = row.Count
	}

	for _, set := range sets {
		summaries = append(summaries, SetSummary{FlashcardSet: set, FlashcardCount: counts[set.ID]})
	}
	return summaries, nil
}

// GetSet loads a set owned by userID by its public id.
func (s *Store) GetSet(ctx context.Context, userID uint, publicID string) (models.FlashcardSet, error) {
	var set models.FlashcardSet
	err := s.db.WithContext(ctx).Where("public_id = ? AND user_id = ?", publicID, userID).First(&set).Error
	if err != nil {
		return models.FlashcardSet{}, notFound(err)
	}
	return set, nil
}

// CreateSet stores a set and its cards in one transaction.
func (s *Store) CreateSet(ctx context.Context, set *models.FlashcardSet, cards []models.Flashcard) error {
	publicID, err := newPublicID()
	if err != nil {
		return err
	}
	set.PublicID = publicID
	set.Proficiency = 0

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(set).Error; err != nil {
			return fmt.Errorf("create set > %w", err)
		}
		for i := range cards {
			if cards[i].PublicID, err = newPublicID(); err != nil {
				return err
			}
			cards[i].FlashcardSetID = set.ID
			cards[i].UserID = set.UserID
			if err := tx.Create(&cards[i]).Error; err != nil {
				return fmt.Errorf("create flashcard > %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	set.Flashcards = cards

	s.bus.Publish(Change{Kind: KindSetCreated, UserID: set.UserID, SetID: set.ID, FolderIDs: folderIDs(set.FolderID)})
	return nil
}

type SetUpdate struct {
	Title       *string
	Description *string
}

func (s *Store) UpdateSet(ctx context.Context, userID uint, publicID string, update SetUpdate) (models.FlashcardSet, error) {
	set, err := s.GetSet(ctx, userID, publicID)
	if err != nil {
		return models.FlashcardSet{}, err
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
		set.Title = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
		set.Description = *update.Description
	}
	if len(fields) == 0 {
		return set, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.FlashcardSet{}).Where("id = ?", set.ID).Updates(fields).Error; err != nil {
		return models.FlashcardSet{}, fmt.Errorf("update set > %w", err)
	}

	s.bus.Publish(Change{Kind: KindSetUpdated, UserID: userID, SetID: set.ID})
	return set, nil
}

// MoveSet files a set into folderID, or detaches it when folderID is nil.
func (s *Store) MoveSet(ctx context.Context, userID uint, publicID string, folderID *uint) (models.FlashcardSet, error) {
	set, err := s.GetSet(ctx, userID, publicID)
	if err != nil {
		return models.FlashcardSet{}, err
	}
	previous := set.FolderID

	if err := s.db.WithContext(ctx).Model(&models.FlashcardSet{}).Where("id = ?", set.ID).Update("folder_id", folderID).Error; err != nil {
		return models.FlashcardSet{}, fmt.Errorf("move set > %w", err)
	}
	set.FolderID = folderID

	s.bus.Publish(Change{Kind: KindSetMoved, UserID: userID, SetID: set.ID, FolderIDs: folderIDs(previous, folderID)})
	return set, nil
}

// DeleteSet removes a set and its cards.
func (s *Store) DeleteSet(ctx context.Context, userID uint, publicID string) error {
	set, err := s.GetSet(ctx, userID, publicID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flashcard_set_id = ?", set.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return fmt.Errorf("delete flashcards > %w", err)
		}
		if err := tx.Delete(&set).Error; err != nil {
			return fmt.Errorf("delete set > %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.bus.Publish(Change{Kind: KindSetDeleted, UserID: userID, SetID: set.ID, FolderIDs: folderIDs(set.FolderID)})
	return nil
}

// UpdateSetProficiency overwrites the stored proficiency of a set.
func (s *Store) UpdateSetProficiency(ctx context.Context, setID uint, proficiency float64) error {
	var set models.FlashcardSet
	if err := s.db.WithContext(ctx).First(&set, setID).Error; err != nil {
		return notFound(err)
	}
	if err := s.db.WithContext(ctx).Model(&models.FlashcardSet{}).Where("id = ?", setID).Update("proficiency", proficiency).Error; err != nil {
		return fmt.Errorf("update proficiency > %w", err)
	}

	s.bus.Publish(Change{Kind: KindSetProficiency, UserID: set.UserID, SetID: setID, FolderIDs: folderIDs(set.FolderID)})
	return nil
}
