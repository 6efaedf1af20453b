package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrewpaige1/flipsnap-api/models"
)

func (s *Store) ListFolders(ctx context.Context, userID uint) ([]models.Folder, error) {
	var folders []models.Folder
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("list folders > %w", err)
	}
	return folders, nil
}

// ListFolderIDs returns the id of every live folder across all users.
func (s *Store) ListFolderIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Folder{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list folder ids > %w", err)
	}
	return ids, nil
}

func (s *Store) GetFolder(ctx context.Context, userID uint, publicID string) (models.Folder, error) {
	var folder models.Folder
	if err := s.db.WithContext(ctx).Where("public_id = ? AND user_id = ?", publicID, userID).First(&folder).Error; err != nil {
		return models.Folder{}, notFound(err)
	}
	return folder, nil
}

func (s *Store) GetFolderByID(ctx context.Context, folderID uint) (models.Folder, error) {
	var folder models.Folder
	if err := s.db.WithContext(ctx).First(&folder, folderID).Error; err != nil {
		return models.Folder{}, notFound(err)
	}
	return folder, nil
}

// CreateFolder stores a new, empty folder. Mastery always starts unset.
func (s *Store) CreateFolder(ctx context.Context, folder *models.Folder) error {
	publicID, err := newPublicID()
	if err != nil {
		return err
	}
	folder.PublicID = publicID
	folder.Mastery = nil

	if err := s.db.WithContext(ctx).Create(folder).Error; err != nil {
		return fmt.Errorf("create folder > %w", err)
	}

	s.bus.Publish(Change{Kind: KindFolderCreated, UserID: folder.UserID, FolderIDs: []uint{folder.ID}})
	return nil
}

type FolderUpdate struct {
	Name        *string
	Description *string
}

func (s *Store) UpdateFolder(ctx context.Context, userID uint, publicID string, update FolderUpdate) (models.Folder, error) {
	folder, err := s.GetFolder(ctx, userID, publicID)
	if err != nil {
		return models.Folder{}, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
		folder.Name = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
		folder.Description = *update.Description
	}
	if len(fields) == 0 {
		return folder, nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", folder.ID).Updates(fields).Error; err != nil {
		return models.Folder{}, fmt.Errorf("update folder > %w", err)
	}

	s.bus.Publish(Change{Kind: KindFolderUpdated, UserID: userID, FolderIDs: []uint{folder.ID}})
	return folder, nil
}

// DeleteFolder detaches the folder's sets and then removes the folder. Sets
// are never deleted with their folder.
func (s *Store) DeleteFolder(ctx context.Context, userID uint, publicID string) error {
	folder, err := s.GetFolder(ctx, userID, publicID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FlashcardSet{}).Where("folder_id = ?", folder.ID).Update("folder_id", nil).Error; err != nil {
			return fmt.Errorf("detach sets > %w", err)
		}
		if err := tx.Delete(&folder).Error; err != nil {
			return fmt.Errorf("delete folder > %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.bus.Publish(Change{Kind: KindFolderDeleted, UserID: userID, FolderIDs: []uint{folder.ID}})
	return nil
}

// UpdateFolderMastery writes only the mastery column. A nil mastery clears it.
func (s *Store) UpdateFolderMastery(ctx context.Context, folderID uint, mastery *float64) error {
	result := s.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", folderID).Update("mastery", mastery)
	if result.Error != nil {
		return fmt.Errorf("update mastery > %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.bus.Publish(Change{Kind: KindFolderMastery, FolderIDs: []uint{folderID}})
	return nil
}
