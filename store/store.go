// Package store is the gorm-backed repository for users, sets, flashcards,
// folders and review results. Every mutation is published on the change bus
// after it commits.
package store

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flipsnap-api/models"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	db  *gorm.DB
	bus *Bus
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, bus: NewBus()}
}

// Subscribe registers for change notifications. The returned func cancels
// the subscription and closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan Change, func()) {
	return s.bus.Subscribe(buffer)
}

// FindOrCreateUser loads the user for an auth subject, creating the row on
// first sight and refreshing a changed nickname.
func (s *Store) FindOrCreateUser(ctx context.Context, subject, nickname string) (models.User, bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("auth0_id = ?", subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Auth0ID: subject, Nickname: nickname}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return models.User{}, false, fmt.Errorf("create user > %w", err)
		}
		return user, true, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user > %w", err)
	}

	if nickname != "" && user.Nickname != nickname {
		if err := s.db.WithContext(ctx).Model(&user).Update("nickname", nickname).Error; err != nil {
			return models.User{}, false, fmt.Errorf("update nickname > %w", err)
		}
	}
	return user, false, nil
}

func newPublicID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("gonanoid.New() > %w", err)
	}
	return id, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
