package auth

import (
	"context"
	"errors"

	"merchant-registry/internal/model"

	"gorm.io/gorm"
)

// Storage abstracts user persistence for the auth flows. Lookups return
// (nil, nil) when no row matches.
type Storage interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

type gormStorage struct {
	db *gorm.DB
}

// NewStorage creates a GORM-backed user storage
func NewStorage(db *gorm.DB) Storage {
	return &gormStorage{db: db}
}

func (s *gormStorage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStorage) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}
