package store

import (
	"context"
	"errors"
	"fmt"

	"coralbay/models"

	"gorm.io/gorm"
)

func (s *Store) FindAdmin(ctx context.Context, username string) (models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, fmt.Errorf("admin %q: %w", username, models.ErrNotFound)
		}
		return models.Admin{}, err
	}
	return admin, nil
}

func (s *Store) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}
