package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vocaai/console/internal/store/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	return db.WithContext(ctx).Create(store).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Store, error) {
	var s domain.Store
	err := db.WithContext(ctx).
		Where("id = ?", int64(id)).
		Take(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) FindByHandle(ctx context.Context, db *gorm.DB, handle string) (*domain.Store, error) {
	var s domain.Store
	err := db.WithContext(ctx).
		Where("handle = ?", strings.TrimSpace(handle)).
		Take(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, store *domain.Store) error {
	if store == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE stores
		 SET name = ?, handle = ?, currency = ?, owner_name = ?, owner_phone = ?, updated_at = ?
		 WHERE id = ?`,
		store.Name,
		store.Handle,
		store.Currency,
		store.OwnerName,
		store.OwnerPhone,
		store.UpdatedAt,
		int64(store.ID),
	).Error
}
