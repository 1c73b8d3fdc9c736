package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vocaai/console/internal/agent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, agent *domain.Agent) error {
	return db.WithContext(ctx).Create(agent).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*domain.Agent, error) {
	var a domain.Agent
	err := db.WithContext(ctx).
		Where("store_id = ? AND id = ?", int64(storeID), int64(id)).
		Take(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]domain.Agent, error) {
	var items []domain.Agent
	err := db.WithContext(ctx).
		Where("store_id = ?", int64(storeID)).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
