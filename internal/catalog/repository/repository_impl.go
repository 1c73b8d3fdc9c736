package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/vocaai/console/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, catalog *domain.Catalog) error {
	return db.WithContext(ctx).Create(catalog).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*domain.Catalog, error) {
	var c domain.Catalog
	err := db.WithContext(ctx).
		Where("store_id = ? AND id = ?", int64(storeID), int64(id)).
		Take(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindByStore(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]domain.Catalog, error) {
	var catalogs []domain.Catalog
	err := db.WithContext(ctx).
		Where("store_id = ?", int64(storeID)).
		Order("created_at DESC").
		Find(&catalogs).Error
	if err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, catalog *domain.Catalog) error {
	if catalog == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE catalogs
		 SET name = ?, description = ?, agent_id = ?, main_image = ?, pricing_tiers = ?, is_public = ?, updated_at = ?
		 WHERE id = ? AND store_id = ?`,
		catalog.Name,
		catalog.Description,
		int64(catalog.AgentID),
		catalog.MainImage,
		catalog.Tiers,
		catalog.IsPublic,
		catalog.UpdatedAt,
		int64(catalog.ID),
		int64(catalog.StoreID),
	).Error
}

func (r *repo) UpdateLink(ctx context.Context, db *gorm.DB, id snowflake.ID, link, handle string, isPublic bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE catalogs
		 SET shareable_link = ?, published_handle = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		link,
		handle,
		isPublic,
		int64(id),
	).Error
}

func (r *repo) FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Catalog, error) {
	var c domain.Catalog
	err := db.WithContext(ctx).
		Where("id = ?", int64(id)).
		Take(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
