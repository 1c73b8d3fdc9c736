package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, store *Store) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Store, error)
	FindByHandle(ctx context.Context, db *gorm.DB, handle string) (*Store, error)
	Update(ctx context.Context, db *gorm.DB, store *Store) error
}
