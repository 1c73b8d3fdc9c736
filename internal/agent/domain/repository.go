package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, agent *Agent) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*Agent, error)
	FindAll(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]Agent, error)
}
