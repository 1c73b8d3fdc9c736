package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, catalog *Catalog) error
	FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*Catalog, error)
	FindByStore(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]Catalog, error)
	Update(ctx context.Context, db *gorm.DB, catalog *Catalog) error

	// UpdateLink persists only the publication fields so a failed link
	// write cannot clobber unrelated columns on retry.
	UpdateLink(ctx context.Context, db *gorm.DB, id snowflake.ID, link, handle string, isPublic bool) error

	// FindPublicByID looks a catalog up without store scoping. Public
	// pages have no authenticated store context.
	FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Catalog, error)
}
