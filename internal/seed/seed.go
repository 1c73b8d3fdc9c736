// Package seed bootstraps a demo store so a fresh dev environment has
// something to click on. It never runs unless SEED_DEMO_DATA is set.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/config"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoStoreName   = "Demo Store"
	demoStoreHandle = "demo-store"
	demoAgentName   = "Sales Assistant"
	demoCatalogName = "Starter Tea Pack"
)

// EnsureDemoData seeds a store, an agent and one unpublished catalog.
// It is idempotent on the store handle.
func EnsureDemoData(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing storedomain.Store
		err := tx.WithContext(ctx).
			Where("handle = ?", demoStoreHandle).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		store := storedomain.Store{
			ID:        node.Generate(),
			Name:      demoStoreName,
			Handle:    demoStoreHandle,
			Currency:  "NGN",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&store).Error; err != nil {
			return err
		}

		agent := agentdomain.Agent{
			ID:        node.Generate(),
			StoreID:   store.ID,
			Name:      demoAgentName,
			Channel:   "whatsapp",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&agent).Error; err != nil {
			return err
		}

		catalog := catalogdomain.Catalog{
			ID:          node.Generate(),
			StoreID:     store.ID,
			AgentID:     agent.ID,
			Name:        demoCatalogName,
			Description: "A sample catalog to explore the console with.",
			Tiers: []catalogdomain.PricingTier{
				{Packs: 1, Price: 17000},
				{Packs: 3, Price: 45000, FreeDelivery: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.WithContext(ctx).Create(&catalog).Error
	})
}

func runSeed(cfg config.Config, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	if !cfg.SeedDemoData {
		return nil
	}
	if err := EnsureDemoData(db, node); err != nil {
		return err
	}
	log.Info("demo data ensured", zap.String("store_handle", demoStoreHandle))
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(runSeed),
)
