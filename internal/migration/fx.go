package migration

import (
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/config"
	orderdomain "github.com/vocaai/console/internal/order/domain"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

func Run(cfg config.Config, gdb *gorm.DB, log *zap.Logger) error {
	if cfg.DBType == "postgres" {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("driver", "postgres"))
		return nil
	}

	// sqlite/mysql dev handles rely on AutoMigrate, matching the test setup.
	if err := gdb.AutoMigrate(
		&storedomain.Store{},
		&agentdomain.Agent{},
		&catalogdomain.Catalog{},
		&orderdomain.Order{},
	); err != nil {
		return err
	}
	log.Info("schema synchronized", zap.String("driver", cfg.DBType))
	return nil
}
