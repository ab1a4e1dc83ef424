package migration

import (
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	"github.com/heartlink/heartlink/internal/config"
	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	needdomain "github.com/heartlink/heartlink/internal/need/domain"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The SQL migrations target postgres. Other dialects (sqlite for
		// local hacking, mysql) fall back to schema sync from the models.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&orphanagedomain.Orphanage{},
				&categorydomain.Category{},
				&needdomain.Need{},
				&donationdomain.Donation{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
