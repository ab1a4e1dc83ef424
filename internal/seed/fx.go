package seed

import (
	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("seed",
	fx.Invoke(func(conn *gorm.DB, node *snowflake.Node, cfg config.Config) error {
		if err := EnsureCategories(conn, node); err != nil {
			return err
		}
		if cfg.SeedEnabled {
			return EnsureDemoOrphanages(conn, node)
		}
		return nil
	}),
)
