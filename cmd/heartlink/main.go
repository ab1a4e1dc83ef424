package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/config"
	"github.com/heartlink/heartlink/internal/migration"
	"github.com/heartlink/heartlink/internal/observability"
	"github.com/heartlink/heartlink/internal/seed"
	"github.com/heartlink/heartlink/internal/server"
	"github.com/heartlink/heartlink/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
