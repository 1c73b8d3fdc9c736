package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/vocaai/console/internal/config"
	"github.com/vocaai/console/internal/migration"
	"github.com/vocaai/console/internal/observability"
	"github.com/vocaai/console/internal/seed"
	"github.com/vocaai/console/internal/server"
	"github.com/vocaai/console/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
