package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/offsetcf/offsetcf/internal/clock"
	"github.com/offsetcf/offsetcf/internal/config"
	"github.com/offsetcf/offsetcf/internal/logger"
	"github.com/offsetcf/offsetcf/internal/migration"
	"github.com/offsetcf/offsetcf/internal/observability"
	"github.com/offsetcf/offsetcf/internal/server"
	"github.com/offsetcf/offsetcf/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP transport plus the domain modules it serves
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
