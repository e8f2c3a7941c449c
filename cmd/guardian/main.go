package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/guardian-io/guardian/internal/clock"
	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/internal/observability"
	"github.com/guardian-io/guardian/internal/server"
	"github.com/guardian-io/guardian/pkg/blob"
	"github.com/guardian-io/guardian/pkg/store"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		blob.Module,
		store.Module,
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
