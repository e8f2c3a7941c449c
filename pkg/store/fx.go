package store

import (
	"github.com/bwmarrin/snowflake"
	"github.com/guardian-io/guardian/internal/clock"
	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/pkg/blob"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("store",
	fx.Provide(ProvideParams),
)

// ProvideParams bundles the collaborators shared by every record store.
func ProvideParams(cfg config.Config, blobs blob.Store, clk clock.Clock, genID *snowflake.Node, log *zap.Logger) Params {
	return Params{
		Blobs:   blobs,
		Clock:   clk,
		GenID:   genID,
		Log:     log,
		Latency: cfg.StoreLatency,
	}
}
