package blob

import (
	"context"
	"fmt"

	"github.com/guardian-io/guardian/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("blob",
	fx.Provide(Provide),
)

// Provide opens the blob backend selected by configuration.
func Provide(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemoryStore(), nil
	case "badger":
		store, err := OpenBadger(DefaultBadgerConfig(cfg.StorePath))
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				_ = ctx
				return store.Close()
			},
		})
		log.Info("blob backend opened",
			zap.String("backend", "badger"),
			zap.String("path", cfg.StorePath),
		)
		return store, nil
	case "sqlite", "postgres", "mysql":
		store, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		log.Info("blob backend opened",
			zap.String("backend", cfg.StoreBackend),
		)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported %s backend", cfg.StoreBackend)
	}
}
