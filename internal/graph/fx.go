package graph

import (
	"context"

	"github.com/guardian-io/guardian/internal/graph/live"
	"go.uber.org/fx"
)

var Module = fx.Module("graph",
	fx.Provide(
		live.NewHub,
		NewManager,
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			m.Shutdown()
			return nil
		},
	})
}
