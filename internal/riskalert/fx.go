package riskalert

import (
	"github.com/guardian-io/guardian/internal/riskalert/service"
	"go.uber.org/fx"
)

var Module = fx.Module("riskalert.service",
	fx.Provide(service.New),
)
