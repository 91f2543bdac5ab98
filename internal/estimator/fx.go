package estimator

import (
	"github.com/offsetcf/offsetcf/internal/estimator/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estimator.service",
	fx.Provide(service.New),
)
