package widgetconfig

import (
	"github.com/offsetcf/offsetcf/internal/widgetconfig/repository"
	"github.com/offsetcf/offsetcf/internal/widgetconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("widgetconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
