package optin

import (
	"github.com/offsetcf/offsetcf/internal/optin/repository"
	"github.com/offsetcf/offsetcf/internal/optin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("optin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
