package merchant

import (
	"github.com/offsetcf/offsetcf/internal/merchant/repository"
	"github.com/offsetcf/offsetcf/internal/merchant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("merchant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
