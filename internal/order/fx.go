package order

import (
	"github.com/vocaai/console/internal/order/repository"
	"github.com/vocaai/console/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
