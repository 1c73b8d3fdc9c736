package catalog

import (
	"github.com/vocaai/console/internal/catalog/repository"
	"github.com/vocaai/console/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
