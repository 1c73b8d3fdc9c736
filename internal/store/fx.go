package store

import (
	"github.com/vocaai/console/internal/store/repository"
	"github.com/vocaai/console/internal/store/service"
	"go.uber.org/fx"
)

var Module = fx.Module("store.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
