package agent

import (
	"github.com/vocaai/console/internal/agent/repository"
	"github.com/vocaai/console/internal/agent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agent.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
