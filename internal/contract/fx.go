package contract

import (
	"github.com/belifehq/belife/internal/contract/repository"
	"github.com/belifehq/belife/internal/contract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contract",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
