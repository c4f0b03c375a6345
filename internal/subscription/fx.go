package subscription

import (
	"github.com/belifehq/belife/internal/subscription/repository"
	"github.com/belifehq/belife/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
