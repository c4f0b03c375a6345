package autodebit

import (
	"github.com/belifehq/belife/internal/autodebit/domain"
	"github.com/belifehq/belife/internal/autodebit/repository"
	"github.com/belifehq/belife/internal/autodebit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("autodebit",
	fx.Provide(repository.Provide),
	fx.Provide(func() domain.Gateway { return domain.NoopGateway{} }),
	fx.Provide(service.New),
)
