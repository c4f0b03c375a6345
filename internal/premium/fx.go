package premium

import (
	"github.com/belifehq/belife/internal/premium/repository"
	"github.com/belifehq/belife/internal/premium/service"
	"go.uber.org/fx"
)

var Module = fx.Module("premium",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
