package insurance

import (
	"github.com/belifehq/belife/internal/insurance/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("insurance",
	fx.Provide(repository.Provide),
)
