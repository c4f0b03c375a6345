package background

import "go.uber.org/fx"

var Module = fx.Module("background",
	fx.Provide(NewRunner),
)
