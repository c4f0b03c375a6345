package jobs

import (
	"context"

	"github.com/belifehq/belife/internal/queue"
	"go.uber.org/fx"
)

// Module registers the handlers and runs the worker pool for the process
// lifetime.
var Module = fx.Module("jobs",
	fx.Invoke(Register),
	fx.Invoke(func(lc fx.Lifecycle, worker *queue.Worker) {
		runCtx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				worker.Run(runCtx)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				worker.Wait()
				return nil
			},
		})
	}),
)
