package scheduler

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Module provides the scheduler and ties its cron loop to the fx lifecycle.
var Module = fx.Module("scheduler",
	fx.Provide(func(client *redis.Client) *SweepLocker {
		return NewSweepLocker(client)
	}),
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Scheduler) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return s.Start()
			},
			OnStop: func(context.Context) error {
				s.Stop()
				return nil
			},
		})
	}),
)
