package queue

import (
	"github.com/belifehq/belife/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the redis-backed queue and the worker pool. Handlers are
// registered by the jobs module; Run is invoked from the app entrypoints.
var Module = fx.Module("queue",
	fx.Provide(func(client *redis.Client, cfg config.Config, log *zap.Logger) Queue {
		return NewRedisQueue(client, cfg.Queue, log)
	}),
	fx.Provide(func(client *redis.Client, cfg config.Config, log *zap.Logger) *Worker {
		return NewWorker(client, cfg.Queue, log)
	}),
)
