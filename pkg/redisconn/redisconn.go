// Package redisconn provides the shared redis client used by the job queue
// and the scheduler's sweep locks.
package redisconn

import (
	"context"

	"github.com/belifehq/belife/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func New(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func registerHooks(lc fx.Lifecycle, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			return client.Close()
		},
	})
}

// Module provides the redis client.
var Module = fx.Module("redis",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)
