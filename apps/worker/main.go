package main

import (
	"github.com/belifehq/belife/internal/autodebit"
	"github.com/belifehq/belife/internal/background"
	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/config"
	"github.com/belifehq/belife/internal/contract"
	"github.com/belifehq/belife/internal/customer"
	"github.com/belifehq/belife/internal/insurance"
	"github.com/belifehq/belife/internal/jobs"
	"github.com/belifehq/belife/internal/logger"
	"github.com/belifehq/belife/internal/premium"
	"github.com/belifehq/belife/internal/queue"
	"github.com/belifehq/belife/internal/scheduler"
	"github.com/belifehq/belife/internal/subscription"
	"github.com/belifehq/belife/pkg/db"
	"github.com/belifehq/belife/pkg/redisconn"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// Worker-only process: drains the queue and drives the cron sweeps. No HTTP.
func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		redisconn.Module,
		clock.Module,
		background.Module,

		customer.Module,
		insurance.Module,
		subscription.Module,
		contract.Module,
		premium.Module,
		autodebit.Module,

		queue.Module,
		jobs.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
