// Package background runs best-effort tasks detached from the caller.
// Failures never reach the caller; they are logged and counted instead.
package background

import (
	"context"
	"sync"
	"time"

	obsmetrics "github.com/belifehq/belife/internal/observability/metrics"
	"go.uber.org/zap"
)

const defaultTaskTimeout = 30 * time.Second

type Runner struct {
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{
		log:     log.Named("background"),
		timeout: defaultTaskTimeout,
	}
}

// Go runs fn detached from the caller. The task gets its own bounded
// context; its error, if any, is logged under the task name.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				obsmetrics.Background().IncTaskFailure(name)
				r.log.Error("background task panicked", zap.String("task", name), zap.Any("panic", rec))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			obsmetrics.Background().IncTaskFailure(name)
			r.log.Error("background task failed", zap.String("task", name), zap.Error(err))
		}
	}()
}

// Wait blocks until all in-flight tasks complete. Used by tests and shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}
