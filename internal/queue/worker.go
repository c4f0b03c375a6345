package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/belifehq/belife/internal/config"
	obsmetrics "github.com/belifehq/belife/internal/observability/metrics"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler processes one job. Returning an error marks the job failed;
// the worker never retries by itself.
type Handler func(ctx context.Context, job Job) error

// Worker drains the queue with a bounded pool of goroutines and
// dispatches jobs by name to their registered handlers.
type Worker struct {
	client   *redis.Client
	cfg      config.QueueConfig
	log      *zap.Logger
	handlers map[JobName]Handler
	wg       sync.WaitGroup
}

func NewWorker(client *redis.Client, cfg config.QueueConfig, log *zap.Logger) *Worker {
	return &Worker{
		client:   client,
		cfg:      cfg,
		log:      log.Named("worker"),
		handlers: make(map[JobName]Handler),
	}
}

// Register binds a handler to a job name. Must be called before Run.
func (w *Worker) Register(name JobName, handler Handler) {
	w.handlers[name] = handler
}

// Run starts the pool and blocks new slot creation; it returns immediately
// while the pool drains in the background until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	concurrency := w.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	for i := 0; i < concurrency; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.loop(ctx)
		}()
	}
	w.log.Info("worker started", zap.Int("concurrency", concurrency))
}

// Wait blocks until every worker goroutine has exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		values, err := w.client.BRPop(ctx, w.cfg.PopTimeout, w.cfg.JobsKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Warn("queue pop failed", zap.Error(err))
			continue
		}
		if len(values) < 2 {
			continue
		}

		w.process(ctx, values[1])
	}
}

func (w *Worker) process(ctx context.Context, payload string) {
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		w.log.Error("discarding malformed job payload", zap.Error(err))
		return
	}

	// A panicking handler is a failed job: counted, logged with the job
	// identity and retained on the failed list like any other failure.
	defer func() {
		if rec := recover(); rec != nil {
			obsmetrics.Queue().IncFailed(string(job.Name))
			w.log.Error("job handler panicked",
				zap.String("job", string(job.Name)),
				zap.String("job_id", job.ID),
				zap.Any("panic", rec),
			)
			w.recordFailure(payload)
		}
	}()

	handler, ok := w.handlers[job.Name]
	if !ok {
		w.log.Error("no handler registered for job", zap.String("job", string(job.Name)), zap.String("job_id", job.ID))
		return
	}

	w.log.Info("processing job", zap.String("job", string(job.Name)), zap.String("job_id", job.ID))

	start := time.Now()
	err := handler(ctx, job)
	obsmetrics.Queue().ObserveDuration(string(job.Name), time.Since(start))

	if err != nil {
		obsmetrics.Queue().IncFailed(string(job.Name))
		w.log.Error("job failed",
			zap.String("job", string(job.Name)),
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
		w.recordFailure(payload)
		return
	}

	obsmetrics.Queue().IncHandled(string(job.Name))
	w.log.Info("job completed", zap.String("job", string(job.Name)), zap.String("job_id", job.ID))
}

// recordFailure retains the failed payload on a capped list for manual
// requeue; completed jobs are not retained at all.
func (w *Worker) recordFailure(payload string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.client.LPush(ctx, w.cfg.FailedKey, payload).Err(); err != nil {
		w.log.Warn("unable to record failed job", zap.Error(err))
		return
	}
	if w.cfg.FailedRetention > 0 {
		if err := w.client.LTrim(ctx, w.cfg.FailedKey, 0, w.cfg.FailedRetention-1).Err(); err != nil {
			w.log.Warn("unable to trim failed job list", zap.Error(err))
		}
	}
}
