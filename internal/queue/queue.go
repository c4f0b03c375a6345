package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/belifehq/belife/internal/config"
	obsmetrics "github.com/belifehq/belife/internal/observability/metrics"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Queue accepts jobs for asynchronous execution. Submissions are
// fire-and-forget from the caller's perspective: nothing here waits for
// job completion.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	EnqueueBulk(ctx context.Context, jobs []Job) error
}

type redisQueue struct {
	client *redis.Client
	cfg    config.QueueConfig
	log    *zap.Logger
}

// NewRedisQueue returns the redis-list-backed queue.
func NewRedisQueue(client *redis.Client, cfg config.QueueConfig, log *zap.Logger) Queue {
	return &redisQueue{
		client: client,
		cfg:    cfg,
		log:    log.Named("queue"),
	}
}

func (q *redisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.Name, err)
	}
	if err := q.client.LPush(ctx, q.cfg.JobsKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", job.Name, err)
	}
	obsmetrics.Queue().IncEnqueued(string(job.Name), 1)
	return nil
}

// EnqueueBulk pushes all jobs in one pipeline so a sweep's fan-out lands
// atomically: either the whole batch is queued or the error surfaces.
func (q *redisQueue) EnqueueBulk(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}

	payloads := make([]interface{}, 0, len(jobs))
	for _, job := range jobs {
		payload, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshal job %s: %w", job.Name, err)
		}
		payloads = append(payloads, payload)
	}

	if err := q.client.LPush(ctx, q.cfg.JobsKey, payloads...).Err(); err != nil {
		return fmt.Errorf("enqueue bulk of %d jobs: %w", len(jobs), err)
	}
	for _, job := range jobs {
		obsmetrics.Queue().IncEnqueued(string(job.Name), 1)
	}
	return nil
}
