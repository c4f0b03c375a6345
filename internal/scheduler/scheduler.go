// Package scheduler drives the time-triggered premium sweeps: the monthly
// auto-debit fan-out and the retry pass over failed debits. It only selects
// work and enqueues jobs; collection itself happens in the worker pool.
package scheduler

import (
	"context"
	"fmt"

	autodebitdomain "github.com/belifehq/belife/internal/autodebit/domain"
	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/config"
	obsmetrics "github.com/belifehq/belife/internal/observability/metrics"
	"github.com/belifehq/belife/internal/queue"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sweepAutoDebit = "autodebit"
	sweepRetry     = "retry"
)

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	Locker   *SweepLocker
	SubSvc   subscriptiondomain.Service
	DebitSvc autodebitdomain.Service
	Queue    queue.Queue
}

// Scheduler owns the cron entries for both sweeps. Constructed once at
// startup; nothing else holds scheduling state.
type Scheduler struct {
	cfg      config.SchedulerConfig
	log      *zap.Logger
	clock    clock.Clock
	locker   *SweepLocker
	subSvc   subscriptiondomain.Service
	debitSvc autodebitdomain.Service
	queue    queue.Queue
	cron     *cron.Cron
}

func New(p Params) *Scheduler {
	log := p.Log.Named("scheduler")
	return &Scheduler{
		cfg:      p.Config.Scheduler,
		log:      log,
		clock:    p.Clock,
		locker:   p.Locker,
		subSvc:   p.SubSvc,
		debitSvc: p.DebitSvc,
		queue:    p.Queue,
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.PrintfLogger(zap.NewStdLog(log))),
		)),
	}
}

// Start registers both sweeps and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.AutoDebitCron, func() {
		s.runSweep(sweepAutoDebit, s.RunMonthlySweep)
	}); err != nil {
		return fmt.Errorf("register auto-debit sweep: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.RetryCron, func() {
		s.runSweep(sweepRetry, s.RunRetrySweep)
	}); err != nil {
		return fmt.Errorf("register retry sweep: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("autodebit_cron", s.cfg.AutoDebitCron),
		zap.String("retry_cron", s.cfg.RetryCron),
	)
	return nil
}

// Stop halts the cron loop; already-running sweeps finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runSweep(name string, fn func(ctx context.Context) error) {
	if err := fn(context.Background()); err != nil {
		obsmetrics.Sweep().IncError(name)
		s.log.Error("sweep failed", zap.String("sweep", name), zap.Error(err))
	}
}

// RunMonthlySweep selects every paid auto-debit subscription and fans each
// out as one autoDebitPremiums job. Safe to call while a previous sweep's
// jobs are still draining: payloads de-duplicate per billing cycle.
func (s *Scheduler) RunMonthlySweep(ctx context.Context) error {
	month := s.clock.Now().Format(autodebitdomain.CycleMonthLayout)

	release, acquired, err := s.acquire(ctx, sweepAutoDebit, month)
	if err != nil {
		return err
	}
	if !acquired {
		return nil
	}
	defer release()

	subs, err := s.subSvc.ListAutoDebitSuccessful(ctx)
	if err != nil {
		return fmt.Errorf("select auto-debit subscriptions: %w", err)
	}
	if len(subs) == 0 {
		obsmetrics.Sweep().IncSkip(sweepAutoDebit, "empty")
		s.log.Info("auto-debit sweep found no eligible subscriptions", zap.String("month", month))
		return nil
	}

	jobs := make([]queue.Job, 0, len(subs))
	for _, sub := range subs {
		jobs = append(jobs, queue.NewAutoDebitJob(sub.PhoneNumber, sub.ID, sub.PremiumPlan, month))
	}
	if err := s.queue.EnqueueBulk(ctx, jobs); err != nil {
		return fmt.Errorf("enqueue auto-debit jobs: %w", err)
	}

	obsmetrics.Sweep().IncRun(sweepAutoDebit)
	obsmetrics.Sweep().AddEnqueued(sweepAutoDebit, len(jobs))
	s.log.Info("auto-debit sweep enqueued",
		zap.String("month", month),
		zap.Int("jobs", len(jobs)),
	)
	return nil
}

// RunRetrySweep re-enqueues debits that failed in the previous cycle and
// marks their attempts RETRYING.
func (s *Scheduler) RunRetrySweep(ctx context.Context) error {
	now := s.clock.Now()
	month := now.Format(autodebitdomain.CycleMonthLayout)
	previousCycle := now.AddDate(0, -1, 0).Format(autodebitdomain.CycleMonthLayout)

	release, acquired, err := s.acquire(ctx, sweepRetry, month)
	if err != nil {
		return err
	}
	if !acquired {
		return nil
	}
	defer release()

	attempts, err := s.debitSvc.FailedAttempts(ctx, previousCycle)
	if err != nil {
		return fmt.Errorf("select failed debit attempts: %w", err)
	}
	if len(attempts) == 0 {
		obsmetrics.Sweep().IncSkip(sweepRetry, "empty")
		s.log.Info("retry sweep found no failed debits", zap.String("cycle", previousCycle))
		return nil
	}

	jobs := make([]queue.Job, 0, len(attempts))
	ids := make([]snowflake.ID, 0, len(attempts))
	for _, attempt := range attempts {
		// The retry settles the cycle the debit originally failed in, not
		// the month the retry happens to run in.
		jobs = append(jobs, queue.NewAutoDebitJob(attempt.PhoneNumber, attempt.SubscriptionID, attempt.Amount, attempt.CycleMonth))
		ids = append(ids, attempt.ID)
	}
	if err := s.queue.EnqueueBulk(ctx, jobs); err != nil {
		return fmt.Errorf("enqueue retry jobs: %w", err)
	}
	if err := s.debitSvc.MarkRetrying(ctx, ids); err != nil {
		return fmt.Errorf("mark attempts retrying: %w", err)
	}

	obsmetrics.Sweep().IncRun(sweepRetry)
	obsmetrics.Sweep().AddEnqueued(sweepRetry, len(jobs))
	s.log.Info("retry sweep enqueued",
		zap.String("cycle", previousCycle),
		zap.Int("jobs", len(jobs)),
	)
	return nil
}

// acquire takes the (sweep, month) lock. A nil locker (no redis, as in
// tests) always acquires.
func (s *Scheduler) acquire(ctx context.Context, sweep, month string) (func(), bool, error) {
	if s.locker == nil {
		return func() {}, true, nil
	}

	key := fmt.Sprintf("belife:sweep:%s:%s", sweep, month)
	token, ok, err := s.locker.TryLock(ctx, key, s.cfg.LockTTL)
	if err != nil {
		return nil, false, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !ok {
		obsmetrics.Sweep().IncSkip(sweep, "locked")
		s.log.Info("sweep already claimed by another instance",
			zap.String("sweep", sweep),
			zap.String("month", month),
		)
		return nil, false, nil
	}

	release := func() {
		if err := s.locker.Release(context.Background(), key, token); err != nil {
			s.log.Warn("unable to release sweep lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}
