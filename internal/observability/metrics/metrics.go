// Package metrics exposes prometheus instruments for the job queue, the
// sweep scheduler and background tasks.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QueueMetrics captures job queue health signals.
type QueueMetrics struct {
	jobsEnqueued *prometheus.CounterVec
	jobsHandled  *prometheus.CounterVec
	jobsFailed   *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
}

// SweepMetrics captures scheduler sweep outcomes.
type SweepMetrics struct {
	sweepRuns     *prometheus.CounterVec
	sweepSkips    *prometheus.CounterVec
	sweepErrors   *prometheus.CounterVec
	sweepEnqueued *prometheus.CounterVec
}

// BackgroundMetrics counts failed best-effort tasks.
type BackgroundMetrics struct {
	taskFailures *prometheus.CounterVec
}

var (
	registerOnce      sync.Once
	queueMetrics      *QueueMetrics
	sweepMetrics      *SweepMetrics
	backgroundMetrics *BackgroundMetrics
)

// Queue returns the singleton queue metrics registry.
func Queue() *QueueMetrics {
	register()
	return queueMetrics
}

// Sweep returns the singleton sweep metrics registry.
func Sweep() *SweepMetrics {
	register()
	return sweepMetrics
}

// Background returns the singleton background-task metrics registry.
func Background() *BackgroundMetrics {
	register()
	return backgroundMetrics
}

// ResetForTest resets the singletons so tests can swap the default registry.
func ResetForTest() {
	registerOnce = sync.Once{}
	queueMetrics = nil
	sweepMetrics = nil
	backgroundMetrics = nil
}

func register() {
	registerOnce.Do(func() {
		queueMetrics = newQueueMetrics(prometheus.DefaultRegisterer)
		sweepMetrics = newSweepMetrics(prometheus.DefaultRegisterer)
		backgroundMetrics = newBackgroundMetrics(prometheus.DefaultRegisterer)
	})
}

func newQueueMetrics(registerer prometheus.Registerer) *QueueMetrics {
	m := &QueueMetrics{
		jobsEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_queue_jobs_enqueued_total",
			Help: "Jobs pushed onto the queue by name.",
		}, []string{"job"}),
		jobsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_queue_jobs_handled_total",
			Help: "Jobs completed by the worker pool by name.",
		}, []string{"job"}),
		jobsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_queue_jobs_failed_total",
			Help: "Jobs whose handler returned an error.",
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "belife_queue_job_duration_seconds",
			Help:    "Handler latency by job name.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"job"}),
	}
	registerer.MustRegister(m.jobsEnqueued, m.jobsHandled, m.jobsFailed, m.jobDuration)
	return m
}

func newSweepMetrics(registerer prometheus.Registerer) *SweepMetrics {
	m := &SweepMetrics{
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_sweep_runs_total",
			Help: "Scheduled sweep executions by sweep name.",
		}, []string{"sweep"}),
		sweepSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_sweep_skips_total",
			Help: "Sweeps that found no eligible work or lost the sweep lock.",
		}, []string{"sweep", "reason"}),
		sweepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_sweep_errors_total",
			Help: "Sweeps that ended with an error.",
		}, []string{"sweep"}),
		sweepEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_sweep_jobs_enqueued_total",
			Help: "Jobs fanned out by scheduled sweeps.",
		}, []string{"sweep"}),
	}
	registerer.MustRegister(m.sweepRuns, m.sweepSkips, m.sweepErrors, m.sweepEnqueued)
	return m
}

func newBackgroundMetrics(registerer prometheus.Registerer) *BackgroundMetrics {
	m := &BackgroundMetrics{
		taskFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "belife_background_task_failures_total",
			Help: "Best-effort background tasks that failed.",
		}, []string{"task"}),
	}
	registerer.MustRegister(m.taskFailures)
	return m
}

func (m *QueueMetrics) IncEnqueued(job string, n int) {
	m.jobsEnqueued.WithLabelValues(job).Add(float64(n))
}

func (m *QueueMetrics) IncHandled(job string) {
	m.jobsHandled.WithLabelValues(job).Inc()
}

func (m *QueueMetrics) IncFailed(job string) {
	m.jobsFailed.WithLabelValues(job).Inc()
}

func (m *QueueMetrics) ObserveDuration(job string, d time.Duration) {
	m.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}

func (m *SweepMetrics) IncRun(sweep string) {
	m.sweepRuns.WithLabelValues(sweep).Inc()
}

func (m *SweepMetrics) IncSkip(sweep, reason string) {
	m.sweepSkips.WithLabelValues(sweep, reason).Inc()
}

func (m *SweepMetrics) IncError(sweep string) {
	m.sweepErrors.WithLabelValues(sweep).Inc()
}

func (m *SweepMetrics) AddEnqueued(sweep string, n int) {
	m.sweepEnqueued.WithLabelValues(sweep).Add(float64(n))
}

func (m *BackgroundMetrics) IncTaskFailure(task string) {
	m.taskFailures.WithLabelValues(task).Inc()
}
