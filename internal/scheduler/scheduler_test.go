package scheduler

import (
	"context"
	"testing"
	"time"

	autodebitdomain "github.com/belifehq/belife/internal/autodebit/domain"
	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/config"
	"github.com/belifehq/belife/internal/queue"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubscriptionService struct {
	subscriptiondomain.Service

	eligible []subscriptiondomain.Subscription
}

func (s *stubSubscriptionService) ListAutoDebitSuccessful(_ context.Context) ([]subscriptiondomain.Subscription, error) {
	return s.eligible, nil
}

type stubDebitService struct {
	autodebitdomain.Service

	failed      []autodebitdomain.DebitAttempt
	failedCycle string
	retryingIDs []snowflake.ID
}

func (s *stubDebitService) FailedAttempts(_ context.Context, cycleMonth string) ([]autodebitdomain.DebitAttempt, error) {
	s.failedCycle = cycleMonth
	return s.failed, nil
}

func (s *stubDebitService) MarkRetrying(_ context.Context, ids []snowflake.ID) error {
	s.retryingIDs = ids
	return nil
}

func newTestScheduler(subSvc subscriptiondomain.Service, debitSvc autodebitdomain.Service, q queue.Queue, now time.Time) *Scheduler {
	return New(Params{
		Config: config.Config{
			Scheduler: config.SchedulerConfig{
				AutoDebitCron: "0 0 27 * *",
				RetryCron:     "0 0 1,5 * *",
				LockTTL:       time.Hour,
			},
		},
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(now),
		Locker:   nil,
		SubSvc:   subSvc,
		DebitSvc: debitSvc,
		Queue:    q,
	})
}

func TestRunMonthlySweep_FansOutEligibleSubscriptions(t *testing.T) {
	subSvc := &stubSubscriptionService{
		eligible: []subscriptiondomain.Subscription{
			{ID: 101, PhoneNumber: "0501020304", PremiumPlan: 5000},
			{ID: 102, PhoneNumber: "0507080910", PremiumPlan: 10000},
		},
	}
	fakeQueue := queue.NewFakeQueue()
	now := time.Date(2024, time.March, 27, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(subSvc, &stubDebitService{}, fakeQueue, now)

	require.NoError(t, s.RunMonthlySweep(context.Background()))

	jobs := fakeQueue.ByName(queue.JobAutoDebitPremiums)
	require.Len(t, jobs, 2)
	assert.Equal(t, "0501020304", jobs[0].Data[queue.DataPhoneNumber])
	assert.Equal(t, "101", jobs[0].Data[queue.DataSubscriptionID])
	assert.Equal(t, "5000", jobs[0].Data[queue.DataPremiumPlan])
	assert.Equal(t, "2024-03", jobs[0].Data[queue.DataCycleMonth])
	assert.Equal(t, "102", jobs[1].Data[queue.DataSubscriptionID])
}

func TestRunMonthlySweep_EmptyPopulationEnqueuesNothing(t *testing.T) {
	fakeQueue := queue.NewFakeQueue()
	now := time.Date(2024, time.March, 27, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(&stubSubscriptionService{}, &stubDebitService{}, fakeQueue, now)

	require.NoError(t, s.RunMonthlySweep(context.Background()))

	assert.Empty(t, fakeQueue.Jobs())
}

func TestRunRetrySweep_ReenqueuesPreviousCycleFailures(t *testing.T) {
	debitSvc := &stubDebitService{
		failed: []autodebitdomain.DebitAttempt{
			{ID: 7, SubscriptionID: 101, PhoneNumber: "0501020304", Amount: 5000, CycleMonth: "2024-03"},
		},
	}
	fakeQueue := queue.NewFakeQueue()
	now := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(&stubSubscriptionService{}, debitSvc, fakeQueue, now)

	require.NoError(t, s.RunRetrySweep(context.Background()))

	// The sweep looks one cycle back from now.
	assert.Equal(t, "2024-03", debitSvc.failedCycle)

	jobs := fakeQueue.ByName(queue.JobAutoDebitPremiums)
	require.Len(t, jobs, 1)
	assert.Equal(t, "101", jobs[0].Data[queue.DataSubscriptionID])
	assert.Equal(t, "5000", jobs[0].Data[queue.DataPremiumPlan])
	// The payload keeps the failed cycle, not the retry's own month.
	assert.Equal(t, "2024-03", jobs[0].Data[queue.DataCycleMonth])

	assert.Equal(t, []snowflake.ID{7}, debitSvc.retryingIDs)
}

func TestRunRetrySweep_NothingFailedEnqueuesNothing(t *testing.T) {
	debitSvc := &stubDebitService{}
	fakeQueue := queue.NewFakeQueue()
	now := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)
	s := newTestScheduler(&stubSubscriptionService{}, debitSvc, fakeQueue, now)

	require.NoError(t, s.RunRetrySweep(context.Background()))

	assert.Empty(t, fakeQueue.Jobs())
	assert.Empty(t, debitSvc.retryingIDs)
}
