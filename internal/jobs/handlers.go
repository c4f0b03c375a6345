// Package jobs binds queue job names to their domain handlers and runs the
// worker pool over the fx lifecycle.
package jobs

import (
	"context"
	"errors"

	autodebitdomain "github.com/belifehq/belife/internal/autodebit/domain"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	"github.com/belifehq/belife/internal/queue"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Worker      *queue.Worker
	ContractSvc contractdomain.Service
	DebitSvc    autodebitdomain.Service
}

// Register wires the two job kinds to their handlers.
func Register(p Params) {
	log := p.Log.Named("jobs")
	p.Worker.Register(queue.JobUpdateContractStatus, UpdateContractStatus(log, p.ContractSvc))
	p.Worker.Register(queue.JobAutoDebitPremiums, AutoDebitPremiums(log, p.DebitSvc))
}

// UpdateContractStatus re-reconciles one contract. Missing-reference errors
// are permanent data-integrity problems: the job logs them and completes so
// the queue never spins on them.
func UpdateContractStatus(log *zap.Logger, svc contractdomain.Service) queue.Handler {
	return func(ctx context.Context, job queue.Job) error {
		contractID, err := job.SnowflakeData(queue.DataContractID)
		if err != nil {
			log.Error("updateContractStatus payload has no contract id",
				zap.String("job_id", job.ID), zap.Error(err))
			return nil
		}

		_, err = svc.RefreshStatus(ctx, contractID)
		if errors.Is(err, contractdomain.ErrNotFound) ||
			errors.Is(err, contractdomain.ErrSubscriptionNotFound) ||
			errors.Is(err, contractdomain.ErrPremiumFeeNotFound) {
			log.Error("updateContractStatus references missing data",
				zap.String("job_id", job.ID),
				zap.String("contract_id", contractID.String()),
				zap.Error(err),
			)
			return nil
		}
		return err
	}
}

// AutoDebitPremiums collects one monthly premium. Debit failures are
// absorbed into the attempt ledger by the service; only infrastructure
// errors surface as job failures.
func AutoDebitPremiums(log *zap.Logger, svc autodebitdomain.Service) queue.Handler {
	return func(ctx context.Context, job queue.Job) error {
		subscriptionID, err := job.SnowflakeData(queue.DataSubscriptionID)
		if err != nil {
			log.Error("autoDebitPremiums payload has no subscription id",
				zap.String("job_id", job.ID), zap.Error(err))
			return nil
		}
		amount, err := job.Int64Data(queue.DataPremiumPlan)
		if err != nil {
			log.Error("autoDebitPremiums payload has no premium plan",
				zap.String("job_id", job.ID), zap.Error(err))
			return nil
		}

		return svc.Execute(ctx, job.Data[queue.DataPhoneNumber], subscriptionID, amount, job.Data[queue.DataCycleMonth])
	}
}
