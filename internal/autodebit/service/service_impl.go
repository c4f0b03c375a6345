package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/belifehq/belife/internal/autodebit/domain"
	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/config"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	premiumdomain "github.com/belifehq/belife/internal/premium/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Config       config.Config
	Repo         domain.Repository
	Gateway      domain.Gateway
	ContractRepo contractdomain.Repository
	PremiumSvc   premiumdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	cfg          config.AutoDebitConfig
	repo         domain.Repository
	gateway      domain.Gateway
	contractRepo contractdomain.Repository
	premiumSvc   premiumdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("autodebit.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		cfg:          p.Config.AutoDebit,
		repo:         p.Repo,
		gateway:      p.Gateway,
		contractRepo: p.ContractRepo,
		premiumSvc:   p.PremiumSvc,
	}
}

// debitReference is deterministic per subscription and cycle, so a re-run
// sweep or a retried job collides on the premium's unique payment reference
// instead of double-charging.
func debitReference(subscriptionID snowflake.ID, cycleMonth string) string {
	return fmt.Sprintf("AD-%s-%s", subscriptionID, cycleMonth)
}

func (s *Service) Execute(ctx context.Context, phoneNumber string, subscriptionID snowflake.ID, planAmount int64, cycleMonth string) error {
	// Retries of a failed cycle arrive in a later month; the caller's
	// cycle, not today's, names the premium being collected.
	if cycleMonth == "" {
		cycleMonth = s.clock.Now().Format(domain.CycleMonthLayout)
	}
	reference := debitReference(subscriptionID, cycleMonth)

	contract, err := s.contractRepo.FindBySubscriptionID(ctx, s.db, subscriptionID)
	if err != nil {
		return err
	}
	if contract == nil {
		// Permanent data-integrity problem: log and complete, retrying
		// cannot make the contract appear.
		s.log.Error("no contract for auto-debit subscription",
			zap.String("subscription_id", subscriptionID.String()),
		)
		return nil
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	result, err := s.gateway.Debit(gwCtx, domain.DebitRequest{
		PhoneNumber: phoneNumber,
		Amount:      planAmount,
		Reference:   reference,
	})
	cancel()
	if err != nil {
		return s.recordFailure(ctx, subscriptionID, phoneNumber, planAmount, cycleMonth, err)
	}

	premium, err := s.premiumSvc.Create(ctx, premiumdomain.CreatePremiumRequest{
		ContractID:       contract.ID,
		Amount:           planAmount,
		PaymentMode:      premiumdomain.PaymentModeAuto,
		PaymentReference: reference,
	})
	if err != nil {
		if errors.Is(err, premiumdomain.ErrDuplicateReference) {
			s.log.Info("premium already collected for cycle",
				zap.String("subscription_id", subscriptionID.String()),
				zap.String("cycle", cycleMonth),
			)
			return nil
		}
		return err
	}

	if _, err := s.premiumSvc.ConfirmPayment(ctx, premium.ID, premiumdomain.PaymentSuccessful); err != nil {
		return err
	}

	if err := s.closeAttempt(ctx, subscriptionID, cycleMonth); err != nil {
		return err
	}

	s.log.Info("auto-debit collected",
		zap.String("subscription_id", subscriptionID.String()),
		zap.String("cycle", cycleMonth),
		zap.Int64("amount", planAmount),
		zap.String("provider_reference", result.ProviderReference),
	)
	return nil
}

// recordFailure upserts the cycle's attempt row so the retry sweep can find
// it. The gateway error itself is absorbed here.
func (s *Service) recordFailure(ctx context.Context, subscriptionID snowflake.ID, phoneNumber string, amount int64, cycle string, debitErr error) error {
	s.log.Warn("auto-debit failed",
		zap.String("subscription_id", subscriptionID.String()),
		zap.String("cycle", cycle),
		zap.Error(debitErr),
	)

	attempt, err := s.repo.FindBySubscriptionAndCycle(ctx, s.db, subscriptionID, cycle)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if attempt == nil {
		return s.repo.Insert(ctx, s.db, &domain.DebitAttempt{
			ID:             s.genID.Generate(),
			SubscriptionID: subscriptionID,
			CycleMonth:     cycle,
			PhoneNumber:    phoneNumber,
			Amount:         amount,
			Attempts:       1,
			LastError:      debitErr.Error(),
			Status:         domain.AttemptFailed,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	attempt.Attempts++
	attempt.LastError = debitErr.Error()
	attempt.Status = domain.AttemptFailed
	attempt.UpdatedAt = now
	return s.repo.Update(ctx, s.db, attempt)
}

// closeAttempt marks a previously failed cycle attempt as collected.
func (s *Service) closeAttempt(ctx context.Context, subscriptionID snowflake.ID, cycle string) error {
	attempt, err := s.repo.FindBySubscriptionAndCycle(ctx, s.db, subscriptionID, cycle)
	if err != nil || attempt == nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, s.db, []snowflake.ID{attempt.ID}, domain.AttemptSucceeded)
}

func (s *Service) FailedAttempts(ctx context.Context, cycleMonth string) ([]domain.DebitAttempt, error) {
	return s.repo.ListFailedByCycle(ctx, s.db, cycleMonth)
}

func (s *Service) MarkRetrying(ctx context.Context, ids []snowflake.ID) error {
	return s.repo.UpdateStatus(ctx, s.db, ids, domain.AttemptRetrying)
}
