package service

import (
	"context"

	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/contract/domain"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	"github.com/belifehq/belife/internal/reconcile"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	pkgdb "github.com/belifehq/belife/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Clock         clock.Clock
	Repo          domain.Repository
	SubRepo       subscriptiondomain.Repository
	InsuranceRepo insurancedomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	subRepo       subscriptiondomain.Repository
	insuranceRepo insurancedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("contract.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		subRepo:       p.SubRepo,
		insuranceRepo: p.InsuranceRepo,
	}
}

func (s *Service) CreateForSubscription(ctx context.Context, req domain.CreateContractRequest) (*domain.Contract, error) {
	existing, err := s.repo.FindBySubscriptionID(ctx, s.db, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.clock.Now()
	contract := &domain.Contract{
		ID:             s.genID.Generate(),
		ContractNumber: domain.GenerateNumber(req.PhoneNumber, now),
		CustomerID:     req.CustomerID,
		InsuranceID:    req.InsuranceID,
		SubscriptionID: req.SubscriptionID,
		Status:         domain.StatusInactive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, contract); err != nil {
		// Lost a race with a concurrent confirmation for the same
		// subscription: the winner's row is the contract.
		if pkgdb.IsDuplicateKeyErr(err) {
			return s.repo.FindBySubscriptionID(ctx, s.db, req.SubscriptionID)
		}
		return nil, err
	}

	s.log.Info("contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("contract_number", contract.ContractNumber),
		zap.String("subscription_id", req.SubscriptionID.String()),
	)
	return contract, nil
}

func (s *Service) RecordPremiumPayment(ctx context.Context, contractID snowflake.ID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	contract, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return err
	}
	if contract == nil {
		return domain.ErrNotFound
	}

	return s.repo.AddPaidPremiums(ctx, s.db, contractID, amount)
}

func (s *Service) RefreshStatus(ctx context.Context, contractID snowflake.ID) (domain.Status, error) {
	contract, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return "", err
	}
	if contract == nil {
		return "", domain.ErrNotFound
	}
	if contract.Status == domain.StatusTerminated {
		return contract.Status, nil
	}

	result, err := s.reconcile(ctx, contract)
	if err != nil {
		return "", err
	}

	next, changed := domain.Transition(contract.Status, result.IsUpToDate)
	if !changed {
		return next, nil
	}

	if err := s.repo.UpdateStatus(ctx, s.db, contractID, next); err != nil {
		return "", err
	}

	s.log.Info("contract status updated",
		zap.String("contract_id", contractID.String()),
		zap.String("from", string(contract.Status)),
		zap.String("to", string(next)),
	)
	return next, nil
}

func (s *Service) Terminate(ctx context.Context, contractID snowflake.ID) error {
	contract, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return err
	}
	if contract == nil {
		return domain.ErrNotFound
	}
	if contract.Status == domain.StatusTerminated {
		return domain.ErrAlreadyTerminated
	}

	if err := s.repo.UpdateStatus(ctx, s.db, contractID, domain.StatusTerminated); err != nil {
		return err
	}

	s.log.Info("contract terminated", zap.String("contract_id", contractID.String()))
	return nil
}

func (s *Service) StatusByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.PaymentStanding, error) {
	sub, err := s.subRepo.FindLatestSuccessfulByPhoneNumber(ctx, s.db, domain.NormalizePhoneNumber(phoneNumber))
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	contract, err := s.repo.FindBySubscriptionID(ctx, s.db, sub.ID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	return s.standing(ctx, contract)
}

func (s *Service) StatusByContractNumber(ctx context.Context, contractNumber string) (*domain.PaymentStanding, error) {
	contract, err := s.repo.FindByContractNumber(ctx, s.db, contractNumber)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	return s.standing(ctx, contract)
}

func (s *Service) standing(ctx context.Context, contract *domain.Contract) (*domain.PaymentStanding, error) {
	result, err := s.reconcile(ctx, contract)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentStanding{
		ContractNumber: contract.ContractNumber,
		Status:         contract.Status,
		Result:         result,
	}, nil
}

// reconcile recomputes the payment standing from the contract's
// subscription anchor date and premium plan; the result is derived on
// demand and never stored.
func (s *Service) reconcile(ctx context.Context, contract *domain.Contract) (reconcile.Result, error) {
	sub, err := s.subRepo.FindByID(ctx, s.db, contract.SubscriptionID)
	if err != nil {
		return reconcile.Result{}, err
	}
	if sub == nil {
		return reconcile.Result{}, domain.ErrSubscriptionNotFound
	}

	fee, err := s.insuranceRepo.FindPremiumFeeByID(ctx, s.db, sub.PremiumFeeID)
	if err != nil {
		return reconcile.Result{}, err
	}
	if fee == nil {
		return reconcile.Result{}, domain.ErrPremiumFeeNotFound
	}

	return reconcile.Compute(reconcile.Input{
		SubscriptionDate: sub.CreatedAt,
		MonthlyPremium:   fee.MonthlyFee,
		TotalPaid:        contract.TotalPaidPremiums,
		Today:            s.clock.Now(),
	}), nil
}
