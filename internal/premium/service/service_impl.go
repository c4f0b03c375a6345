package service

import (
	"context"
	"strings"

	"github.com/belifehq/belife/internal/clock"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	"github.com/belifehq/belife/internal/premium/domain"
	"github.com/belifehq/belife/internal/queue"
	pkgdb "github.com/belifehq/belife/pkg/db"
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
	Repo         domain.Repository
	ContractRepo contractdomain.Repository
	ContractSvc  contractdomain.Service
	Queue        queue.Queue
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	contractRepo contractdomain.Repository
	contractSvc  contractdomain.Service
	queue        queue.Queue
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("premium.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		contractRepo: p.ContractRepo,
		contractSvc:  p.ContractSvc,
		queue:        p.Queue,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePremiumRequest) (*domain.Premium, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !req.PaymentMode.Valid() {
		return nil, domain.ErrInvalidPaymentMode
	}
	reference := strings.TrimSpace(req.PaymentReference)
	if reference == "" {
		return nil, domain.ErrDuplicateReference
	}

	contract, err := s.contractRepo.FindByID(ctx, s.db, req.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrContractNotFound
	}

	now := s.clock.Now()
	premium := &domain.Premium{
		ID:               s.genID.Generate(),
		ContractID:       contract.ID,
		Amount:           req.Amount,
		PaymentMode:      req.PaymentMode,
		PaymentStatus:    domain.PaymentPending,
		PaymentReference: reference,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, s.db, premium); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateReference
		}
		return nil, err
	}

	s.log.Info("premium recorded",
		zap.String("premium_id", premium.ID.String()),
		zap.String("contract_id", contract.ID.String()),
		zap.Int64("amount", premium.Amount),
	)
	return premium, nil
}

func (s *Service) ConfirmPayment(ctx context.Context, id snowflake.ID, status domain.PaymentStatus) (*domain.Premium, error) {
	if status != domain.PaymentSuccessful && status != domain.PaymentFailed {
		return nil, domain.ErrInvalidPaymentStatus
	}

	premium, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if premium == nil {
		return nil, domain.ErrNotFound
	}

	rows, err := s.repo.UpdatePaymentStatus(ctx, s.db, id, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrAlreadyConfirmed
	}
	premium.PaymentStatus = status

	if status == domain.PaymentSuccessful {
		if err := s.contractSvc.RecordPremiumPayment(ctx, premium.ContractID, premium.Amount); err != nil {
			return nil, err
		}

		if err := s.queue.Enqueue(ctx, queue.NewUpdateContractStatusJob(premium.ContractID)); err != nil {
			s.log.Warn("unable to enqueue contract status refresh",
				zap.String("contract_id", premium.ContractID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Info("premium payment confirmed",
		zap.String("premium_id", premium.ID.String()),
		zap.String("payment_status", string(status)),
	)
	return premium, nil
}

func (s *Service) ListByContract(ctx context.Context, contractID snowflake.ID) ([]domain.Premium, error) {
	return s.repo.ListByContract(ctx, s.db, contractID)
}
