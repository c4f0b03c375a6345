package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/belifehq/belife/internal/background"
	"github.com/belifehq/belife/internal/clock"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	customerdomain "github.com/belifehq/belife/internal/customer/domain"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	"github.com/belifehq/belife/internal/queue"
	"github.com/belifehq/belife/internal/subscription/domain"
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
	CustomerRepo  customerdomain.Repository
	InsuranceRepo insurancedomain.Repository
	ContractSvc   contractdomain.Service
	Queue         queue.Queue
	Runner        *background.Runner
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	clock         clock.Clock
	repo          domain.Repository
	customerRepo  customerdomain.Repository
	insuranceRepo insurancedomain.Repository
	contractSvc   contractdomain.Service
	queue         queue.Queue
	runner        *background.Runner
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("subscription.service"),
		genID:         p.GenID,
		clock:         p.Clock,
		repo:          p.Repo,
		customerRepo:  p.CustomerRepo,
		insuranceRepo: p.InsuranceRepo,
		contractSvc:   p.ContractSvc,
		queue:         p.Queue,
		runner:        p.Runner,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	customerName := strings.TrimSpace(req.CustomerFullName)
	beneficiaryName := strings.TrimSpace(req.BeneficiaryFullName)
	reference := strings.TrimSpace(req.PaymentReference)
	if customerName == "" || beneficiaryName == "" || reference == "" || req.CustomerPhoneNumber == "" {
		return nil, domain.ErrInvalidRequest
	}
	if !req.PaymentMode.Valid() {
		return nil, domain.ErrInvalidPaymentMode
	}

	insurance, err := s.insuranceRepo.FindInsuranceByID(ctx, s.db, req.InsuranceID)
	if err != nil {
		return nil, err
	}
	if insurance == nil {
		return nil, domain.ErrInsuranceNotFound
	}

	fee, err := s.insuranceRepo.FindPremiumFeeByID(ctx, s.db, req.PremiumFeeID)
	if err != nil {
		return nil, err
	}
	if fee == nil || fee.InsuranceID != req.InsuranceID {
		return nil, domain.ErrPremiumFeeNotFound
	}

	phone := contractdomain.NormalizePhoneNumber(req.CustomerPhoneNumber)
	now := s.clock.Now()

	customer, err := s.customerRepo.FindCustomerByPhoneNumber(ctx, s.db, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &customerdomain.Customer{
			ID:          s.genID.Generate(),
			FullName:    customerName,
			BirthDate:   req.CustomerBirthDate,
			PhoneNumber: phone,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.customerRepo.InsertCustomer(ctx, s.db, customer); err != nil {
			return nil, err
		}
	}

	history, err := s.repo.ListByCustomer(ctx, s.db, customer.ID)
	if err != nil {
		return nil, err
	}

	decision := domain.Validate(history, domain.AdmissionRequest{
		CustomerFullName:    customer.FullName,
		BeneficiaryFullName: beneficiaryName,
		PaymentReference:    reference,
	})
	if !decision.Accepted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAdmissionRejected, decision.Message)
	}
	s.cleanupStale(decision.StaleIDs)

	beneficiary := &customerdomain.Beneficiary{
		ID:        s.genID.Generate(),
		FullName:  beneficiaryName,
		BirthDate: req.BeneficiaryBirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customerRepo.InsertBeneficiary(ctx, s.db, beneficiary); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:                  s.genID.Generate(),
		CustomerID:          customer.ID,
		BeneficiaryID:       beneficiary.ID,
		BeneficiaryFullName: beneficiary.FullName,
		InsuranceID:         insurance.ID,
		PremiumFeeID:        fee.ID,
		PhoneNumber:         phone,
		PremiumPlan:         fee.MonthlyFee,
		PaymentMode:         req.PaymentMode,
		PaymentStatus:       domain.PaymentPending,
		PaymentReference:    reference,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Insert(ctx, s.db, sub); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, fmt.Errorf("%w: payment reference %s has already been used", domain.ErrAdmissionRejected, reference)
		}
		return nil, err
	}

	s.log.Info("subscription accepted",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("payment_mode", string(sub.PaymentMode)),
	)
	return sub, nil
}

// cleanupStale deletes ECHOUE/EN_ATTENTE leftovers for the same beneficiary
// best-effort: a failed delete is logged by the runner and never reaches the
// admission caller.
func (s *Service) cleanupStale(ids []snowflake.ID) {
	for _, id := range ids {
		id := id
		s.log.Info("deleting stale subscription", zap.String("subscription_id", id.String()))
		s.runner.Go("subscription.cleanup", func(ctx context.Context) error {
			return s.repo.Delete(ctx, s.db, id)
		})
	}
}

func (s *Service) ConfirmPayment(ctx context.Context, id snowflake.ID, status domain.PaymentStatus) (*domain.Subscription, error) {
	if status != domain.PaymentSuccessful && status != domain.PaymentFailed {
		return nil, domain.ErrInvalidPaymentStatus
	}

	sub, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	rows, err := s.repo.UpdatePaymentStatus(ctx, s.db, id, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrAlreadyConfirmed
	}
	sub.PaymentStatus = status

	if status == domain.PaymentSuccessful {
		contract, err := s.contractSvc.CreateForSubscription(ctx, contractdomain.CreateContractRequest{
			SubscriptionID: sub.ID,
			CustomerID:     sub.CustomerID,
			InsuranceID:    sub.InsuranceID,
			PhoneNumber:    sub.PhoneNumber,
		})
		if err != nil {
			return nil, err
		}

		if err := s.queue.Enqueue(ctx, queue.NewUpdateContractStatusJob(contract.ID)); err != nil {
			// The refresh also runs on the next premium event, so a lost
			// enqueue delays activation instead of losing it.
			s.log.Warn("unable to enqueue contract status refresh",
				zap.String("contract_id", contract.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.log.Info("subscription payment confirmed",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("payment_status", string(status)),
	)
	return sub, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]domain.Subscription, error) {
	return s.repo.ListByCustomer(ctx, s.db, customerID)
}

func (s *Service) ListAutoDebitSuccessful(ctx context.Context) ([]domain.Subscription, error) {
	return s.repo.ListAutoDebitSuccessful(ctx, s.db)
}

func (s *Service) DeleteByID(ctx context.Context, id snowflake.ID) error {
	return s.repo.Delete(ctx, s.db, id)
}
