package service

import (
	"context"
	"testing"
	"time"

	"github.com/belifehq/belife/internal/clock"
	"github.com/belifehq/belife/internal/contract/domain"
	contractrepo "github.com/belifehq/belife/internal/contract/repository"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	insurancerepo "github.com/belifehq/belife/internal/insurance/repository"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	subscriptionrepo "github.com/belifehq/belife/internal/subscription/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contractTestEnv struct {
	db    *gorm.DB
	svc   *Service
	clock *clock.FakeClock
	node  *snowflake.Node
}

func setupContractTest(t *testing.T, today time.Time) *contractTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&insurancedomain.Insurance{},
		&insurancedomain.PremiumFee{},
		&subscriptiondomain.Subscription{},
		&domain.Contract{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(today)

	svc := &Service{
		db:            db,
		log:           zap.NewNop(),
		genID:         node,
		clock:         fake,
		repo:          contractrepo.Provide(),
		subRepo:       subscriptionrepo.Provide(),
		insuranceRepo: insurancerepo.Provide(),
	}

	return &contractTestEnv{db: db, svc: svc, clock: fake, node: node}
}

// seedContract persists a fee plan, a paid subscription anchored at
// subscribedAt and its contract with the given paid total.
func (env *contractTestEnv) seedContract(t *testing.T, subscribedAt time.Time, monthlyFee, totalPaid int64) *domain.Contract {
	t.Helper()

	insurance := insurancedomain.Insurance{ID: env.node.Generate(), ProductName: "Obseques"}
	require.NoError(t, env.db.Create(&insurance).Error)

	fee := insurancedomain.PremiumFee{
		ID:          env.node.Generate(),
		InsuranceID: insurance.ID,
		Label:       "Formule individuelle",
		Formula:     insurancedomain.FeeFormulaIndividual,
		MonthlyFee:  monthlyFee,
	}
	require.NoError(t, env.db.Create(&fee).Error)

	sub := subscriptiondomain.Subscription{
		ID:                  env.node.Generate(),
		CustomerID:          env.node.Generate(),
		BeneficiaryFullName: "Moussa Kone",
		InsuranceID:         insurance.ID,
		PremiumFeeID:        fee.ID,
		PhoneNumber:         "0501020304",
		PremiumPlan:         monthlyFee,
		PaymentMode:         subscriptiondomain.PaymentModeAuto,
		PaymentStatus:       subscriptiondomain.PaymentSuccessful,
		PaymentReference:    "REF-" + env.node.Generate().String(),
		CreatedAt:           subscribedAt,
	}
	require.NoError(t, env.db.Create(&sub).Error)

	contract := domain.Contract{
		ID:                env.node.Generate(),
		ContractNumber:    domain.GenerateNumber(sub.PhoneNumber, subscribedAt),
		CustomerID:        sub.CustomerID,
		InsuranceID:       insurance.ID,
		SubscriptionID:    sub.ID,
		Status:            domain.StatusInactive,
		TotalPaidPremiums: totalPaid,
		CreatedAt:         subscribedAt,
	}
	require.NoError(t, env.db.Create(&contract).Error)
	return &contract
}

func TestRefreshStatus_ActivatesWhenUpToDate(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 15000)

	status, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, status)

	var stored domain.Contract
	require.NoError(t, env.db.First(&stored, "id = ?", contract.ID).Error)
	assert.Equal(t, domain.StatusActive, stored.Status)
}

func TestRefreshStatus_IsIdempotent(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 15000)

	first, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)
	second, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.StatusActive, second)
}

func TestRefreshStatus_StaysInactiveWhenBehind(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 5000)

	status, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, status)
}

func TestRefreshStatus_ActiveNeverRegresses(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 5000)
	require.NoError(t, env.db.Model(&domain.Contract{}).
		Where("id = ?", contract.ID).
		Update("status", domain.StatusActive).Error)

	status, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, status)
}

func TestRefreshStatus_MissingContract(t *testing.T) {
	env := setupContractTest(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	_, err := env.svc.RefreshStatus(context.Background(), env.node.Generate())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRefreshStatus_MissingPremiumFee(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 15000)
	require.NoError(t, env.db.Unscoped().Delete(&insurancedomain.PremiumFee{}, "1 = 1").Error)

	_, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	assert.ErrorIs(t, err, domain.ErrPremiumFeeNotFound)
}

func TestCreateForSubscription_GeneratesNumberAndIsIdempotent(t *testing.T) {
	today := time.Date(2024, time.March, 5, 14, 30, 45, 0, time.UTC)
	env := setupContractTest(t, today)

	req := domain.CreateContractRequest{
		SubscriptionID: env.node.Generate(),
		CustomerID:     env.node.Generate(),
		InsuranceID:    env.node.Generate(),
		PhoneNumber:    "+2250501020304",
	}

	first, err := env.svc.CreateForSubscription(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "0501020304M050324143045", first.ContractNumber)
	assert.Equal(t, domain.StatusInactive, first.Status)
	assert.Zero(t, first.TotalPaidPremiums)

	second, err := env.svc.CreateForSubscription(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecordPremiumPayment_Accumulates(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 0)

	require.NoError(t, env.svc.RecordPremiumPayment(context.Background(), contract.ID, 5000))
	require.NoError(t, env.svc.RecordPremiumPayment(context.Background(), contract.ID, 5000))

	var stored domain.Contract
	require.NoError(t, env.db.First(&stored, "id = ?", contract.ID).Error)
	assert.Equal(t, int64(10000), stored.TotalPaidPremiums)
}

func TestRecordPremiumPayment_RejectsNonPositiveAmount(t *testing.T) {
	env := setupContractTest(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))

	err := env.svc.RecordPremiumPayment(context.Background(), env.node.Generate(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestStatusByContractNumber_ReportsMissedMonths(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 5000)

	standing, err := env.svc.StatusByContractNumber(context.Background(), contract.ContractNumber)
	require.NoError(t, err)

	assert.Equal(t, contract.ContractNumber, standing.ContractNumber)
	assert.Equal(t, 3, standing.ExpectedPayments)
	assert.Equal(t, int64(15000), standing.ExpectedTotalPayment)
	assert.False(t, standing.IsUpToDate)
	require.Len(t, standing.MissedPayments, 2)
	assert.Equal(t, "February 2024", standing.MissedPayments[0].Month)
	assert.Equal(t, "March 2024", standing.MissedPayments[1].Month)
}

func TestStatusByPhoneNumber_NormalizesInput(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 15000)

	standing, err := env.svc.StatusByPhoneNumber(context.Background(), "+2250501020304")
	require.NoError(t, err)
	assert.Equal(t, contract.ContractNumber, standing.ContractNumber)
	assert.True(t, standing.IsUpToDate)
}

func TestTerminate(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	env := setupContractTest(t, today)
	contract := env.seedContract(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 5000, 15000)

	require.NoError(t, env.svc.Terminate(context.Background(), contract.ID))

	// Terminal: the refresh never resurrects a terminated contract.
	status, err := env.svc.RefreshStatus(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTerminated, status)

	assert.ErrorIs(t, env.svc.Terminate(context.Background(), contract.ID), domain.ErrAlreadyTerminated)
}
