package service

import (
	"context"
	"testing"
	"time"

	"github.com/belifehq/belife/internal/background"
	"github.com/belifehq/belife/internal/clock"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	contractrepo "github.com/belifehq/belife/internal/contract/repository"
	contractservice "github.com/belifehq/belife/internal/contract/service"
	customerdomain "github.com/belifehq/belife/internal/customer/domain"
	customerrepo "github.com/belifehq/belife/internal/customer/repository"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	insurancerepo "github.com/belifehq/belife/internal/insurance/repository"
	"github.com/belifehq/belife/internal/queue"
	"github.com/belifehq/belife/internal/subscription/domain"
	subscriptionrepo "github.com/belifehq/belife/internal/subscription/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type subscriptionTestEnv struct {
	db        *gorm.DB
	svc       domain.Service
	queue     *queue.FakeQueue
	runner    *background.Runner
	node      *snowflake.Node
	insurance insurancedomain.Insurance
	fee       insurancedomain.PremiumFee
}

func setupSubscriptionTest(t *testing.T) *subscriptionTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&customerdomain.Beneficiary{},
		&insurancedomain.Insurance{},
		&insurancedomain.PremiumFee{},
		&domain.Subscription{},
		&contractdomain.Contract{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, time.March, 5, 14, 30, 45, 0, time.UTC))
	log := zap.NewNop()
	fakeQueue := queue.NewFakeQueue()
	runner := background.NewRunner(log)

	contractSvc := contractservice.New(contractservice.Params{
		DB:            db,
		Log:           log,
		GenID:         node,
		Clock:         fake,
		Repo:          contractrepo.Provide(),
		SubRepo:       subscriptionrepo.Provide(),
		InsuranceRepo: insurancerepo.Provide(),
	})

	svc := New(Params{
		DB:            db,
		Log:           log,
		GenID:         node,
		Clock:         fake,
		Repo:          subscriptionrepo.Provide(),
		CustomerRepo:  customerrepo.Provide(),
		InsuranceRepo: insurancerepo.Provide(),
		ContractSvc:   contractSvc,
		Queue:         fakeQueue,
		Runner:        runner,
	})

	insurance := insurancedomain.Insurance{ID: node.Generate(), ProductName: "Obseques", MembershipAmount: 1000}
	require.NoError(t, db.Create(&insurance).Error)
	fee := insurancedomain.PremiumFee{
		ID:          node.Generate(),
		InsuranceID: insurance.ID,
		Label:       "Formule individuelle",
		Formula:     insurancedomain.FeeFormulaIndividual,
		MonthlyFee:  5000,
	}
	require.NoError(t, db.Create(&fee).Error)

	return &subscriptionTestEnv{
		db:        db,
		svc:       svc,
		queue:     fakeQueue,
		runner:    runner,
		node:      node,
		insurance: insurance,
		fee:       fee,
	}
}

func (env *subscriptionTestEnv) createRequest(reference string) domain.CreateSubscriptionRequest {
	return domain.CreateSubscriptionRequest{
		CustomerFullName:    "Awa Kone",
		CustomerPhoneNumber: "+2250501020304",
		BeneficiaryFullName: "Moussa Kone",
		InsuranceID:         env.insurance.ID,
		PremiumFeeID:        env.fee.ID,
		PaymentMode:         domain.PaymentModeAuto,
		PaymentReference:    reference,
	}
}

func TestCreate_AcceptsAndPersistsPending(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPending, sub.PaymentStatus)
	assert.Equal(t, "0501020304", sub.PhoneNumber)
	assert.Equal(t, int64(5000), sub.PremiumPlan)

	var customer customerdomain.Customer
	require.NoError(t, env.db.First(&customer, "phone_number = ?", "0501020304").Error)
	assert.Equal(t, "Awa Kone", customer.FullName)
}

func TestCreate_ReusesExistingCustomerByPhone(t *testing.T) {
	env := setupSubscriptionTest(t)

	first, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	req := env.createRequest("REF-002")
	req.BeneficiaryFullName = "Fatou Kone"
	second, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
}

func TestCreate_RejectsDuplicatePaymentReference(t *testing.T) {
	env := setupSubscriptionTest(t)

	_, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	req := env.createRequest("REF-001")
	req.BeneficiaryFullName = "Fatou Kone"
	_, err = env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAdmissionRejected)
	assert.Contains(t, err.Error(), "REF-001")
}

func TestCreate_RejectsFourthSuccessfulSubscription(t *testing.T) {
	env := setupSubscriptionTest(t)

	beneficiaries := []string{"Moussa Kone", "Fatou Kone", "Ali Kone"}
	for i, name := range beneficiaries {
		req := env.createRequest("REF-00" + string(rune('1'+i)))
		req.BeneficiaryFullName = name
		sub, err := env.svc.Create(context.Background(), req)
		require.NoError(t, err)
		_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentSuccessful)
		require.NoError(t, err)
	}

	req := env.createRequest("REF-009")
	req.BeneficiaryFullName = "Aminata Kone"
	_, err := env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAdmissionRejected)
	assert.Contains(t, err.Error(), "Awa Kone")
}

func TestCreate_RejectsDuplicateBeneficiary(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)
	_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentSuccessful)
	require.NoError(t, err)

	_, err = env.svc.Create(context.Background(), env.createRequest("REF-002"))
	require.ErrorIs(t, err, domain.ErrAdmissionRejected)
	assert.Contains(t, err.Error(), "Awa Kone")
	assert.Contains(t, err.Error(), "Moussa Kone")
}

func TestCreate_DeletesStaleFailedAndPendingSubscriptions(t *testing.T) {
	env := setupSubscriptionTest(t)

	stale, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)
	_, err = env.svc.ConfirmPayment(context.Background(), stale.ID, domain.PaymentFailed)
	require.NoError(t, err)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-002"))
	require.NoError(t, err)
	env.runner.Wait()

	var count int64
	require.NoError(t, env.db.Model(&domain.Subscription{}).
		Where("id = ?", stale.ID).
		Count(&count).Error)
	assert.Zero(t, count, "stale failed subscription should be deleted")

	require.NoError(t, env.db.Model(&domain.Subscription{}).
		Where("id = ?", sub.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreate_RejectsUnknownPremiumFee(t *testing.T) {
	env := setupSubscriptionTest(t)

	req := env.createRequest("REF-001")
	req.PremiumFeeID = env.node.Generate()
	_, err := env.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrPremiumFeeNotFound)
}

func TestConfirmPayment_SuccessCreatesContractAndEnqueuesRefresh(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	confirmed, err := env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentSuccessful)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccessful, confirmed.PaymentStatus)

	var contract contractdomain.Contract
	require.NoError(t, env.db.First(&contract, "subscription_id = ?", sub.ID).Error)
	assert.Equal(t, contractdomain.StatusInactive, contract.Status)
	assert.Equal(t, "0501020304M050324143045", contract.ContractNumber)

	jobs := env.queue.ByName(queue.JobUpdateContractStatus)
	require.Len(t, jobs, 1)
	assert.Equal(t, contract.ID.String(), jobs[0].Data[queue.DataContractID])
}

func TestConfirmPayment_FailureCreatesNoContract(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentFailed)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&contractdomain.Contract{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, env.queue.Jobs())
}

func TestConfirmPayment_IsExactlyOnce(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentSuccessful)
	require.NoError(t, err)

	_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentFailed)
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
}

func TestConfirmPayment_RejectsPendingAsTarget(t *testing.T) {
	env := setupSubscriptionTest(t)

	sub, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)

	_, err = env.svc.ConfirmPayment(context.Background(), sub.ID, domain.PaymentPending)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentStatus)
}

func TestListAutoDebitSuccessful(t *testing.T) {
	env := setupSubscriptionTest(t)

	auto, err := env.svc.Create(context.Background(), env.createRequest("REF-001"))
	require.NoError(t, err)
	_, err = env.svc.ConfirmPayment(context.Background(), auto.ID, domain.PaymentSuccessful)
	require.NoError(t, err)

	manual := env.createRequest("REF-002")
	manual.BeneficiaryFullName = "Fatou Kone"
	manual.PaymentMode = domain.PaymentModeManual
	manualSub, err := env.svc.Create(context.Background(), manual)
	require.NoError(t, err)
	_, err = env.svc.ConfirmPayment(context.Background(), manualSub.ID, domain.PaymentSuccessful)
	require.NoError(t, err)

	eligible, err := env.svc.ListAutoDebitSuccessful(context.Background())
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, auto.ID, eligible[0].ID)
}
