package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// CreateSubscriptionRequest is the admission-flow input, as reported by the
// USSD aggregator.
type CreateSubscriptionRequest struct {
	CustomerFullName     string
	CustomerPhoneNumber  string
	CustomerBirthDate    *time.Time
	BeneficiaryFullName  string
	BeneficiaryBirthDate *time.Time
	InsuranceID          snowflake.ID
	PremiumFeeID         snowflake.ID
	PaymentMode          PaymentMode
	PaymentReference     string
}

// Service is the subscription admission and payment-confirmation surface.
type Service interface {
	// Create runs the admission rules against the customer's history and,
	// when accepted, records a new EN_ATTENTE subscription. Rejections are
	// returned as ErrAdmissionRejected wrapping the rule's message.
	Create(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
	// ConfirmPayment moves the subscription payment status exactly once out
	// of EN_ATTENTE. On REUSSI it creates the contract and enqueues the
	// contract-status refresh.
	ConfirmPayment(ctx context.Context, id snowflake.ID, status PaymentStatus) (*Subscription, error)
	ListByCustomer(ctx context.Context, customerID snowflake.ID) ([]Subscription, error)
	// ListAutoDebitSuccessful returns the sweep population: paid
	// subscriptions collected by auto-debit.
	ListAutoDebitSuccessful(ctx context.Context) ([]Subscription, error)
	DeleteByID(ctx context.Context, id snowflake.ID) error
}
