package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// CreateContractRequest carries the subscription facts the contract is
// minted from.
type CreateContractRequest struct {
	SubscriptionID snowflake.ID
	CustomerID     snowflake.ID
	InsuranceID    snowflake.ID
	PhoneNumber    string
}

// Service governs the contract lifecycle.
type Service interface {
	// CreateForSubscription mints the INACTIF contract for a freshly paid
	// subscription, generating its number from the subscriber phone and the
	// current clock instant.
	CreateForSubscription(ctx context.Context, req CreateContractRequest) (*Contract, error)
	// RecordPremiumPayment adds a collected premium amount to the
	// contract's running total.
	RecordPremiumPayment(ctx context.Context, contractID snowflake.ID, amount int64) error
	// RefreshStatus recomputes the reconciliation result and applies the
	// transition rule. Idempotent: it persists only when the status
	// actually changes.
	RefreshStatus(ctx context.Context, contractID snowflake.ID) (Status, error)
	// Terminate is the administrative path to RESILIE.
	Terminate(ctx context.Context, contractID snowflake.ID) error
	StatusByPhoneNumber(ctx context.Context, phoneNumber string) (*PaymentStanding, error)
	StatusByContractNumber(ctx context.Context, contractNumber string) (*PaymentStanding, error)
}
