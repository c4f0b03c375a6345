package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// CreatePremiumRequest records one collection attempt reported by a USSD or
// backoffice actor.
type CreatePremiumRequest struct {
	ContractID       snowflake.ID
	Amount           int64
	PaymentMode      PaymentMode
	PaymentReference string
}

// Service is the premium payment surface.
type Service interface {
	// Create records a pending premium against an existing contract.
	Create(ctx context.Context, req CreatePremiumRequest) (*Premium, error)
	// ConfirmPayment moves the premium exactly once out of EN_ATTENTE. On
	// REUSSI the amount is added to the contract's paid total and a
	// contract-status refresh is enqueued.
	ConfirmPayment(ctx context.Context, id snowflake.ID, status PaymentStatus) (*Premium, error)
	ListByContract(ctx context.Context, contractID snowflake.ID) ([]Premium, error)
}
