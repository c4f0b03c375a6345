package domain

import (
	"context"

	"github.com/google/uuid"
)

// DebitRequest asks the mobile-money provider to pull one premium.
type DebitRequest struct {
	PhoneNumber string
	Amount      int64
	Reference   string
}

// DebitResult is the provider's acknowledgment.
type DebitResult struct {
	ProviderReference string
}

// Gateway is the external debit-execution capability. Implementations must
// honor ctx cancellation; callers bound every Debit with a timeout.
type Gateway interface {
	Debit(ctx context.Context, req DebitRequest) (DebitResult, error)
}

// NoopGateway acknowledges every debit without moving money. Stands in
// until a provider integration exists and serves tests.
type NoopGateway struct{}

func (NoopGateway) Debit(_ context.Context, _ DebitRequest) (DebitResult, error) {
	return DebitResult{ProviderReference: uuid.NewString()}, nil
}
