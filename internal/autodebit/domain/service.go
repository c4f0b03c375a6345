package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service executes auto-debit collections and feeds the retry sweep.
type Service interface {
	// Execute collects the premium of one billing cycle for a
	// subscription. cycleMonth is the cycle being settled — a retry keeps
	// the month the original debit failed in even when it runs in a later
	// month; empty means the current cycle. Success creates the REUSSI
	// premium (de-duplicated per subscription and cycle) and records it on
	// the contract; gateway failure is absorbed into the attempt ledger
	// for the retry sweep. Only infrastructure errors propagate.
	Execute(ctx context.Context, phoneNumber string, subscriptionID snowflake.ID, planAmount int64, cycleMonth string) error
	// FailedAttempts lists attempts still FAILED for a billing cycle.
	FailedAttempts(ctx context.Context, cycleMonth string) ([]DebitAttempt, error)
	// MarkRetrying flags attempts re-enqueued by the retry sweep.
	MarkRetrying(ctx context.Context, ids []snowflake.ID) error
}
