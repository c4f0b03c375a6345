package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists the per-cycle debit attempt ledger.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, attempt *DebitAttempt) error
	FindBySubscriptionAndCycle(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, cycleMonth string) (*DebitAttempt, error)
	Update(ctx context.Context, db *gorm.DB, attempt *DebitAttempt) error
	ListFailedByCycle(ctx context.Context, db *gorm.DB, cycleMonth string) ([]DebitAttempt, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, ids []snowflake.ID, status AttemptStatus) error
}
