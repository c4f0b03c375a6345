package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists premium payment events.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, premium *Premium) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Premium, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Premium, error)
	ListByContract(ctx context.Context, db *gorm.DB, contractID snowflake.ID) ([]Premium, error)
	// UpdatePaymentStatus moves a premium out of EN_ATTENTE. Only pending
	// rows are touched; the affected row count lets the caller detect a
	// repeat confirmation.
	UpdatePaymentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status PaymentStatus) (int64, error)
}
