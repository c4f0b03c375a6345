package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists subscriptions.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Subscription, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Subscription, error)
	ListAutoDebitSuccessful(ctx context.Context, db *gorm.DB) ([]Subscription, error)
	FindLatestSuccessfulByPhoneNumber(ctx context.Context, db *gorm.DB, phoneNumber string) (*Subscription, error)
	// UpdatePaymentStatus moves a subscription out of EN_ATTENTE. It only
	// touches rows still pending and reports how many rows changed, so the
	// caller can tell a repeat confirmation apart from the first one.
	UpdatePaymentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status PaymentStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
