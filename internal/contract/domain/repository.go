package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists contracts.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contract *Contract) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Contract, error)
	FindBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID) (*Contract, error)
	FindByContractNumber(ctx context.Context, db *gorm.DB, contractNumber string) (*Contract, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	// AddPaidPremiums increments the accumulated premium counter inside the
	// database so concurrent payments never lose an update.
	AddPaidPremiums(ctx context.Context, db *gorm.DB, id snowflake.ID, amount int64) error
}
