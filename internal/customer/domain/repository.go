package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCustomer(ctx context.Context, db *gorm.DB, customer *Customer) error
	InsertBeneficiary(ctx context.Context, db *gorm.DB, beneficiary *Beneficiary) error
	FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	FindCustomerByPhoneNumber(ctx context.Context, db *gorm.DB, phoneNumber string) (*Customer, error)
	FindBeneficiaryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Beneficiary, error)
}
