package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindInsuranceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Insurance, error)
	ListInsurances(ctx context.Context, db *gorm.DB) ([]Insurance, error)
	FindPremiumFeeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PremiumFee, error)
}
