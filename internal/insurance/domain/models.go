// Package domain contains persistence models for insurance products and
// their premium fee plans.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// FeeFormula distinguishes individual from family coverage plans.
type FeeFormula string

const (
	FeeFormulaIndividual FeeFormula = "INDIVIDUELLE"
	FeeFormulaFamily     FeeFormula = "FAMILLE"
)

// Insurance is a micro-insurance product sold over USSD.
type Insurance struct {
	ID               snowflake.ID   `gorm:"primaryKey"`
	ProductName      string         `gorm:"type:text;not null"`
	MembershipAmount int64          `gorm:"not null;default:0"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Insurance) TableName() string { return "insurances" }

// PremiumFee is the monthly amount and formula attached to an insurance
// product. Amounts are integer XOF.
type PremiumFee struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	InsuranceID snowflake.ID   `gorm:"not null;index"`
	Label       string         `gorm:"type:text;not null"`
	Formula     FeeFormula     `gorm:"type:text;not null"`
	MonthlyFee  int64          `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (PremiumFee) TableName() string { return "premium_fees" }
