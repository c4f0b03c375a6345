// Package domain holds the subscription model and the admission rules that
// gate new subscriptions against a customer's history.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// PaymentStatus is the stored wire value of a subscription payment outcome.
// The French values are part of the data contract with the USSD aggregator.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "EN_ATTENTE"
	PaymentSuccessful PaymentStatus = "REUSSI"
	PaymentFailed     PaymentStatus = "ECHOUE"
)

// Valid reports whether the status is one of the known wire values.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccessful, PaymentFailed:
		return true
	}
	return false
}

// PaymentMode selects how monthly premiums are collected.
type PaymentMode string

const (
	PaymentModeAuto   PaymentMode = "PRELEVEMENT_AUTOMATIQUE"
	PaymentModeManual PaymentMode = "PAIEMENT_MANUEL"
)

// Valid reports whether the mode is one of the known wire values.
func (m PaymentMode) Valid() bool {
	return m == PaymentModeAuto || m == PaymentModeManual
}

// Subscription binds a customer, a beneficiary and an insurance plan. The
// identity fields are immutable after admission; only the payment status
// moves, exactly once, when the aggregator confirms the membership payment.
//
// BeneficiaryFullName is denormalized from the beneficiary record because the
// admission rules compare beneficiaries by full name across history.
type Subscription struct {
	ID                  snowflake.ID   `gorm:"primaryKey"`
	CustomerID          snowflake.ID   `gorm:"not null;index"`
	BeneficiaryID       snowflake.ID   `gorm:"index"`
	BeneficiaryFullName string         `gorm:"type:text;not null"`
	InsuranceID         snowflake.ID   `gorm:"not null;index"`
	PremiumFeeID        snowflake.ID   `gorm:"index"`
	PhoneNumber         string         `gorm:"type:text;not null;index"`
	PremiumPlan         int64          `gorm:"not null"`
	PaymentMode         PaymentMode    `gorm:"type:text;not null"`
	PaymentStatus       PaymentStatus  `gorm:"type:text;not null;default:EN_ATTENTE"`
	PaymentReference    string         `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }
