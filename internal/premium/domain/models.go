// Package domain holds the premium payment event model. A premium is one
// collection attempt against a contract; it moves out of EN_ATTENTE exactly
// once and only a REUSSI outcome feeds the contract's paid total.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// PaymentStatus is the stored wire value of a premium payment outcome.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "EN_ATTENTE"
	PaymentSuccessful PaymentStatus = "REUSSI"
	PaymentFailed     PaymentStatus = "ECHOUE"
)

// PaymentMode selects how the premium was collected.
type PaymentMode string

const (
	PaymentModeAuto   PaymentMode = "PRELEVEMENT_AUTOMATIQUE"
	PaymentModeManual PaymentMode = "PAIEMENT_MANUEL"
)

// Valid reports whether the mode is one of the known wire values.
func (m PaymentMode) Valid() bool {
	return m == PaymentModeAuto || m == PaymentModeManual
}

// Premium is a single payment event against a contract.
type Premium struct {
	ID               snowflake.ID   `gorm:"primaryKey"`
	ContractID       snowflake.ID   `gorm:"not null;index"`
	Amount           int64          `gorm:"not null"`
	PaymentMode      PaymentMode    `gorm:"type:text;not null"`
	PaymentStatus    PaymentStatus  `gorm:"type:text;not null;default:EN_ATTENTE"`
	PaymentReference string         `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Premium) TableName() string { return "premiums" }
