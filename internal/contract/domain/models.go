// Package domain holds the contract model and its status state machine.
package domain

import (
	"time"

	"github.com/belifehq/belife/internal/reconcile"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Status is the stored contract lifecycle state.
type Status string

const (
	StatusInactive   Status = "INACTIF"
	StatusActive     Status = "ACTIF"
	StatusTerminated Status = "RESILIE"
)

// Valid reports whether the status is one of the known wire values.
func (s Status) Valid() bool {
	switch s {
	case StatusInactive, StatusActive, StatusTerminated:
		return true
	}
	return false
}

// Contract is created the instant a subscription's membership payment
// succeeds. TotalPaidPremiums only ever increases; ContractNumber is
// assigned once at creation and never recomputed.
type Contract struct {
	ID                snowflake.ID   `gorm:"primaryKey"`
	ContractNumber    string         `gorm:"type:text;not null;uniqueIndex"`
	CustomerID        snowflake.ID   `gorm:"not null;index"`
	InsuranceID       snowflake.ID   `gorm:"not null;index"`
	SubscriptionID    snowflake.ID   `gorm:"not null;uniqueIndex"`
	Status            Status         `gorm:"type:text;not null;default:INACTIF"`
	TotalPaidPremiums int64          `gorm:"not null;default:0"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }

// PaymentStanding is the on-demand reconciliation view served to the USSD
// surface. Never persisted.
type PaymentStanding struct {
	ContractNumber string `json:"contractNumber"`
	Status         Status `json:"contractStatus"`
	reconcile.Result
}
