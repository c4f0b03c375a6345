// Package domain holds the auto-debit attempt ledger. One row per
// (subscription, billing cycle); the retry sweep re-selects rows left
// FAILED from the previous cycle.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// AttemptStatus tracks one cycle's debit outcome for a subscription.
type AttemptStatus string

const (
	AttemptFailed    AttemptStatus = "FAILED"
	AttemptRetrying  AttemptStatus = "RETRYING"
	AttemptSucceeded AttemptStatus = "SUCCEEDED"
)

// CycleMonthLayout formats a billing cycle key, e.g. "2026-08".
const CycleMonthLayout = "2006-01"

// DebitAttempt records the latest auto-debit outcome for a subscription in
// one billing cycle.
type DebitAttempt struct {
	ID             snowflake.ID   `gorm:"primaryKey"`
	SubscriptionID snowflake.ID   `gorm:"not null;uniqueIndex:idx_debit_attempts_cycle"`
	CycleMonth     string         `gorm:"type:text;not null;uniqueIndex:idx_debit_attempts_cycle"`
	PhoneNumber    string         `gorm:"type:text;not null"`
	Amount         int64          `gorm:"not null"`
	Attempts       int            `gorm:"not null;default:0"`
	LastError      string         `gorm:"type:text"`
	Status         AttemptStatus  `gorm:"type:text;not null"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (DebitAttempt) TableName() string { return "debit_attempts" }
