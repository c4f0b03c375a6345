// Package domain contains persistence models for customers and the
// beneficiaries their subscriptions cover.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Customer is a subscriber reached over USSD, identified by phone number.
type Customer struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	FullName    string         `gorm:"type:text;not null"`
	BirthDate   *time.Time     `gorm:""`
	PhoneNumber string         `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// Beneficiary is the person covered by a subscription.
type Beneficiary struct {
	ID          snowflake.ID   `gorm:"primaryKey"`
	FullName    string         `gorm:"type:text;not null"`
	BirthDate   *time.Time     `gorm:""`
	PhoneNumber string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName sets the database table name.
func (Beneficiary) TableName() string { return "beneficiaries" }
