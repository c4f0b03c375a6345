package repository

import (
	"context"
	"errors"

	"github.com/belifehq/belife/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertCustomer(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) InsertBeneficiary(ctx context.Context, db *gorm.DB, beneficiary *domain.Beneficiary) error {
	return db.WithContext(ctx).Create(beneficiary).Error
}

func (r *repo) FindCustomerByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindCustomerByPhoneNumber(ctx context.Context, db *gorm.DB, phoneNumber string) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).First(&customer, "phone_number = ?", phoneNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) FindBeneficiaryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Beneficiary, error) {
	var beneficiary domain.Beneficiary
	err := db.WithContext(ctx).First(&beneficiary, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &beneficiary, nil
}
