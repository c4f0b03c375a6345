package repository

import (
	"context"
	"errors"

	"github.com/belifehq/belife/internal/insurance/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindInsuranceByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Insurance, error) {
	var insurance domain.Insurance
	err := db.WithContext(ctx).First(&insurance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insurance, nil
}

func (r *repo) ListInsurances(ctx context.Context, db *gorm.DB) ([]domain.Insurance, error) {
	var insurances []domain.Insurance
	err := db.WithContext(ctx).Order("product_name asc").Find(&insurances).Error
	return insurances, err
}

func (r *repo) FindPremiumFeeByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PremiumFee, error) {
	var fee domain.PremiumFee
	err := db.WithContext(ctx).First(&fee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fee, nil
}
