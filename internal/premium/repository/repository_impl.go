package repository

import (
	"context"
	"errors"

	"github.com/belifehq/belife/internal/premium/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, premium *domain.Premium) error {
	return db.WithContext(ctx).Create(premium).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Premium, error) {
	var premium domain.Premium
	err := db.WithContext(ctx).First(&premium, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &premium, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Premium, error) {
	var premium domain.Premium
	err := db.WithContext(ctx).First(&premium, "payment_reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &premium, nil
}

func (r *repo) ListByContract(ctx context.Context, db *gorm.DB, contractID snowflake.ID) ([]domain.Premium, error) {
	var premiums []domain.Premium
	err := db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&premiums).Error
	if err != nil {
		return nil, err
	}
	return premiums, nil
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.PaymentStatus) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Premium{}).
		Where("id = ? AND payment_status = ?", id, domain.PaymentPending).
		Update("payment_status", status)
	return result.RowsAffected, result.Error
}
