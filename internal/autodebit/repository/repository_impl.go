package repository

import (
	"context"
	"errors"

	"github.com/belifehq/belife/internal/autodebit/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, attempt *domain.DebitAttempt) error {
	return db.WithContext(ctx).Create(attempt).Error
}

func (r *repo) FindBySubscriptionAndCycle(ctx context.Context, db *gorm.DB, subscriptionID snowflake.ID, cycleMonth string) (*domain.DebitAttempt, error) {
	var attempt domain.DebitAttempt
	err := db.WithContext(ctx).
		First(&attempt, "subscription_id = ? AND cycle_month = ?", subscriptionID, cycleMonth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, attempt *domain.DebitAttempt) error {
	return db.WithContext(ctx).Save(attempt).Error
}

func (r *repo) ListFailedByCycle(ctx context.Context, db *gorm.DB, cycleMonth string) ([]domain.DebitAttempt, error) {
	var attempts []domain.DebitAttempt
	err := db.WithContext(ctx).
		Where("cycle_month = ? AND status = ?", cycleMonth, domain.AttemptFailed).
		Order("created_at ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, ids []snowflake.ID, status domain.AttemptStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&domain.DebitAttempt{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}
