package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/storefront/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Payment, error) {
	var p domain.Payment
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) RefundsByPaymentID(ctx context.Context, db *gorm.DB, paymentID string) ([]domain.Refund, error) {
	var refunds []domain.Refund
	err := db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC, id ASC").
		Find(&refunds).Error
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

func (r *repo) FindPendingBefore(ctx context.Context, db *gorm.DB, cutoff time.Time, limit int) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", domain.StatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) Settle(ctx context.Context, db *gorm.DB, id string, to domain.Status, at time.Time) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": at,
	}
	if to == domain.StatusSucceeded {
		updates["succeeded_at"] = at
	}

	// Guarded on the pending state so a concurrent settle can never
	// regress a status or rewrite succeeded_at.
	res := db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) AppendRefund(ctx context.Context, db *gorm.DB, refund *domain.Refund, fullyRefunded bool, at time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refund).Error; err != nil {
			return err
		}
		updates := map[string]any{"updated_at": at}
		if fullyRefunded {
			updates["status"] = domain.StatusRefunded
		}
		return tx.Model(&domain.Payment{}).
			Where("id = ? AND status IN ?", refund.PaymentID, []domain.Status{domain.StatusSucceeded, domain.StatusRefunded}).
			Updates(updates).Error
	})
}
