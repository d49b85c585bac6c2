package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Payment, error)
	RefundsByPaymentID(ctx context.Context, db *gorm.DB, paymentID string) ([]Refund, error)
	// FindPendingBefore returns pending payments created at or before the
	// cutoff, oldest first.
	FindPendingBefore(ctx context.Context, db *gorm.DB, cutoff time.Time, limit int) ([]Payment, error)
	// Settle applies pending→succeeded or pending→failed with a guarded
	// update. succeededAt is written exactly once, on success only.
	Settle(ctx context.Context, db *gorm.DB, id string, to Status, at time.Time) (bool, error)
	// AppendRefund inserts the refund row and, when the payment becomes
	// fully refunded, flips succeeded→refunded, atomically.
	AppendRefund(ctx context.Context, db *gorm.DB, refund *Refund, fullyRefunded bool, at time.Time) error
}
