package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// transitions is the payment lifecycle. Transitions are monotonic; no
// path returns to pending.
var transitions = map[Status][]Status{
	StatusPending:   {StatusSucceeded, StatusFailed},
	StatusSucceeded: {StatusRefunded},
}

func (s Status) CanTransition(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Payment struct {
	ID              string         `gorm:"primaryKey;type:text"`
	OrderID         string         `gorm:"type:text;not null;index"`
	Amount          int64          `gorm:"not null"`
	Currency        string         `gorm:"type:text;not null"`
	Status          Status         `gorm:"type:text;not null;index"`
	CustomerEmail   string         `gorm:"type:text;not null"`
	CustomerName    string         `gorm:"type:text;not null"`
	BillingAddress  datatypes.JSON `gorm:"type:jsonb;not null"`
	MethodType      string         `gorm:"type:text;not null"`
	CardID          string         `gorm:"type:text;not null"`
	CardLast4       string         `gorm:"type:text;not null"`
	CardBrand       string         `gorm:"type:text;not null"`
	CardExpiryMonth int            `gorm:"not null"`
	CardExpiryYear  int            `gorm:"not null"`
	CardCountry     string         `gorm:"type:text;not null"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	SucceededAt     *time.Time
}

func (Payment) TableName() string { return "payments" }

// Refund rows are append-only; a payment's refund history never shrinks.
type Refund struct {
	ID        string    `gorm:"primaryKey;type:text"`
	PaymentID string    `gorm:"type:text;not null;index"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Refund) TableName() string { return "refunds" }
