package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions is the full order lifecycle. Only pending→paid is driven
// by this service today (payment settlement); the rest belong to the
// fulfillment workflow.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

func (s Status) CanTransition(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string         `gorm:"primaryKey;type:text"`
	CustomerID      string         `gorm:"type:text;not null;index"`
	CustomerEmail   string         `gorm:"type:text;not null"`
	Status          Status         `gorm:"type:text;not null"`
	Currency        string         `gorm:"type:text;not null"`
	Total           int64          `gorm:"not null"`
	ShippingAddress datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time      `gorm:"not null;index"`
	UpdatedAt       time.Time      `gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// Item is one order line. Unit amount is captured at creation so totals
// stay frozen even if catalog prices change later.
type Item struct {
	ID         int64  `gorm:"primaryKey"`
	OrderID    string `gorm:"type:text;not null;index"`
	ProductID  string `gorm:"type:text;not null"`
	Quantity   int64  `gorm:"not null"`
	UnitAmount int64  `gorm:"not null"`
	Position   int    `gorm:"not null"`
}

func (Item) TableName() string { return "order_items" }
