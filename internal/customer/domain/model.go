package domain

import (
	"errors"
	"time"
)

// Address is the postal address shape shared by customer records, order
// shipping, and payment billing projections.
type Address struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postalCode"`
	Country    string  `json:"country"`
}

type Customer struct {
	ID         string    `json:"id" gorm:"primaryKey;type:text"`
	Email      string    `json:"email" gorm:"type:text;not null"`
	Name       string    `json:"name" gorm:"type:text;not null"`
	Line1      string    `json:"-" gorm:"type:text"`
	City       string    `json:"-" gorm:"type:text"`
	State      string    `json:"-" gorm:"type:text"`
	PostalCode string    `json:"-" gorm:"type:text"`
	Country    string    `json:"-" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }

// Address assembles the stored columns into the shared shape.
func (c *Customer) Address() Address {
	return Address{
		Line1:      c.Line1,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Country:    c.Country,
	}
}

var ErrNotFound = errors.New("customer_not_found")
