package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/storefront/internal/cardvault"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/pkg/timestamp"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// Refund appends to the refunds sub-collection of a succeeded payment.
	Refund(ctx context.Context, paymentID string, amount int64) (*Response, error)
}

type CreateRequest struct {
	Amount        int64
	Currency      string
	OrderID       string
	PaymentMethod MethodRequest
}

type MethodRequest struct {
	Type   string `json:"type"`
	CardID string `json:"cardId"`
}

type Response struct {
	ID            string          `json:"id"`
	Amount        int64           `json:"amount"`
	Currency      string          `json:"currency"`
	Status        Status          `json:"status"`
	OrderID       string          `json:"orderId"`
	Customer      CustomerInfo    `json:"customer"`
	Billing       Billing         `json:"billing"`
	PaymentMethod MethodResponse  `json:"paymentMethod"`
	Refunds       RefundsResponse `json:"refunds"`
	Timestamps    Timestamps      `json:"timestamps"`
}

type CustomerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Billing struct {
	Address customerdomain.Address `json:"address"`
}

type MethodResponse struct {
	Type string         `json:"type"`
	Card cardvault.Card `json:"card"`
}

type RefundsResponse struct {
	Total int              `json:"total"`
	Data  []RefundResponse `json:"data"`
}

type RefundResponse struct {
	ID        string        `json:"id"`
	Amount    int64         `json:"amount"`
	Status    string        `json:"status"`
	CreatedAt timestamp.UTC `json:"createdAt"`
}

type Timestamps struct {
	CreatedAt   timestamp.UTC  `json:"createdAt"`
	UpdatedAt   timestamp.UTC  `json:"updatedAt"`
	SucceededAt *timestamp.UTC `json:"succeededAt,omitempty"`
}

var (
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidCurrency = errors.New("invalid_currency")
	ErrInvalidMethod   = errors.New("invalid_request")
	ErrInvalidOrder    = errors.New("invalid_order")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidState    = errors.New("invalid_state")
)
