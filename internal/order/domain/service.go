package domain

import (
	"context"
	"errors"

	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/pkg/pagination"
	"github.com/smallbiznis/storefront/pkg/timestamp"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, page pagination.Offset) (*ListResponse, error)
	// Advance moves an order along the lifecycle, rejecting transitions
	// the table does not allow.
	Advance(ctx context.Context, id string, to Status) error
}

type CreateRequest struct {
	CustomerID string
	Items      []ItemRequest
	Shipping   Shipping
}

type ItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type Shipping struct {
	Address customerdomain.Address `json:"address"`
}

type Response struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customerId"`
	Status     Status         `json:"status"`
	Customer   CustomerInfo   `json:"customer"`
	Items      []ItemResponse `json:"items"`
	Totals     Totals         `json:"totals"`
	Shipping   Shipping       `json:"shipping"`
	CreatedAt  timestamp.UTC  `json:"createdAt"`
	UpdatedAt  timestamp.UTC  `json:"updatedAt"`
}

type CustomerInfo struct {
	Email string `json:"email"`
}

type ItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type Totals struct {
	Total int64 `json:"total"`
}

type ListResponse struct {
	Data       []Response            `json:"data"`
	Pagination pagination.OffsetMeta `json:"pagination"`
}

var (
	ErrEmptyItems        = errors.New("empty_items")
	ErrInvalidItem       = errors.New("invalid_request")
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidTransition = errors.New("invalid_state")
)
