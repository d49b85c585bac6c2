package domain

import (
	"context"
	"errors"
)

type Service interface {
	Get(ctx context.Context, id string) (*Response, error)
}

// Response is the public product projection.
type Response struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Price          Price          `json:"price"`
	Inventory      Inventory      `json:"inventory"`
	Specifications Specifications `json:"specifications"`
	Ratings        Ratings        `json:"ratings"`
	Metadata       Metadata       `json:"metadata"`
}

type Price struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Inventory struct {
	Quantity int64 `json:"quantity"`
}

type Specifications struct {
	Brand    string   `json:"brand"`
	Features []string `json:"features"`
}

type Ratings struct {
	Average float64 `json:"average"`
}

type Metadata struct {
	IsFeatured bool `json:"isFeatured"`
}

var ErrNotFound = errors.New("not_found")
