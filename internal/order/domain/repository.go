package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, db *gorm.DB, order *Order, items []Item) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Order, error)
	ItemsByOrderID(ctx context.Context, db *gorm.DB, orderID string) ([]Item, error)
	// ListPage returns one creation-ordered page plus the total count,
	// read from a single snapshot.
	ListPage(ctx context.Context, db *gorm.DB, limit, offset int) ([]Order, map[string][]Item, int64, error)
	// TransitionStatus applies from→to with a guarded update and reports
	// whether a row actually changed.
	TransitionStatus(ctx context.Context, db *gorm.DB, id string, from, to Status) (bool, error)
}
