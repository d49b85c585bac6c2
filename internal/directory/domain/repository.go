package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*User, error)
	// ListPage returns one page of users in insertion (id) order plus the
	// total count of the filtered set, read from a single snapshot.
	ListPage(ctx context.Context, db *gorm.DB, role string, limit, offset int) ([]User, int64, error)
}
