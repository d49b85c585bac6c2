package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/storefront/internal/directory/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repo) ListPage(ctx context.Context, db *gorm.DB, role string, limit, offset int) ([]domain.User, int64, error) {
	var (
		items []domain.User
		total int64
	)

	// Count and page inside one transaction so total and data never
	// disagree within a single response.
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmt := tx.Model(&domain.User{})
		if role != "" {
			stmt = stmt.Where("role = ?", role)
		}
		if err := stmt.Count(&total).Error; err != nil {
			return err
		}
		return stmt.Order("id ASC").Limit(limit).Offset(offset).Find(&items).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
