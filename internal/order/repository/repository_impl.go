package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order, items []domain.Item) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repo) ItemsByOrderID(ctx context.Context, db *gorm.DB, orderID string) ([]domain.Item, error) {
	var items []domain.Item
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPage(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Order, map[string][]domain.Item, int64, error) {
	var (
		orders []domain.Order
		items  map[string][]domain.Item
		total  int64
	)

	// Count, page, and item fetch share one transaction so the response
	// is a consistent snapshot.
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Order{}).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
			return err
		}

		items = make(map[string][]domain.Item, len(orders))
		if len(orders) == 0 {
			return nil
		}

		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}

		var rows []domain.Item
		if err := tx.Where("order_id IN ?", ids).Order("position ASC").Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			items[row.OrderID] = append(items[row.OrderID], row)
		}
		return nil
	})
	if err != nil {
		return nil, nil, 0, err
	}
	return orders, items, total, nil
}

func (r *repo) TransitionStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.Status) (bool, error) {
	res := db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
