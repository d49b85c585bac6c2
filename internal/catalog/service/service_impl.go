package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/smallbiznis/storefront/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := s.toResponse(item)
	return &resp, nil
}

func (s *Service) toResponse(p *domain.Product) domain.Response {
	features := []string{}
	if len(p.Features) > 0 {
		if err := json.Unmarshal(p.Features, &features); err != nil {
			s.log.Warn("malformed features column", zap.String("product_id", p.ID), zap.Error(err))
		}
	}

	return domain.Response{
		ID:   p.ID,
		Name: p.Name,
		Price: domain.Price{
			Amount:   p.PriceAmount,
			Currency: p.PriceCurrency,
		},
		Inventory: domain.Inventory{
			Quantity: p.InventoryQuantity,
		},
		Specifications: domain.Specifications{
			Brand:    p.Brand,
			Features: features,
		},
		Ratings: domain.Ratings{
			Average: p.RatingAverage,
		},
		Metadata: domain.Metadata{
			IsFeatured: p.IsFeatured,
		},
	}
}
