package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/clock"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	"github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/pkg/pagination"
	"github.com/smallbiznis/storefront/pkg/timestamp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CatalogSvc  catalogdomain.Service
	CustomerSvc customerdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		catalogSvc:  p.CatalogSvc,
		customerSvc: p.CustomerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}

	customer, err := s.customerSvc.Get(ctx, strings.TrimSpace(req.CustomerID))
	if err != nil {
		if err == customerdomain.ErrNotFound {
			return nil, domain.ErrInvalidCustomer
		}
		return nil, err
	}

	now := s.clock.Now()
	orderID := "order_" + ulid.Make().String()

	var (
		total    int64
		currency string
		items    = make([]domain.Item, 0, len(req.Items))
	)
	for i, line := range req.Items {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidItem
		}
		product, err := s.catalogSvc.Get(ctx, strings.TrimSpace(line.ProductID))
		if err != nil {
			if err == catalogdomain.ErrNotFound {
				return nil, domain.ErrInvalidProduct
			}
			return nil, err
		}
		total += line.Quantity * product.Price.Amount
		currency = product.Price.Currency
		items = append(items, domain.Item{
			ID:         s.genID.Generate().Int64(),
			OrderID:    orderID,
			ProductID:  product.ID,
			Quantity:   line.Quantity,
			UnitAmount: product.Price.Amount,
			Position:   i,
		})
	}

	shipping, err := json.Marshal(req.Shipping.Address)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              orderID,
		CustomerID:      customer.ID,
		CustomerEmail:   customer.Email,
		Status:          domain.StatusPending,
		Currency:        currency,
		Total:           total,
		ShippingAddress: datatypes.JSON(shipping),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, s.db, order, items); err != nil {
		return nil, err
	}

	resp := s.toResponse(order, items)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	order, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.repo.ItemsByOrderID(ctx, s.db, order.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(order, items)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, page pagination.Offset) (*domain.ListResponse, error) {
	orders, items, total, err := s.repo.ListPage(ctx, s.db, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	data := make([]domain.Response, 0, len(orders))
	for i := range orders {
		data = append(data, s.toResponse(&orders[i], items[orders[i].ID]))
	}

	return &domain.ListResponse{
		Data: data,
		Pagination: pagination.OffsetMeta{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  total,
		},
	}, nil
}

func (s *Service) Advance(ctx context.Context, id string, to domain.Status) error {
	order, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if !order.Status.CanTransition(to) {
		return domain.ErrInvalidTransition
	}

	changed, err := s.repo.TransitionStatus(ctx, s.db, order.ID, order.Status, to)
	if err != nil {
		return err
	}
	if !changed {
		// Lost the race against a concurrent transition.
		return domain.ErrInvalidTransition
	}
	return nil
}

func (s *Service) toResponse(o *domain.Order, items []domain.Item) domain.Response {
	var address customerdomain.Address
	if len(o.ShippingAddress) > 0 {
		if err := json.Unmarshal(o.ShippingAddress, &address); err != nil {
			s.log.Warn("malformed shipping address", zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	lines := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.ItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return domain.Response{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Customer:   domain.CustomerInfo{Email: o.CustomerEmail},
		Items:      lines,
		Totals:     domain.Totals{Total: o.Total},
		Shipping:   domain.Shipping{Address: address},
		CreatedAt:  timestamp.Of(o.CreatedAt),
		UpdatedAt:  timestamp.Of(o.UpdatedAt),
	}
}
