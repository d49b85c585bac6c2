package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/storefront/internal/cardvault"
	"github.com/smallbiznis/storefront/internal/clock"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/pkg/timestamp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const methodTypeCard = "card"

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	Repo        domain.Repository
	Vault       cardvault.Vault
	OrderSvc    orderdomain.Service
	CustomerSvc customerdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	repo        domain.Repository
	vault       cardvault.Vault
	orderSvc    orderdomain.Service
	customerSvc customerdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("payment.service"),
		clock:       p.Clock,
		repo:        p.Repo,
		vault:       p.Vault,
		orderSvc:    p.OrderSvc,
		customerSvc: p.CustomerSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	currency, ok := domain.NormalizeCurrency(req.Currency)
	if !ok {
		return nil, domain.ErrInvalidCurrency
	}
	if req.PaymentMethod.Type != methodTypeCard || strings.TrimSpace(req.PaymentMethod.CardID) == "" {
		return nil, domain.ErrInvalidMethod
	}

	order, err := s.orderSvc.Get(ctx, strings.TrimSpace(req.OrderID))
	if err != nil {
		if err == orderdomain.ErrNotFound {
			return nil, domain.ErrInvalidOrder
		}
		return nil, err
	}

	customerName := ""
	if customer, err := s.customerSvc.Get(ctx, order.CustomerID); err == nil {
		customerName = customer.Name
	}

	card, err := s.vault.Resolve(ctx, req.PaymentMethod.CardID)
	if err != nil {
		s.log.Error("card vault resolve failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, cardvault.ErrUnavailable
	}

	billing, err := json.Marshal(order.Shipping.Address)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	payment := &domain.Payment{
		ID:              "pay_" + ulid.Make().String(),
		OrderID:         order.ID,
		Amount:          req.Amount,
		Currency:        currency,
		Status:          domain.StatusPending,
		CustomerEmail:   order.Customer.Email,
		CustomerName:    customerName,
		BillingAddress:  datatypes.JSON(billing),
		MethodType:      methodTypeCard,
		CardID:          strings.TrimSpace(req.PaymentMethod.CardID),
		CardLast4:       card.Last4,
		CardBrand:       card.Brand,
		CardExpiryMonth: card.ExpiryMonth,
		CardExpiryYear:  card.ExpiryYear,
		CardCountry:     card.Country,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, s.db, payment); err != nil {
		return nil, err
	}

	resp := s.toResponse(payment, nil)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	payment, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}

	refunds, err := s.repo.RefundsByPaymentID(ctx, s.db, payment.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(payment, refunds)
	return &resp, nil
}

func (s *Service) Refund(ctx context.Context, paymentID string, amount int64) (*domain.Response, error) {
	payment, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(paymentID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.Status != domain.StatusSucceeded && payment.Status != domain.StatusRefunded {
		return nil, domain.ErrInvalidState
	}

	refunds, err := s.repo.RefundsByPaymentID(ctx, s.db, payment.ID)
	if err != nil {
		return nil, err
	}

	var refunded int64
	for _, r := range refunds {
		refunded += r.Amount
	}
	remainder := payment.Amount - refunded
	if amount <= 0 || amount > remainder {
		return nil, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	refund := &domain.Refund{
		ID:        "re_" + ulid.Make().String(),
		PaymentID: payment.ID,
		Amount:    amount,
		Status:    "succeeded",
		CreatedAt: now,
	}
	if err := s.repo.AppendRefund(ctx, s.db, refund, amount == remainder, now); err != nil {
		return nil, err
	}

	return s.Get(ctx, payment.ID)
}

func (s *Service) toResponse(p *domain.Payment, refunds []domain.Refund) domain.Response {
	var address customerdomain.Address
	if len(p.BillingAddress) > 0 {
		if err := json.Unmarshal(p.BillingAddress, &address); err != nil {
			s.log.Warn("malformed billing address", zap.String("payment_id", p.ID), zap.Error(err))
		}
	}

	data := make([]domain.RefundResponse, 0, len(refunds))
	for _, r := range refunds {
		data = append(data, domain.RefundResponse{
			ID:        r.ID,
			Amount:    r.Amount,
			Status:    r.Status,
			CreatedAt: timestamp.Of(r.CreatedAt),
		})
	}

	return domain.Response{
		ID:       p.ID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Status:   p.Status,
		OrderID:  p.OrderID,
		Customer: domain.CustomerInfo{
			Email: p.CustomerEmail,
			Name:  p.CustomerName,
		},
		Billing: domain.Billing{Address: address},
		PaymentMethod: domain.MethodResponse{
			Type: p.MethodType,
			Card: cardvault.Card{
				Last4:       p.CardLast4,
				Brand:       p.CardBrand,
				ExpiryMonth: p.CardExpiryMonth,
				ExpiryYear:  p.CardExpiryYear,
				Country:     p.CardCountry,
			},
		},
		Refunds: domain.RefundsResponse{
			Total: len(data),
			Data:  data,
		},
		Timestamps: domain.Timestamps{
			CreatedAt:   timestamp.Of(p.CreatedAt),
			UpdatedAt:   timestamp.Of(p.UpdatedAt),
			SucceededAt: timestamp.Ptr(p.SucceededAt),
		},
	}
}
