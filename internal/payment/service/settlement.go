package service

import (
	"context"
	"time"

	"github.com/smallbiznis/storefront/internal/cardvault"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const settleBatchSize = 50

// Settler drives pending payments to a terminal authorization outcome
// in the background. Payments settle after a short hold so callers
// always observe the pending state first.
type Settler struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     domain.Repository
	vault    cardvault.Vault
	orderSvc orderdomain.Service

	interval time.Duration
	delay    time.Duration
}

type SettlerParams struct {
	fx.In

	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     domain.Repository
	Vault    cardvault.Vault
	OrderSvc orderdomain.Service
}

func NewSettler(p SettlerParams) *Settler {
	return &Settler{
		db:       p.DB,
		log:      p.Log.Named("payment.settler"),
		clock:    p.Clock,
		repo:     p.Repo,
		vault:    p.Vault,
		orderSvc: p.OrderSvc,
		interval: p.Cfg.SettleInterval,
		delay:    p.Cfg.SettleDelay,
	}
}

// Run polls until the context is cancelled.
func (s *Settler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("settlement pass failed", zap.Error(err))
			}
		}
	}
}

// Tick settles every pending payment whose hold has elapsed.
func (s *Settler) Tick(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.delay)
	payments, err := s.repo.FindPendingBefore(ctx, s.db, cutoff, settleBatchSize)
	if err != nil {
		return err
	}

	for i := range payments {
		if err := s.settle(ctx, &payments[i]); err != nil {
			s.log.Error("settle failed",
				zap.String("payment_id", payments[i].ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *Settler) settle(ctx context.Context, p *domain.Payment) error {
	authorized, err := s.vault.Authorize(ctx, p.CardID, p.Amount, p.Currency)
	if err != nil {
		return err
	}

	to := domain.StatusFailed
	if authorized {
		to = domain.StatusSucceeded
	}

	settled, err := s.repo.Settle(ctx, s.db, p.ID, to, s.clock.Now())
	if err != nil {
		return err
	}
	if !settled {
		// Another settler already claimed it.
		return nil
	}

	s.log.Info("payment settled",
		zap.String("payment_id", p.ID),
		zap.String("order_id", p.OrderID),
		zap.String("status", string(to)),
	)

	if to != domain.StatusSucceeded {
		return nil
	}

	// A paid order is best effort here; the order may already have been
	// cancelled, which the transition table rejects.
	if err := s.orderSvc.Advance(ctx, p.OrderID, orderdomain.StatusPaid); err != nil {
		if err == orderdomain.ErrInvalidTransition || err == orderdomain.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}
