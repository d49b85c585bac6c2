package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/storefront/internal/cardvault"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/storefront/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/storefront/internal/catalog/service"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	customerrepository "github.com/smallbiznis/storefront/internal/customer/repository"
	customerservice "github.com/smallbiznis/storefront/internal/customer/service"
	"github.com/smallbiznis/storefront/internal/migration"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	orderrepository "github.com/smallbiznis/storefront/internal/order/repository"
	orderservice "github.com/smallbiznis/storefront/internal/order/service"
	"github.com/smallbiznis/storefront/internal/payment/domain"
	"github.com/smallbiznis/storefront/internal/payment/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fixture struct {
	db         *gorm.DB
	clk        *clock.Fake
	paymentSvc domain.Service
	orderSvc   orderdomain.Service
	settler    *Settler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.Run(db))

	log := zap.NewNop()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	vault := cardvault.NewStatic()

	now := clk.Now()
	require.NoError(t, db.Create(&catalogdomain.Product{
		ID:            "prod_test",
		Name:          "Test Product",
		PriceAmount:   1000,
		PriceCurrency: "usd",
		Brand:         "TestCo",
		Features:      datatypes.JSON([]byte(`[]`)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}).Error)
	require.NoError(t, db.Create(&customerdomain.Customer{
		ID:        "cus_test",
		Email:     "pat@example.com",
		Name:      "Pat Doe",
		Line1:     "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Country:   "US",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	customerSvc := customerservice.New(customerservice.Params{
		DB: db, Log: log, Repo: customerrepository.Provide(),
	})
	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, Repo: catalogrepository.Provide(),
	})
	orderSvc := orderservice.New(orderservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo:        orderrepository.Provide(),
		CatalogSvc:  catalogSvc,
		CustomerSvc: customerSvc,
	})

	repo := repository.Provide()
	paymentSvc := New(Params{
		DB: db, Log: log, Clock: clk, Repo: repo, Vault: vault,
		OrderSvc: orderSvc, CustomerSvc: customerSvc,
	})
	settler := NewSettler(SettlerParams{
		Cfg:      config.Config{SettleInterval: 10 * time.Millisecond, SettleDelay: time.Second},
		DB:       db,
		Log:      log,
		Clock:    clk,
		Repo:     repo,
		Vault:    vault,
		OrderSvc: orderSvc,
	})

	return &fixture{db: db, clk: clk, paymentSvc: paymentSvc, orderSvc: orderSvc, settler: settler}
}

func (f *fixture) createOrder(t *testing.T) *orderdomain.Response {
	t.Helper()
	order, err := f.orderSvc.Create(context.Background(), orderdomain.CreateRequest{
		CustomerID: "cus_test",
		Items:      []orderdomain.ItemRequest{{ProductID: "prod_test", Quantity: 2}},
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) createPayment(t *testing.T, cardID string) *domain.Response {
	t.Helper()
	order := f.createOrder(t)
	payment, err := f.paymentSvc.Create(context.Background(), domain.CreateRequest{
		Amount:        2000,
		Currency:      "usd",
		OrderID:       order.ID,
		PaymentMethod: domain.MethodRequest{Type: "card", CardID: cardID},
	})
	require.NoError(t, err)
	return payment
}

func TestSettlementHonorsHoldDelay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_ok")

	// Within the hold window nothing settles.
	require.NoError(t, f.settler.Tick(ctx))
	got, err := f.paymentSvc.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)

	f.clk.Advance(2 * time.Second)
	require.NoError(t, f.settler.Tick(ctx))

	got, err = f.paymentSvc.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSucceeded, got.Status)
	require.NotNil(t, got.Timestamps.SucceededAt)
}

func TestSettlementAdvancesOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_ok")
	f.clk.Advance(2 * time.Second)
	require.NoError(t, f.settler.Tick(ctx))

	order, err := f.orderSvc.Get(ctx, payment.OrderID)
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPaid, order.Status)
}

func TestSettlementDecline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_declined")
	f.clk.Advance(2 * time.Second)
	require.NoError(t, f.settler.Tick(ctx))

	got, err := f.paymentSvc.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, got.Status)
	require.Nil(t, got.Timestamps.SucceededAt)

	// A failed authorization leaves the order unpaid.
	order, err := f.orderSvc.Get(ctx, payment.OrderID)
	require.NoError(t, err)
	require.Equal(t, orderdomain.StatusPending, order.Status)
}

func TestSettlementIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_ok")
	f.clk.Advance(2 * time.Second)
	require.NoError(t, f.settler.Tick(ctx))

	got, err := f.paymentSvc.Get(ctx, payment.ID)
	require.NoError(t, err)
	firstSucceededAt := got.Timestamps.SucceededAt
	require.NotNil(t, firstSucceededAt)

	// Later ticks never touch a settled payment or rewrite succeededAt.
	f.clk.Advance(time.Minute)
	require.NoError(t, f.settler.Tick(ctx))

	got, err = f.paymentSvc.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSucceeded, got.Status)
	require.Equal(t, *firstSucceededAt, *got.Timestamps.SucceededAt)
}

func TestRefundAccountsRemainder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_ok")
	f.clk.Advance(2 * time.Second)
	require.NoError(t, f.settler.Tick(ctx))

	partial, err := f.paymentSvc.Refund(ctx, payment.ID, 500)
	require.NoError(t, err)
	require.Equal(t, domain.StatusSucceeded, partial.Status)
	require.Equal(t, 1, partial.Refunds.Total)
	require.Len(t, partial.Refunds.Data, 1)

	_, err = f.paymentSvc.Refund(ctx, payment.ID, 1501)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	full, err := f.paymentSvc.Refund(ctx, payment.ID, 1500)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRefunded, full.Status)
	require.Equal(t, 2, full.Refunds.Total)
}

func TestRefundRequiresSettledPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payment := f.createPayment(t, "card_ok")
	_, err := f.paymentSvc.Refund(ctx, payment.ID, 100)
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCreateNormalizesCurrency(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t)

	payment, err := f.paymentSvc.Create(context.Background(), domain.CreateRequest{
		Amount:        2000,
		Currency:      "EUR",
		OrderID:       order.ID,
		PaymentMethod: domain.MethodRequest{Type: "card", CardID: "card_ok"},
	})
	require.NoError(t, err)
	require.Equal(t, "eur", payment.Currency)
}
