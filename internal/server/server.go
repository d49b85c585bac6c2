package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/storefront/internal/auth"
	"github.com/smallbiznis/storefront/internal/cardvault"
	"github.com/smallbiznis/storefront/internal/catalog"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/customer"
	"github.com/smallbiznis/storefront/internal/directory"
	directorydomain "github.com/smallbiznis/storefront/internal/directory/domain"
	obsmetrics "github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/order"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/payment"
	paymentdomain "github.com/smallbiznis/storefront/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	auth.Module,
	cardvault.Module,
	clock.Module,
	customer.Module,
	catalog.Module,
	directory.Module,
	order.Module,
	payment.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(log.Named("http")))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	verifier     auth.Verifier
	paymentSvc   paymentdomain.Service
	orderSvc     orderdomain.Service
	catalogSvc   catalogdomain.Service
	directorySvc directorydomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Verifier     auth.Verifier
	PaymentSvc   paymentdomain.Service
	OrderSvc     orderdomain.Service
	CatalogSvc   catalogdomain.Service
	DirectorySvc directorydomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		verifier:     p.Verifier,
		paymentSvc:   p.PaymentSvc,
		orderSvc:     p.OrderSvc,
		catalogSvc:   p.CatalogSvc,
		directorySvc: p.DirectorySvc,
	}

	svc.registerAPIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Payments --------
	api.POST("/payments", s.BearerRequired(), s.CreatePayment)
	api.GET("/payments/:id", s.BearerRequired(), s.GetPaymentByID)
	api.POST("/payments/:id/refunds", s.BearerRequired(), s.CreateRefund)

	// -------- Orders --------
	api.GET("/orders", s.BearerRequired(), s.ListOrders)
	api.POST("/orders", s.BearerRequired(), s.CreateOrder)
	api.GET("/orders/:id", s.BearerRequired(), s.GetOrderByID)

	// -------- Products --------
	api.GET("/products/:id", s.GetProductByID)

	// -------- Users --------
	api.GET("/users", s.BearerRequired(), s.ListUsers)
	api.GET("/users/:id", s.GetUserByID)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}})
	})
}
