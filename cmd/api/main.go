package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alemiherbert/pesa-pay/internal/adapters"
	"github.com/alemiherbert/pesa-pay/internal/config"
	"github.com/alemiherbert/pesa-pay/internal/controller"
	"github.com/alemiherbert/pesa-pay/internal/core"
	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/ports"
	"github.com/alemiherbert/pesa-pay/internal/repository"
	"github.com/alemiherbert/pesa-pay/internal/service"
)

func main() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Load configurations
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Initialize the payment store
	var repo ports.PaymentRepository
	if cfg.DbHost == "" {
		logger.Warn("DB_HOST not set, using in-memory payment store")
		repo = repository.NewInMemoryPaymentRepository()
	} else {
		pool, err := config.InitPostgresPool(cfg.DatabaseURL())
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		defer pool.Close()

		pgRepo := repository.NewPaymentRepository(pool)
		if err := pgRepo.Migrate(context.Background()); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
		repo = pgRepo
	}

	// Declare providers
	const sandbox model.PaymentProvider = "sandbox"

	// Initialize providers
	providerRegistry := core.NewAuthorizerRegistry()
	providerRegistry.Register(sandbox, adapters.NewSandboxAdapter())

	authorizer, err := providerRegistry.Get(model.PaymentProvider(cfg.AuthProvider))
	if err != nil {
		logger.Fatal("failed to resolve authorizer", zap.Error(err))
	}

	// Setup services
	paymentService := service.NewPaymentService(repo, authorizer, logger)
	paymentController := controller.NewPaymentController(paymentService, logger)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/payments/health", paymentController.GetHealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/payments", func(r chi.Router) {
		r.Use(controller.APIKeyAuth(cfg.APIKey))
		r.Post("/", paymentController.CreatePayment)
		r.Get("/", paymentController.ListPayments)
		r.Get("/{id}", paymentController.GetPayment)
		r.Post("/{id}/refund", paymentController.RefundPayment)
	})

	// Start server
	logger.Info("server running", zap.Int("port", cfg.Port))
	if err := http.ListenAndServe(":"+strconv.Itoa(cfg.Port), r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
