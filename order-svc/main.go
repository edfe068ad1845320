package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bitebook/auth"
	"bitebook/config"
	httpapi "bitebook/order-svc/internal/api/http"
	"bitebook/order-svc/internal/service"
	"bitebook/order-svc/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func checkoutPolicyFromEnv(logger *zap.Logger) service.CheckoutPolicy {
	policy := service.DefaultCheckoutPolicy()

	if raw := config.Getenv("DELIVERY_FEE", ""); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil || fee.IsNegative() {
			logger.Warn("ignoring invalid DELIVERY_FEE", zap.String("value", raw))
		} else {
			policy.DeliveryFee = fee
		}
	}
	policy.MinAddressLength = config.GetenvInt("MIN_ADDRESS_LENGTH", policy.MinAddressLength)
	policy.AllowCODForPickup = config.GetenvBool("ALLOW_COD_FOR_PICKUP", policy.AllowCODForPickup)
	return policy
}

func dispatcherConfigFromEnv() service.DispatcherConfig {
	cfg := service.DefaultDispatcherConfig()
	cfg.QueueSize = config.GetenvInt("NOTIFY_QUEUE_SIZE", cfg.QueueSize)
	cfg.Workers = config.GetenvInt("NOTIFY_WORKERS", cfg.Workers)
	cfg.MaxAttempts = config.GetenvInt("NOTIFY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.RetryDelay = config.GetenvDuration("NOTIFY_RETRY_DELAY", cfg.RetryDelay)
	return cfg
}

func main() {
	config.LoadEnv()
	logger := config.NewLogger("order-svc")
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres()
	defer db.Close()
	rdb := config.MustInitRedis()
	defer rdb.Close()
	writer := config.NewKafkaWriter(config.NotifyTopic())
	defer writer.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	issuer := auth.NewIssuer(secret, config.GetenvDuration("JWT_TTL", auth.DefaultTTL))

	pgRepo := storage.NewPostgresRepository(db)
	if err := pgRepo.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}
	redisStore := storage.NewRedisStore(rdb,
		config.GetenvDuration("CART_TTL", storage.DefaultCartTTL),
		config.GetenvDuration("CHECKOUT_TTL", storage.DefaultSessionTTL))
	publisher := storage.NewKafkaPublisher(writer)

	dispatcher := service.NewDispatcher(dispatcherConfigFromEnv(), logger.Named("dispatcher"))
	defer dispatcher.Close()

	catalog := service.NewCatalogService(pgRepo, pgRepo)
	carts := service.NewCartStore(redisStore, catalog, logger)
	qr := service.DefaultQRGenerator{BaseURL: config.Getenv("QR_BASE_URL", "http://localhost:8080")}
	orders := service.NewOrderService(pgRepo, pgRepo, dispatcher, publisher, qr, logger)
	checkout := service.NewCheckoutFlow(redisStore, carts, catalog, orders, checkoutPolicyFromEnv(logger), logger)

	handler := httpapi.NewHandler(catalog, carts, checkout, orders, auth.Middleware(issuer), logger)
	router := httpapi.NewRouter(handler)

	if err := httpapi.StartServer(ctx, config.Getenv("ORDER_SVC_ADDR", ":8081"), router, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	logger.Info("order service stopped, draining notifications")
}
