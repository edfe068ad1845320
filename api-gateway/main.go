package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitebook/api-gateway/internal/gateway"
	"bitebook/config"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func gatewayConfigFromEnv() gateway.Config {
	return gateway.Config{
		OrderSvcURL: config.Getenv("ORDER_SVC_URL", "http://localhost:8081"),
		RelaySvcURL: config.Getenv("RELAY_SVC_URL", "http://localhost:8082"),
	}
}

func newHandler(gw *gateway.Gateway) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(gw.SetupRoutes())
}

func main() {
	config.LoadEnv()
	logger := config.NewLogger("api-gateway")
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: config.GetenvDuration("UPSTREAM_TIMEOUT", 30*time.Second)}
	gw := gateway.NewGateway(gatewayConfigFromEnv(), client, logger)

	addr := config.Getenv("GATEWAY_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(gw),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("api gateway starting", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}
