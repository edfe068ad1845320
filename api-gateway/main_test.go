package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitebook/api-gateway/internal/gateway"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGatewayConfigFromEnv(t *testing.T) {
	t.Setenv("ORDER_SVC_URL", "http://orders:8081")
	t.Setenv("RELAY_SVC_URL", "")

	cfg := gatewayConfigFromEnv()

	assert.Equal(t, "http://orders:8081", cfg.OrderSvcURL)
	assert.Equal(t, "http://localhost:8082", cfg.RelaySvcURL)
}

func TestHandlerAnswersPreflight(t *testing.T) {
	handler := newHandler(gateway.NewGateway(gateway.Config{}, nil, zap.NewNop()))

	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
