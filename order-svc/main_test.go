package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCheckoutPolicyFromEnv(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "25.50")
	t.Setenv("MIN_ADDRESS_LENGTH", "15")
	t.Setenv("ALLOW_COD_FOR_PICKUP", "true")

	policy := checkoutPolicyFromEnv(zap.NewNop())

	assert.True(t, decimal.RequireFromString("25.50").Equal(policy.DeliveryFee))
	assert.Equal(t, 15, policy.MinAddressLength)
	assert.True(t, policy.AllowCODForPickup)
}

func TestCheckoutPolicyFromEnvDefaults(t *testing.T) {
	t.Setenv("DELIVERY_FEE", "not-a-number")
	t.Setenv("MIN_ADDRESS_LENGTH", "")
	t.Setenv("ALLOW_COD_FOR_PICKUP", "")

	policy := checkoutPolicyFromEnv(zap.NewNop())

	assert.True(t, decimal.NewFromInt(40).Equal(policy.DeliveryFee))
	assert.Equal(t, 10, policy.MinAddressLength)
	assert.False(t, policy.AllowCODForPickup)
}

func TestDispatcherConfigFromEnv(t *testing.T) {
	t.Setenv("NOTIFY_QUEUE_SIZE", "16")
	t.Setenv("NOTIFY_WORKERS", "4")
	t.Setenv("NOTIFY_MAX_ATTEMPTS", "5")
	t.Setenv("NOTIFY_RETRY_DELAY", "500ms")

	cfg := dispatcherConfigFromEnv()

	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.TaskTimeout)
}
