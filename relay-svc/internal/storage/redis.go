package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCooldown keeps one key per phone number for the OTP resend window.
type RedisCooldown struct {
	Client *redis.Client
}

func NewRedisCooldown(client *redis.Client) *RedisCooldown {
	return &RedisCooldown{Client: client}
}

func CooldownKey(phone string) string {
	return "otp:cooldown:" + phone
}

func (s *RedisCooldown) Acquire(ctx context.Context, phone string, ttl time.Duration) (bool, time.Duration, error) {
	key := CooldownKey(phone)
	ok, err := s.Client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, 0, fmt.Errorf("set cooldown: %w", err)
	}
	if ok {
		return true, 0, nil
	}

	remaining, err := s.Client.PTTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("read cooldown: %w", err)
	}
	// The key may have expired between the two calls.
	if remaining <= 0 {
		remaining = time.Second
	}
	return false, remaining, nil
}

func (s *RedisCooldown) Release(ctx context.Context, phone string) error {
	return s.Client.Del(ctx, CooldownKey(phone)).Err()
}
