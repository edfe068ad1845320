package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitebook/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCartTTL    = 7 * 24 * time.Hour
	DefaultSessionTTL = 24 * time.Hour
)

// RedisStore keeps one cart snapshot and one checkout session per user.
// Both keys are refreshed with their TTL on every write.
type RedisStore struct {
	Client     *redis.Client
	CartTTL    time.Duration
	SessionTTL time.Duration
}

func NewRedisStore(client *redis.Client, cartTTL, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{Client: client, CartTTL: cartTTL, SessionTTL: sessionTTL}
}

func (s *RedisStore) CartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisStore) SessionKey(userID string) string {
	return "checkout:" + userID
}

// LoadCart returns an empty cart when none is stored.
func (s *RedisStore) LoadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := s.Client.Get(ctx, s.CartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(userID), nil
	}
	if err != nil {
		return nil, err
	}

	cart := domain.NewCart(userID)
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", userID, err)
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return cart, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.CartKey(cart.UserID), payload, s.CartTTL).Err()
}

func (s *RedisStore) LoadSession(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	raw, err := s.Client.Get(ctx, s.SessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session domain.CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode checkout session %s: %w", userID, err)
	}
	return &session, nil
}

func (s *RedisStore) SaveSession(ctx context.Context, session *domain.CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.SessionKey(session.UserID), payload, s.SessionTTL).Err()
}
