package service

import (
	"context"
	"fmt"
	"time"

	"bitebook/order-svc/internal/domain"

	"go.uber.org/zap"
)

// CartStore owns the per-user carts. Every mutation loads the stored
// snapshot, applies the change and writes it back before returning.
type CartStore struct {
	repo    CartRepository
	catalog CatalogServiceInterface
	logger  *zap.Logger
	now     func() time.Time
}

func NewCartStore(repo CartRepository, catalog CatalogServiceInterface, logger *zap.Logger) *CartStore {
	return &CartStore{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.LoadCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

func (s *CartStore) mutate(ctx context.Context, userID string, apply func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply(cart)
	cart.UserID = userID
	cart.UpdatedAt = s.now()

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("failed to persist cart", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

func (s *CartStore) AddItem(ctx context.Context, userID string, ref domain.ItemRef) (*domain.Cart, error) {
	if ref.ItemID <= 0 || ref.RestaurantID <= 0 || ref.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidItem
	}
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.AddItem(ref)
	})
}

// AddDish looks the dish up in the catalog and adds one unit of it.
func (s *CartStore) AddDish(ctx context.Context, userID string, restaurantID, dishID int) (*domain.Cart, error) {
	ref, err := s.catalog.ItemRef(ctx, restaurantID, dishID)
	if err != nil {
		return nil, err
	}
	return s.AddItem(ctx, userID, ref)
}

func (s *CartStore) RemoveItem(ctx context.Context, userID string, itemID int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.RemoveItem(itemID)
	})
}

func (s *CartStore) SetQuantity(ctx context.Context, userID string, itemID, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.SetQuantity(itemID, quantity)
	})
}

// KeepRestaurant drops lines that do not belong to restaurantID.
func (s *CartStore) KeepRestaurant(ctx context.Context, userID string, restaurantID int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(cart *domain.Cart) {
		if dropped := cart.KeepRestaurant(restaurantID); dropped > 0 {
			s.logger.Info("dropped cart lines from another restaurant",
				zap.String("user_id", userID), zap.Int("restaurant_id", restaurantID), zap.Int("dropped", dropped))
		}
	})
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	_, err := s.mutate(ctx, userID, func(cart *domain.Cart) {
		cart.Clear()
	})
	return err
}

var _ CartServiceInterface = (*CartStore)(nil)
