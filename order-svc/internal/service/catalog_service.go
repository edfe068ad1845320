package service

import (
	"context"

	"bitebook/order-svc/internal/domain"
)

type CatalogService struct {
	restaurants RestaurantRepository
	dishes      DishRepository
}

func NewCatalogService(restaurants RestaurantRepository, dishes DishRepository) *CatalogService {
	return &CatalogService{restaurants: restaurants, dishes: dishes}
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.restaurants.GetRestaurant(ctx, id)
}

func (s *CatalogService) ListDishes(ctx context.Context, restaurantID int) ([]domain.Dish, error) {
	return s.dishes.ListDishes(ctx, restaurantID)
}

func (s *CatalogService) GetDish(ctx context.Context, restaurantID, dishID int) (*domain.Dish, error) {
	return s.dishes.GetDish(ctx, restaurantID, dishID)
}

// ItemRef resolves a dish of a restaurant into the reference stored in carts.
func (s *CatalogService) ItemRef(ctx context.Context, restaurantID, dishID int) (domain.ItemRef, error) {
	restaurant, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return domain.ItemRef{}, err
	}
	dish, err := s.dishes.GetDish(ctx, restaurantID, dishID)
	if err != nil {
		return domain.ItemRef{}, err
	}
	if !dish.Available {
		return domain.ItemRef{}, domain.ErrDishUnavailable
	}
	return dish.ItemRef(*restaurant), nil
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
