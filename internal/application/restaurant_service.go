package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
)

type RestaurantService struct {
	restaurantRepo restaurant.Repository
	tableRepo      table.Repository
}

func NewRestaurantService(rr restaurant.Repository, tr table.Repository) *RestaurantService {
	return &RestaurantService{restaurantRepo: rr, tableRepo: tr}
}

type CreateRestaurantInput struct {
	Name        string
	Address     string
	OpeningTime string
	ClosingTime string
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, input CreateRestaurantInput) (*restaurant.Restaurant, error) {
	r := restaurant.NewRestaurant(input.Name, input.Address, input.OpeningTime, input.ClosingTime)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.restaurantRepo.GetByName(ctx, input.Name); err == nil {
		return nil, restaurant.ErrRestaurantNameConflict
	} else if !errors.Is(err, restaurant.ErrRestaurantNotFound) {
		return nil, fmt.Errorf("レストラン確認に失敗: %w", err)
	}

	if err := s.restaurantRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return s.restaurantRepo.GetByID(ctx, id)
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.restaurantRepo.List(ctx, limit, offset)
}

type UpdateRestaurantInput struct {
	Name        string
	Address     string
	OpeningTime string
	ClosingTime string
}

func (s *RestaurantService) UpdateRestaurant(ctx context.Context, id string, input UpdateRestaurantInput) (*restaurant.Restaurant, error) {
	r, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		r.Name = input.Name
	}
	if input.Address != "" {
		r.Address = input.Address
	}
	if input.OpeningTime != "" {
		r.OpeningTime = input.OpeningTime
	}
	if input.ClosingTime != "" {
		r.ClosingTime = input.ClosingTime
	}
	r.UpdatedAt = time.Now()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.restaurantRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteRestaurant はレストランを削除する。テーブルが残っている場合は拒否する。
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id string) error {
	count, err := s.tableRepo.CountByRestaurant(ctx, id)
	if err != nil {
		return fmt.Errorf("テーブル数の確認に失敗: %w", err)
	}
	if count > 0 {
		return restaurant.ErrRestaurantHasTables
	}
	return s.restaurantRepo.Delete(ctx, id)
}
