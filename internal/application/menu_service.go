package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
	rediscache "github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/redis"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
)

const menuCacheTTL = 5 * time.Minute

type MenuService struct {
	menuRepo menu.Repository
	cache    *rediscache.MenuCache
}

func NewMenuService(mr menu.Repository, cache *rediscache.MenuCache) *MenuService {
	return &MenuService{menuRepo: mr, cache: cache}
}

type CreateMenuItemInput struct {
	RestaurantID   string
	Name           string
	Description    string
	Category       string
	Price          float64
	AvailableStock int
	ImageURL       string
}

func (s *MenuService) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*menu.MenuItem, error) {
	item := menu.NewMenuItem(input.RestaurantID, input.Name, input.Description, input.Category,
		input.Price, input.AvailableStock, input.ImageURL)
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error) {
	return s.menuRepo.GetByID(ctx, id)
}

func (s *MenuService) GetMenu(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error) {
	return s.menuRepo.GetAllByRestaurant(ctx, restaurantID)
}

// GetAvailableMenu は提供可能メニューをキャッシュ経由で取得する
func (s *MenuService) GetAvailableMenu(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error) {
	if s.cache != nil {
		items, err := s.cache.GetAvailable(ctx, restaurantID)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			logger.Warn("メニューキャッシュの読み取りに失敗", zap.Error(err))
		}
	}

	items, err := s.menuRepo.GetAvailableByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAvailable(ctx, restaurantID, items, menuCacheTTL); err != nil {
			logger.Warn("メニューキャッシュの書き込みに失敗", zap.Error(err))
		}
	}
	return items, nil
}

func (s *MenuService) GetMenuByCategory(ctx context.Context, restaurantID, category string) ([]*menu.MenuItem, error) {
	return s.menuRepo.GetByCategory(ctx, restaurantID, category)
}

type UpdateMenuItemInput struct {
	Name           string
	Description    string
	Category       string
	Price          *float64
	AvailableStock *int
	ImageURL       string
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id string, input UpdateMenuItemInput) (*menu.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.AvailableStock != nil {
		item.AvailableStock = *input.AvailableStock
	}
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	item.UpdatedAt = time.Now()
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, item.RestaurantID)
	return item, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, item.RestaurantID)
	return nil
}

func (s *MenuService) invalidateCache(ctx context.Context, restaurantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, restaurantID); err != nil {
		logger.Warn("メニューキャッシュの無効化に失敗", zap.Error(err))
	}
}
