package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
)

type TableService struct {
	tableRepo      table.Repository
	restaurantRepo restaurant.Repository
}

func NewTableService(tr table.Repository, rr restaurant.Repository) *TableService {
	return &TableService{tableRepo: tr, restaurantRepo: rr}
}

type CreateTableInput struct {
	RestaurantID string
	Number       int
	Capacity     int
	Location     string
}

func (s *TableService) CreateTable(ctx context.Context, input CreateTableInput) (*table.Table, error) {
	t := table.NewTable(input.RestaurantID, input.Number, input.Capacity, input.Location)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.restaurantRepo.GetByID(ctx, input.RestaurantID); err != nil {
		return nil, err
	}
	if _, err := s.tableRepo.GetByRestaurantAndNumber(ctx, input.RestaurantID, input.Number); err == nil {
		return nil, table.ErrTableNumberConflict
	} else if !errors.Is(err, table.ErrTableNotFound) {
		return nil, fmt.Errorf("テーブル確認に失敗: %w", err)
	}

	if err := s.tableRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TableService) GetTable(ctx context.Context, id string) (*table.Table, error) {
	return s.tableRepo.GetByID(ctx, id)
}

func (s *TableService) GetRestaurantTables(ctx context.Context, restaurantID string) ([]*table.Table, error) {
	return s.tableRepo.GetByRestaurant(ctx, restaurantID)
}

// SearchTables は定員・ロケーションでテーブルを絞り込む
func (s *TableService) SearchTables(ctx context.Context, restaurantID string, capacity int, location string) ([]*table.Table, error) {
	return s.tableRepo.Search(ctx, restaurantID, capacity, location)
}

type UpdateTableInput struct {
	Number   int
	Capacity int
	Location string
}

func (s *TableService) UpdateTable(ctx context.Context, id string, input UpdateTableInput) (*table.Table, error) {
	t, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Number > 0 {
		t.Number = input.Number
	}
	if input.Capacity > 0 {
		t.Capacity = input.Capacity
	}
	if input.Location != "" {
		t.Location = input.Location
	}
	t.UpdatedAt = time.Now()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.tableRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TableService) DeleteTable(ctx context.Context, id string) error {
	return s.tableRepo.Delete(ctx, id)
}
