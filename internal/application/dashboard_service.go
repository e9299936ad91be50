package application

import (
	"context"
	"fmt"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/dashboard"
)

const topDishesLimit = 10

type DashboardService struct {
	dashboardRepo dashboard.Repository
}

func NewDashboardService(dr dashboard.Repository) *DashboardService {
	return &DashboardService{dashboardRepo: dr}
}

// GetSummary は指定期間のダッシュボード集計を取得する
func (s *DashboardService) GetSummary(ctx context.Context, from, to time.Time) (*dashboard.Summary, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("集計期間が不正です")
	}

	byDay, err := s.dashboardRepo.ReservationsByPeriod(ctx, "day", from, to)
	if err != nil {
		return nil, err
	}
	byWeek, err := s.dashboardRepo.ReservationsByPeriod(ctx, "week", from, to)
	if err != nil {
		return nil, err
	}
	topDishes, err := s.dashboardRepo.TopPreorderedDishes(ctx, topDishesLimit)
	if err != nil {
		return nil, err
	}
	occupancies, err := s.dashboardRepo.OccupancyByRestaurant(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &dashboard.Summary{
		ReservationsByDay:  byDay,
		ReservationsByWeek: byWeek,
		TopDishes:          topDishes,
		Occupancies:        occupancies,
	}, nil
}
