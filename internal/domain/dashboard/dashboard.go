// Package dashboard は管理者向け集計の読み取りモデルを定義する
package dashboard

import (
	"context"
	"time"
)

// PeriodCount は期間ごとの予約数
type PeriodCount struct {
	Period time.Time
	Count  int
}

// DishCount は事前注文された料理の注文数
type DishCount struct {
	MenuItemID string
	Name       string
	Count      int
}

// Occupancy はレストランのテーブル稼働率
type Occupancy struct {
	RestaurantID   string
	RestaurantName string
	TableCount     int
	ReservedTables int
	Percentage     float64
}

// Summary はダッシュボードの集計結果
type Summary struct {
	ReservationsByDay  []PeriodCount
	ReservationsByWeek []PeriodCount
	TopDishes          []DishCount
	Occupancies        []Occupancy
}

// Repository はダッシュボード集計の読み取りインターフェース
type Repository interface {
	// ReservationsByPeriod は期間（day / week）ごとの予約数を取得する
	ReservationsByPeriod(ctx context.Context, period string, from, to time.Time) ([]PeriodCount, error)

	// TopPreorderedDishes は事前注文数の多い料理を取得する
	TopPreorderedDishes(ctx context.Context, limit int) ([]DishCount, error)

	// OccupancyByRestaurant は指定時刻のレストラン別稼働率を取得する
	OccupancyByRestaurant(ctx context.Context, at time.Time) ([]Occupancy, error)
}
