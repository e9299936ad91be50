package handler

import (
	"context"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/dashboard"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

// AuthServiceInterface は認証サービスのインターフェース
type AuthServiceInterface interface {
	Register(ctx context.Context, input application.RegisterInput) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
}

// RestaurantServiceInterface はレストランサービスのインターフェース
type RestaurantServiceInterface interface {
	CreateRestaurant(ctx context.Context, input application.CreateRestaurantInput) (*restaurant.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	ListRestaurants(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id string, input application.UpdateRestaurantInput) (*restaurant.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id string) error
}

// TableServiceInterface はテーブルサービスのインターフェース
type TableServiceInterface interface {
	CreateTable(ctx context.Context, input application.CreateTableInput) (*table.Table, error)
	GetTable(ctx context.Context, id string) (*table.Table, error)
	GetRestaurantTables(ctx context.Context, restaurantID string) ([]*table.Table, error)
	SearchTables(ctx context.Context, restaurantID string, capacity int, location string) ([]*table.Table, error)
	UpdateTable(ctx context.Context, id string, input application.UpdateTableInput) (*table.Table, error)
	DeleteTable(ctx context.Context, id string) error
}

// MenuServiceInterface はメニューサービスのインターフェース
type MenuServiceInterface interface {
	CreateMenuItem(ctx context.Context, input application.CreateMenuItemInput) (*menu.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error)
	GetMenu(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error)
	GetAvailableMenu(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error)
	GetMenuByCategory(ctx context.Context, restaurantID, category string) ([]*menu.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, input application.UpdateMenuItemInput) (*menu.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*application.ReservationView, error)
	CancelReservation(ctx context.Context, id, requestingUserID string, isAdmin bool) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	GetUserReservations(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error)
	GetRestaurantReservations(ctx context.Context, restaurantID string) ([]*reservation.Reservation, error)
	GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error)
}

// DashboardServiceInterface はダッシュボードサービスのインターフェース
type DashboardServiceInterface interface {
	GetSummary(ctx context.Context, from, to time.Time) (*dashboard.Summary, error)
}
