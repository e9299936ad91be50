package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
)

type restaurantRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	OpeningTime string    `db:"opening_time"`
	ClosingTime string    `db:"closing_time"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type RestaurantRepository struct{ db *sqlx.DB }

func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	query := `INSERT INTO restaurants (name, address, opening_time, closing_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		rest.Name, rest.Address, rest.OpeningTime, rest.ClosingTime, rest.CreatedAt, rest.UpdatedAt,
	).Scan(&rest.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return restaurant.ErrRestaurantNameConflict
		}
		return fmt.Errorf("レストラン作成に失敗: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	var row restaurantRow
	query := `SELECT id, name, address, opening_time, closing_time, created_at, updated_at FROM restaurants WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurant.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("レストラン取得に失敗: %w", err)
	}
	return toRestaurantEntity(&row), nil
}

func (r *RestaurantRepository) GetByName(ctx context.Context, name string) (*restaurant.Restaurant, error) {
	var row restaurantRow
	query := `SELECT id, name, address, opening_time, closing_time, created_at, updated_at FROM restaurants WHERE name = $1`
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurant.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("レストラン取得に失敗: %w", err)
	}
	return toRestaurantEntity(&row), nil
}

func (r *RestaurantRepository) List(ctx context.Context, limit, offset int) ([]*restaurant.Restaurant, error) {
	var rows []restaurantRow
	query := `SELECT id, name, address, opening_time, closing_time, created_at, updated_at
		FROM restaurants ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("レストラン一覧取得に失敗: %w", err)
	}
	result := make([]*restaurant.Restaurant, len(rows))
	for i := range rows {
		result[i] = toRestaurantEntity(&rows[i])
	}
	return result, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *restaurant.Restaurant) error {
	query := `UPDATE restaurants SET name = $1, address = $2, opening_time = $3, closing_time = $4, updated_at = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		rest.Name, rest.Address, rest.OpeningTime, rest.ClosingTime, rest.UpdatedAt, rest.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return restaurant.ErrRestaurantNameConflict
		}
		return fmt.Errorf("レストラン更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return restaurant.ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("レストラン削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return restaurant.ErrRestaurantNotFound
	}
	return nil
}

func toRestaurantEntity(row *restaurantRow) *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID:          row.ID,
		Name:        row.Name,
		Address:     row.Address,
		OpeningTime: row.OpeningTime,
		ClosingTime: row.ClosingTime,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

var _ restaurant.Repository = (*RestaurantRepository)(nil)
