package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
)

type tableRow struct {
	ID           string    `db:"id"`
	RestaurantID string    `db:"restaurant_id"`
	Number       int       `db:"number"`
	Capacity     int       `db:"capacity"`
	Location     string    `db:"location"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type TableRepository struct{ db *sqlx.DB }

func NewTableRepository(db *sqlx.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(ctx context.Context, t *table.Table) error {
	query := `INSERT INTO tables (restaurant_id, number, capacity, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		t.RestaurantID, t.Number, t.Capacity, t.Location, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return table.ErrTableNumberConflict
		}
		return fmt.Errorf("テーブル作成に失敗: %w", err)
	}
	return nil
}

func (r *TableRepository) GetByID(ctx context.Context, id string) (*table.Table, error) {
	var row tableRow
	query := `SELECT id, restaurant_id, number, capacity, location, created_at, updated_at FROM tables WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, table.ErrTableNotFound
		}
		return nil, fmt.Errorf("テーブル取得に失敗: %w", err)
	}
	return toTableEntity(&row), nil
}

func (r *TableRepository) GetByRestaurant(ctx context.Context, restaurantID string) ([]*table.Table, error) {
	var rows []tableRow
	query := `SELECT id, restaurant_id, number, capacity, location, created_at, updated_at
		FROM tables WHERE restaurant_id = $1 ORDER BY number`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID); err != nil {
		return nil, fmt.Errorf("テーブル一覧取得に失敗: %w", err)
	}
	return toTableEntities(rows), nil
}

func (r *TableRepository) GetByRestaurantAndNumber(ctx context.Context, restaurantID string, number int) (*table.Table, error) {
	var row tableRow
	query := `SELECT id, restaurant_id, number, capacity, location, created_at, updated_at
		FROM tables WHERE restaurant_id = $1 AND number = $2`
	if err := r.db.GetContext(ctx, &row, query, restaurantID, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, table.ErrTableNotFound
		}
		return nil, fmt.Errorf("テーブル取得に失敗: %w", err)
	}
	return toTableEntity(&row), nil
}

func (r *TableRepository) Search(ctx context.Context, restaurantID string, capacity int, location string) ([]*table.Table, error) {
	conditions := []string{"restaurant_id = $1"}
	args := []interface{}{restaurantID}
	if capacity > 0 {
		args = append(args, capacity)
		conditions = append(conditions, fmt.Sprintf("capacity >= $%d", len(args)))
	}
	if location != "" {
		args = append(args, location)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}

	var rows []tableRow
	query := `SELECT id, restaurant_id, number, capacity, location, created_at, updated_at
		FROM tables WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY number`
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("テーブル検索に失敗: %w", err)
	}
	return toTableEntities(rows), nil
}

func (r *TableRepository) Update(ctx context.Context, t *table.Table) error {
	query := `UPDATE tables SET number = $1, capacity = $2, location = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, t.Number, t.Capacity, t.Location, t.UpdatedAt, t.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return table.ErrTableNumberConflict
		}
		return fmt.Errorf("テーブル更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return table.ErrTableNotFound
	}
	return nil
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("テーブル削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return table.ErrTableNotFound
	}
	return nil
}

func (r *TableRepository) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tables WHERE restaurant_id = $1`, restaurantID); err != nil {
		return 0, fmt.Errorf("テーブル数の取得に失敗: %w", err)
	}
	return count, nil
}

func toTableEntity(row *tableRow) *table.Table {
	return &table.Table{
		ID:           row.ID,
		RestaurantID: row.RestaurantID,
		Number:       row.Number,
		Capacity:     row.Capacity,
		Location:     row.Location,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toTableEntities(rows []tableRow) []*table.Table {
	result := make([]*table.Table, len(rows))
	for i := range rows {
		result[i] = toTableEntity(&rows[i])
	}
	return result
}

var _ table.Repository = (*TableRepository)(nil)
