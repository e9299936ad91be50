package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
)

type menuItemRow struct {
	ID             string         `db:"id"`
	RestaurantID   string         `db:"restaurant_id"`
	Name           string         `db:"name"`
	Description    sql.NullString `db:"description"`
	Category       string         `db:"category"`
	Price          float64        `db:"price"`
	AvailableStock int            `db:"available_stock"`
	ImageURL       sql.NullString `db:"image_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

const menuItemColumns = `id, restaurant_id, name, description, category, price, available_stock, image_url, created_at, updated_at`

type MenuRepository struct{ db *sqlx.DB }

func NewMenuRepository(db *sqlx.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) Create(ctx context.Context, item *menu.MenuItem) error {
	query := `INSERT INTO menu_items (restaurant_id, name, description, category, price, available_stock, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		item.RestaurantID, item.Name, nullString(item.Description), item.Category,
		item.Price, item.AvailableStock, nullString(item.ImageURL), item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("メニュー項目作成に失敗: %w", err)
	}
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*menu.MenuItem, error) {
	var row menuItemRow
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menu.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("メニュー項目取得に失敗: %w", err)
	}
	return toMenuItemEntity(&row), nil
}

func (r *MenuRepository) GetAllByRestaurant(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error) {
	var rows []menuItemRow
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY category, name`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID); err != nil {
		return nil, fmt.Errorf("メニュー一覧取得に失敗: %w", err)
	}
	return toMenuItemEntities(rows), nil
}

func (r *MenuRepository) GetAvailableByRestaurant(ctx context.Context, restaurantID string) ([]*menu.MenuItem, error) {
	var rows []menuItemRow
	query := `SELECT ` + menuItemColumns + ` FROM menu_items
		WHERE restaurant_id = $1 AND available_stock > 0 ORDER BY category, name`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID); err != nil {
		return nil, fmt.Errorf("提供可能メニューの取得に失敗: %w", err)
	}
	return toMenuItemEntities(rows), nil
}

func (r *MenuRepository) GetByCategory(ctx context.Context, restaurantID, category string) ([]*menu.MenuItem, error) {
	var rows []menuItemRow
	query := `SELECT ` + menuItemColumns + ` FROM menu_items
		WHERE restaurant_id = $1 AND category = $2 ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID, category); err != nil {
		return nil, fmt.Errorf("カテゴリ別メニューの取得に失敗: %w", err)
	}
	return toMenuItemEntities(rows), nil
}

func (r *MenuRepository) Update(ctx context.Context, item *menu.MenuItem) error {
	query := `UPDATE menu_items SET name = $1, description = $2, category = $3, price = $4, available_stock = $5, image_url = $6, updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, nullString(item.Description), item.Category, item.Price,
		item.AvailableStock, nullString(item.ImageURL), item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("メニュー項目更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return menu.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("メニュー項目削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return menu.ErrMenuItemNotFound
	}
	return nil
}

func toMenuItemEntity(row *menuItemRow) *menu.MenuItem {
	return &menu.MenuItem{
		ID:             row.ID,
		RestaurantID:   row.RestaurantID,
		Name:           row.Name,
		Description:    row.Description.String,
		Category:       row.Category,
		Price:          row.Price,
		AvailableStock: row.AvailableStock,
		ImageURL:       row.ImageURL.String,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func toMenuItemEntities(rows []menuItemRow) []*menu.MenuItem {
	result := make([]*menu.MenuItem, len(rows))
	for i := range rows {
		result[i] = toMenuItemEntity(&rows[i])
	}
	return result
}

var _ menu.Repository = (*MenuRepository)(nil)
