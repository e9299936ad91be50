package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/transaction"
)

// 排他制約名（migrations/000001_init.up.sql と一致させること）
const (
	constraintTableTimeExcl = "reservations_table_time_excl"
	constraintUserTimeExcl  = "reservations_user_time_excl"
)

type reservationRow struct {
	ID                  string         `db:"id"`
	UserID              string         `db:"user_id"`
	TableID             string         `db:"table_id"`
	StartTime           time.Time      `db:"start_time"`
	EndTime             time.Time      `db:"end_time"`
	NumPeople           int            `db:"num_people"`
	SpecialInstructions sql.NullString `db:"special_instructions"`
	Status              string         `db:"status"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

const reservationColumns = `id, user_id, table_id, start_time, end_time, num_people, special_instructions, status, created_at, updated_at`

type ReservationRepository struct{ db *sqlx.DB }

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("トランザクションが不正です")
	}

	query := `INSERT INTO reservations (user_id, table_id, start_time, end_time, num_people, special_instructions, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := sqlxTx.QueryRowContext(ctx, query,
		res.UserID, res.TableID, res.StartTime, res.EndTime, res.NumPeople,
		nullString(res.SpecialInstructions), string(res.Status), res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		return translateConflict(err, "予約作成に失敗")
	}

	// 事前注文を同一トランザクション内で関連付ける
	for _, dishID := range res.PreorderedDishes {
		if _, err := sqlxTx.ExecContext(ctx,
			`INSERT INTO reservation_dishes (reservation_id, menu_item_id) VALUES ($1, $2)`,
			res.ID, dishID,
		); err != nil {
			return fmt.Errorf("事前注文の関連付けに失敗: %w", err)
		}
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var row reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	dishes, err := r.getDishIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationEntity(&row, dishes), nil
}

func (r *ReservationRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY start_time DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) GetActiveByUserAndTime(ctx context.Context, userID string, start, end time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	// 半開区間 [start, end) の交差判定: existing.start < end AND existing.end > start
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE user_id = $1 AND status IN ('PENDING', 'CONFIRMED')
		AND start_time < $3 AND end_time > $2`
	if err := r.db.SelectContext(ctx, &rows, query, userID, start, end); err != nil {
		return nil, fmt.Errorf("ユーザー予約の重複確認に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) GetActiveByTableAndTime(ctx context.Context, tableID string, start, end time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE table_id = $1 AND status IN ('PENDING', 'CONFIRMED')
		AND start_time < $3 AND end_time > $2`
	if err := r.db.SelectContext(ctx, &rows, query, tableID, start, end); err != nil {
		return nil, fmt.Errorf("テーブル予約の重複確認に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) Update(ctx context.Context, tx transaction.Tx, res *reservation.Reservation) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return fmt.Errorf("トランザクションが不正です")
	}

	query := `UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := sqlxTx.ExecContext(ctx, query, string(res.Status), res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) GetByRestaurant(ctx context.Context, restaurantID string) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT r.id, r.user_id, r.table_id, r.start_time, r.end_time, r.num_people, r.special_instructions, r.status, r.created_at, r.updated_at
		FROM reservations r
		JOIN tables t ON t.id = r.table_id
		WHERE t.restaurant_id = $1
		ORDER BY r.start_time DESC`
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID); err != nil {
		return nil, fmt.Errorf("レストラン予約一覧取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time`
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("日付範囲の予約取得に失敗: %w", err)
	}
	return r.toEntities(ctx, rows)
}

func (r *ReservationRepository) CountActiveByStatus(ctx context.Context) (map[reservation.Status]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) FROM reservations WHERE status IN ('PENDING', 'CONFIRMED') GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("予約数の集計に失敗: %w", err)
	}
	defer rows.Close()

	counts := map[reservation.Status]int{
		reservation.StatusPending:   0,
		reservation.StatusConfirmed: 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("予約数の読み取りに失敗: %w", err)
		}
		counts[reservation.Status(status)] = count
	}
	return counts, rows.Err()
}

func (r *ReservationRepository) getDishIDs(ctx context.Context, reservationID string) ([]string, error) {
	var dishIDs []string
	if err := r.db.SelectContext(ctx, &dishIDs,
		`SELECT menu_item_id FROM reservation_dishes WHERE reservation_id = $1`, reservationID); err != nil {
		return nil, fmt.Errorf("事前注文の取得に失敗: %w", err)
	}
	return dishIDs, nil
}

func (r *ReservationRepository) toEntities(ctx context.Context, rows []reservationRow) ([]*reservation.Reservation, error) {
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		dishes, err := r.getDishIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		result[i] = toReservationEntity(&row, dishes)
	}
	return result, nil
}

func toReservationEntity(row *reservationRow, dishes []string) *reservation.Reservation {
	return &reservation.Reservation{
		ID:                  row.ID,
		UserID:              row.UserID,
		TableID:             row.TableID,
		StartTime:           row.StartTime,
		EndTime:             row.EndTime,
		NumPeople:           row.NumPeople,
		SpecialInstructions: row.SpecialInstructions.String,
		PreorderedDishes:    dishes,
		Status:              reservation.Status(row.Status),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

// translateConflict はストア層の排他制約違反をドメインの競合エラーへ変換する
func translateConflict(err error, msg string) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23P01": // exclusion_violation
			if pgErr.Constraint == constraintUserTimeExcl {
				return reservation.ErrUserSlotConflict
			}
			return reservation.ErrTableSlotConflict
		case "23505": // unique_violation
			return reservation.ErrTableSlotConflict
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

var _ reservation.Repository = (*ReservationRepository)(nil)
