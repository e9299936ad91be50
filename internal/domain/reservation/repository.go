package reservation

import (
	"context"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	// 事前注文がある場合は関連レコードも同一トランザクション内で保存する
	Create(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Reservation, error)

	// GetByUser はユーザーIDから予約一覧を取得する
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*Reservation, error)

	// GetActiveByUserAndTime は指定時間帯 [start, end) と交差する
	// ユーザーのアクティブ（PENDING/CONFIRMED）な予約を取得する
	GetActiveByUserAndTime(ctx context.Context, userID string, start, end time.Time) ([]*Reservation, error)

	// GetActiveByTableAndTime は指定時間帯 [start, end) と交差する
	// テーブルのアクティブな予約を取得する
	GetActiveByTableAndTime(ctx context.Context, tableID string, start, end time.Time) ([]*Reservation, error)

	// Update は予約を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, reservation *Reservation) error

	// GetByRestaurant はレストランの全予約を取得する
	GetByRestaurant(ctx context.Context, restaurantID string) ([]*Reservation, error)

	// GetByDateRange は日付範囲内の全予約を取得する
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*Reservation, error)

	// CountActiveByStatus はアクティブな予約数を状態ごとに集計する
	CountActiveByStatus(ctx context.Context) (map[Status]int, error)
}
