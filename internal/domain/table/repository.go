package table

import "context"

// Repository はテーブルリポジトリのインターフェース
type Repository interface {
	// Create は新しいテーブルを作成する
	Create(ctx context.Context, table *Table) error

	// GetByID はIDからテーブルを取得する
	GetByID(ctx context.Context, id string) (*Table, error)

	// GetByRestaurant はレストランのテーブル一覧を取得する
	GetByRestaurant(ctx context.Context, restaurantID string) ([]*Table, error)

	// GetByRestaurantAndNumber はレストラン内のテーブル番号からテーブルを取得する
	GetByRestaurantAndNumber(ctx context.Context, restaurantID string, number int) (*Table, error)

	// Search は定員・ロケーションで絞り込んだテーブル一覧を取得する
	// capacity <= 0 / location == "" の条件は無視される
	Search(ctx context.Context, restaurantID string, capacity int, location string) ([]*Table, error)

	// Update はテーブルを更新する
	Update(ctx context.Context, table *Table) error

	// Delete はテーブルを削除する
	Delete(ctx context.Context, id string) error

	// CountByRestaurant はレストランのテーブル数を取得する
	CountByRestaurant(ctx context.Context, restaurantID string) (int, error)
}
