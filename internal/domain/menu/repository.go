package menu

import "context"

// Repository はメニューリポジトリのインターフェース
type Repository interface {
	// Create は新しいメニュー項目を作成する
	Create(ctx context.Context, item *MenuItem) error

	// GetByID はIDからメニュー項目を取得する
	GetByID(ctx context.Context, id string) (*MenuItem, error)

	// GetAllByRestaurant はレストランの全メニュー項目を取得する（在庫切れ含む）
	GetAllByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error)

	// GetAvailableByRestaurant はレストランの提供可能なメニュー項目を取得する
	GetAvailableByRestaurant(ctx context.Context, restaurantID string) ([]*MenuItem, error)

	// GetByCategory はカテゴリからメニュー項目一覧を取得する
	GetByCategory(ctx context.Context, restaurantID, category string) ([]*MenuItem, error)

	// Update はメニュー項目を更新する
	Update(ctx context.Context, item *MenuItem) error

	// Delete はメニュー項目を削除する
	Delete(ctx context.Context, id string) error
}
