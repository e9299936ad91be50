package restaurant

import "context"

// Repository はレストランリポジトリのインターフェース
type Repository interface {
	// Create は新しいレストランを作成する
	Create(ctx context.Context, restaurant *Restaurant) error

	// GetByID はIDからレストランを取得する
	GetByID(ctx context.Context, id string) (*Restaurant, error)

	// GetByName は名前からレストランを取得する
	GetByName(ctx context.Context, name string) (*Restaurant, error)

	// List はレストラン一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Restaurant, error)

	// Update はレストランを更新する
	Update(ctx context.Context, restaurant *Restaurant) error

	// Delete はレストランを削除する
	Delete(ctx context.Context, id string) error
}
