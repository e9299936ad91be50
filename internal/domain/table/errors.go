package table

import "errors"

// Table ドメインのエラー定義
var (
	ErrTableNotFound        = errors.New("テーブルが見つかりません")
	ErrTableNumberConflict  = errors.New("このレストランには同じ番号のテーブルが既に存在します")
	ErrInvalidTableNumber   = errors.New("テーブル番号は1以上である必要があります")
	ErrInvalidCapacity      = errors.New("テーブルの定員は2人から12人までです")
	ErrRestaurantIDRequired = errors.New("レストランIDは必須です")
)
