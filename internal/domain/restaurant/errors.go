package restaurant

import "errors"

// Restaurant ドメインのエラー定義
var (
	ErrRestaurantNotFound     = errors.New("レストランが見つかりません")
	ErrRestaurantNameRequired = errors.New("レストラン名は必須です")
	ErrRestaurantNameConflict = errors.New("同じ名前のレストランが既に存在します")
	ErrRestaurantHasTables    = errors.New("テーブルが残っているレストランは削除できません")
	ErrInvalidOpeningHours    = errors.New("営業時間の形式が不正です（HH:MM）")
)
