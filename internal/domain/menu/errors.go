package menu

import (
	"errors"
	"fmt"
)

// Menu ドメインのエラー定義
var (
	ErrMenuItemNotFound        = errors.New("メニュー項目が見つかりません")
	ErrMenuItemNameRequired    = errors.New("メニュー名は必須です")
	ErrInvalidPrice            = errors.New("価格は0以上である必要があります")
	ErrInvalidStock            = errors.New("在庫数は0以上である必要があります")
	ErrRestaurantIDRequired    = errors.New("レストランIDは必須です")
	ErrCategoryRequired        = errors.New("カテゴリは必須です")
	ErrTooManyPreorderedDishes = errors.New("事前注文できる料理は5品までです")
)

// DishUnavailableError は事前注文された料理が提供できない場合のエラー
// どの料理が原因かをDishIDで保持する
type DishUnavailableError struct {
	DishID string
}

func (e *DishUnavailableError) Error() string {
	return fmt.Sprintf("料理 %s はこのレストランでは提供できません", e.DishID)
}

// IsDishUnavailable はエラーがDishUnavailableErrorかを判定する
func IsDishUnavailable(err error) bool {
	var e *DishUnavailableError
	return errors.As(err, &e)
}
