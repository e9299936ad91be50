package application

import (
	"context"
	"fmt"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
)

// PreorderValidator は事前注文の検証を行う
type PreorderValidator struct {
	menuRepo menu.Repository
}

func NewPreorderValidator(mr menu.Repository) *PreorderValidator {
	return &PreorderValidator{menuRepo: mr}
}

// Validate は事前注文された料理を検証する。
// 品数上限はメニュー照会より先に判定する。空の注文は常に有効。
func (v *PreorderValidator) Validate(ctx context.Context, restaurantID string, dishIDs []string) error {
	if len(dishIDs) == 0 {
		return nil
	}
	if len(dishIDs) > menu.MaxPreorderedDishes {
		return menu.ErrTooManyPreorderedDishes
	}

	available, err := v.menuRepo.GetAvailableByRestaurant(ctx, restaurantID)
	if err != nil {
		return fmt.Errorf("提供可能メニューの取得に失敗: %w", err)
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, item := range available {
		availableSet[item.ID] = struct{}{}
	}
	for _, id := range dishIDs {
		if _, ok := availableSet[id]; !ok {
			return &menu.DishUnavailableError{DishID: id}
		}
	}
	return nil
}
