package menu

import "time"

// MaxPreorderedDishes は1件の予約に添付できる事前注文の上限
const MaxPreorderedDishes = 5

// MenuItem はメニュー項目エンティティを表す
// AvailableStock が1以上であれば提供可能とみなす
type MenuItem struct {
	ID             string
	RestaurantID   string
	Name           string
	Description    string
	Category       string
	Price          float64
	AvailableStock int
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewMenuItem は新しいメニュー項目を作成する
func NewMenuItem(restaurantID, name, description, category string, price float64, stock int, imageURL string) *MenuItem {
	now := time.Now()
	return &MenuItem{
		RestaurantID:   restaurantID,
		Name:           name,
		Description:    description,
		Category:       category,
		Price:          price,
		AvailableStock: stock,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsAvailable はメニュー項目が提供可能かを返す
func (m *MenuItem) IsAvailable() bool {
	return m.AvailableStock > 0
}

// Validate はメニュー項目の検証を行う
func (m *MenuItem) Validate() error {
	if m.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if m.Name == "" {
		return ErrMenuItemNameRequired
	}
	if m.Price < 0 {
		return ErrInvalidPrice
	}
	if m.AvailableStock < 0 {
		return ErrInvalidStock
	}
	return nil
}
