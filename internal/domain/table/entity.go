package table

import "time"

// 座席数の許容範囲
const (
	MinCapacity = 2
	MaxCapacity = 12
)

// Table はレストランのテーブルエンティティを表す
type Table struct {
	ID           string
	RestaurantID string
	Number       int
	Capacity     int
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTable は新しいテーブルを作成する
func NewTable(restaurantID string, number, capacity int, location string) *Table {
	now := time.Now()
	return &Table{
		RestaurantID: restaurantID,
		Number:       number,
		Capacity:     capacity,
		Location:     location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はテーブルの検証を行う
func (t *Table) Validate() error {
	if t.RestaurantID == "" {
		return ErrRestaurantIDRequired
	}
	if t.Number <= 0 {
		return ErrInvalidTableNumber
	}
	if t.Capacity < MinCapacity || t.Capacity > MaxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// Fits は指定人数がこのテーブルに収まるかを返す
func (t *Table) Fits(numPeople int) bool {
	return numPeople <= t.Capacity
}
