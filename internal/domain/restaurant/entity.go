package restaurant

import "time"

// Restaurant はレストランエンティティを表す
type Restaurant struct {
	ID          string
	Name        string
	Address     string
	OpeningTime string // "HH:MM" 形式
	ClosingTime string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRestaurant は新しいレストランを作成する
func NewRestaurant(name, address, openingTime, closingTime string) *Restaurant {
	now := time.Now()
	return &Restaurant{
		Name:        name,
		Address:     address,
		OpeningTime: openingTime,
		ClosingTime: closingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate はレストランの検証を行う
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return ErrRestaurantNameRequired
	}
	if r.OpeningTime != "" && !validClock(r.OpeningTime) {
		return ErrInvalidOpeningHours
	}
	if r.ClosingTime != "" && !validClock(r.ClosingTime) {
		return ErrInvalidOpeningHours
	}
	return nil
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}
