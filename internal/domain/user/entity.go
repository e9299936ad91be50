package user

import "time"

// Role はユーザーの役割を表す
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User はユーザーエンティティを表す
type User struct {
	ID             string
	Name           string
	Email          string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser は新しいユーザーを作成する
func NewUser(name, email, hashedPassword string, role Role) *User {
	now := time.Now()
	return &User{
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsAdmin は管理者権限を持つかを返す
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.Role != RoleAdmin && u.Role != RoleClient {
		return ErrInvalidRole
	}
	return nil
}
