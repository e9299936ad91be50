package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

type userRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Role           string    `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type UserRepository struct{ db *sqlx.DB }

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (name, email, hashed_password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		u.Name, u.Email, u.HashedPassword, string(u.Role), u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("ユーザー作成に失敗: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var row userRow
	query := `SELECT id, name, email, hashed_password, role, created_at, updated_at FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return toUserEntity(&row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	query := `SELECT id, name, email, hashed_password, role, created_at, updated_at FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	return toUserEntity(&row), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `UPDATE users SET name = $1, email = $2, hashed_password = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.HashedPassword, u.UpdatedAt, u.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("ユーザー更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toUserEntity(row *userRow) *user.User {
	return &user.User{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Role:           user.Role(row.Role),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

var _ user.Repository = (*UserRepository)(nil)
