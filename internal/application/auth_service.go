package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/victoriaparraf/Goyos-Secret/internal/config"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

type AuthService struct {
	userRepo user.Repository
	cfg      *config.AuthConfig
}

func NewAuthService(ur user.Repository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{userRepo: ur, cfg: cfg}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register は新しいユーザーを登録する。
// APIからの自己登録ではadminロールを指定できない。
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	role := user.RoleClient
	if input.Role != "" {
		role = user.Role(input.Role)
	}
	if role == user.RoleAdmin {
		return nil, user.ErrAdminRegistrationDenied
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, user.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("ユーザー確認に失敗: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	u := user.NewUser(input.Name, input.Email, string(hashed), role)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login は資格情報を検証し、JWTアクセストークンを発行する
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, user.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("ユーザー取得に失敗: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return "", nil, user.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("トークン発行に失敗: %w", err)
	}
	return signed, u, nil
}
