package application

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/victoriaparraf/Goyos-Secret/internal/config"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

// MockUserRepository implements user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newAuthService() (*AuthService, *MockUserRepository) {
	repo := new(MockUserRepository)
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: 20 * time.Minute}
	return NewAuthService(repo, cfg), repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo := newAuthService()
	repo.On("GetByEmail", mock.Anything, "hanako@example.com").Return(nil, user.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "花子", Email: "hanako@example.com", Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, u.Role)
	// パスワードは平文で保存されない
	assert.NotEqual(t, "secret-password", u.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("secret-password")))
}

func TestAuthService_Register_AdminDenied(t *testing.T) {
	svc, repo := newAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "侵入者", Email: "x@example.com", Password: "pw", Role: "admin",
	})
	assert.ErrorIs(t, err, user.ErrAdminRegistrationDenied)
	repo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_EmailConflict(t *testing.T) {
	svc, repo := newAuthService()
	existing := user.NewUser("太郎", "taro@example.com", "hash", user.RoleClient)
	repo.On("GetByEmail", mock.Anything, "taro@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "別の太郎", Email: "taro@example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyRegistered)
}

func TestAuthService_Login(t *testing.T) {
	svc, repo := newAuthService()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := user.NewUser("太郎", "taro@example.com", string(hashed), user.RoleAdmin)
	u.ID = "user-1"

	repo.On("GetByEmail", mock.Anything, "taro@example.com").Return(u, nil)
	repo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, user.ErrUserNotFound)

	t.Run("正しい資格情報でトークンが発行される", func(t *testing.T) {
		token, loggedIn, err := svc.Login(context.Background(), "taro@example.com", "correct-password")
		require.NoError(t, err)
		assert.Equal(t, "user-1", loggedIn.ID)

		parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "user-1", claims["sub"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("誤ったパスワードは拒否される", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "taro@example.com", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("未登録のメールアドレスは拒否される", func(t *testing.T) {
		// ユーザー不在とパスワード誤りは同じエラーを返す
		_, _, err := svc.Login(context.Background(), "unknown@example.com", "pw")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}
