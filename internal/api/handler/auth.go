package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(s AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: s}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"山田太郎"`
	Email    string `json:"email" validate:"required,email" example:"taro@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"secret-password"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=client" example:"client"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID: u.ID, Name: u.Name, Email: u.Email,
		Role: string(u.Role), CreatedAt: u.CreatedAt,
	}
}

// Register godoc
// @Summary ユーザーを登録
// @Description 新しいユーザーをclientロールで登録します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "ユーザー情報"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "メールアドレスが登録済み"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	u, err := h.service.Register(c.Request().Context(), application.RegisterInput{
		Name: req.Name, Email: req.Email, Password: req.Password, Role: req.Role,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// Login godoc
// @Summary ログイン
// @Description 資格情報を検証し、JWTアクセストークンを発行します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "資格情報"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	token, u, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        toUserResponse(u),
	})
}
