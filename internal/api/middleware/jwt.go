package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWT認証ミドルウェアが設定するコンテキストキー
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// JWTAuth はAuthorizationヘッダーのBearerトークンを検証し、
// ユーザーIDとロールをコンテキストへ設定するミドルウェア
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if auth == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが必要です")
			}
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorizationヘッダーの形式が不正です")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("予期しない署名方式です: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証トークンが無効です")
			}
			role, _ := claims["role"].(string)

			c.Set(ContextKeyUserID, sub)
			c.Set(ContextKeyRole, role)
			return next(c)
		}
	}
}

// RequireAdmin はadminロールのユーザーのみ許可するミドルウェア
// JWTAuth の後段で使用する
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextKeyRole).(string)
			if role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "管理者権限が必要です")
			}
			return next(c)
		}
	}
}
