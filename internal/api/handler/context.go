package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

// JWT認証ミドルウェアが設定するコンテキストキー
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// currentUser は認証済みユーザーのIDと管理者フラグを取り出す
func currentUser(c echo.Context) (string, bool, error) {
	userID, _ := c.Get(ContextKeyUserID).(string)
	if userID == "" {
		return "", false, echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	role, _ := c.Get(ContextKeyRole).(string)
	return userID, role == string(user.RoleAdmin), nil
}
