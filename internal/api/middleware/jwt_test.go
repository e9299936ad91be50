package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func invokeJWT(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestJWTAuth(t *testing.T) {
	t.Run("有効なトークンでコンテキストが設定される", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  "user-1",
			"role": "client",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		c, err := invokeJWT(t, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", c.Get(ContextKeyUserID))
		assert.Equal(t, "client", c.Get(ContextKeyRole))
	})

	t.Run("トークンなしは401", func(t *testing.T) {
		_, err := invokeJWT(t, "")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("Bearerプレフィックスなしは401", func(t *testing.T) {
		_, err := invokeJWT(t, "token-without-prefix")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("期限切れトークンは401", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, testSecret)

		_, err := invokeJWT(t, "Bearer "+token)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("別の鍵で署名されたトークンは401", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, "other-secret")

		_, err := invokeJWT(t, "Bearer "+token)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	handler := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("adminロールは許可される", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ContextKeyRole, "admin")

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("clientロールは403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ContextKeyRole, "client")

		err := handler(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}
