package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// login はログインしてアクセストークンを返す
func login(t *testing.T, s *TestServer, email, password string) string {
	t.Helper()
	rec := s.Request("POST", "/api/v1/auth/login", map[string]string{
		"email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// setupVenue は管理者でレストラン・テーブル・メニューを用意する
func setupVenue(t *testing.T, s *TestServer, adminToken string) (restaurantID, tableID, dishID string) {
	t.Helper()

	rec := s.Request("POST", "/api/v1/admin/restaurants", map[string]string{
		"name": "E2E食堂", "address": "東京都千代田区1-1",
		"opening_time": "11:00", "closing_time": "23:00",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	restaurantID = decodeJSON(t, rec)["id"].(string)

	rec = s.Request("POST", "/api/v1/admin/tables", map[string]interface{}{
		"restaurant_id": restaurantID, "number": 1, "capacity": 4, "location": "窓際",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tableID = decodeJSON(t, rec)["id"].(string)

	rec = s.Request("POST", "/api/v1/admin/menu", map[string]interface{}{
		"restaurant_id": restaurantID, "name": "お任せコース",
		"category": "コース", "price": 5800, "available_stock": 10,
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dishID = decodeJSON(t, rec)["id"].(string)

	return restaurantID, tableID, dishID
}

func slot(dayOffset, hour int) (string, string) {
	base := time.Now().AddDate(0, 0, dayOffset).Truncate(time.Hour)
	start := time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.UTC)
	return start.Format(time.RFC3339), start.Add(2 * time.Hour).Format(time.RFC3339)
}

func TestE2E_HealthCheck(t *testing.T) {
	s := getTestServer(t)
	rec := s.Request("GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestE2E_CompleteReservationJourney(t *testing.T) {
	s := getTestServer(t)
	createAdmin(t, "admin@example.com", "admin-password")
	adminToken := login(t, s, "admin@example.com", "admin-password")
	_, tableID, dishID := setupVenue(t, s, adminToken)

	var clientToken string
	t.Run("ユーザー登録とログイン", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/auth/register", map[string]string{
			"name": "山田太郎", "email": "taro@example.com", "password": "taro-password",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "client", decodeJSON(t, rec)["role"])

		clientToken = login(t, s, "taro@example.com", "taro-password")
	})

	var reservationID string
	t.Run("事前注文付きで予約作成", func(t *testing.T) {
		start, end := slot(2, 18)
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": start, "end_time": end,
			"num_people": 2, "preordered_dishes": []string{dishID},
		}, clientToken)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		body := decodeJSON(t, rec)
		assert.Equal(t, "PENDING", body["status"])
		assert.Equal(t, "E2E食堂", body["restaurant_name"])
		reservationID = body["id"].(string)
	})

	t.Run("予約詳細確認", func(t *testing.T) {
		rec := s.Request("GET", "/api/v1/reservations/"+reservationID, nil, clientToken)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON(t, rec)
		assert.Equal(t, float64(2), body["num_people"])
	})

	t.Run("予約一覧に表示される", func(t *testing.T) {
		rec := s.Request("GET", "/api/v1/reservations", nil, clientToken)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})

	t.Run("管理者ダッシュボードに集計される", func(t *testing.T) {
		rec := s.Request("GET", "/api/v1/admin/dashboard", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "reservations_by_day")
	})
}

func TestE2E_SlotConflict(t *testing.T) {
	s := getTestServer(t)
	createAdmin(t, "admin@example.com", "admin-password")
	adminToken := login(t, s, "admin@example.com", "admin-password")
	_, tableID, _ := setupVenue(t, s, adminToken)

	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "ユーザーA", "email": "a@example.com", "password": "password-a",
	}, "")
	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "ユーザーB", "email": "b@example.com", "password": "password-b",
	}, "")
	tokenA := login(t, s, "a@example.com", "password-a")
	tokenB := login(t, s, "b@example.com", "password-b")

	start, end := slot(2, 18)

	t.Run("ユーザーAが予約成功", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": start, "end_time": end, "num_people": 2,
		}, tokenA)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("ユーザーBが重複する枠を予約しようとして409", func(t *testing.T) {
		overlapStart, overlapEnd := slot(2, 19)
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": overlapStart, "end_time": overlapEnd, "num_people": 2,
		}, tokenB)
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	})

	t.Run("隣接する枠は予約できる", func(t *testing.T) {
		adjStart, adjEnd := slot(2, 20)
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": adjStart, "end_time": adjEnd, "num_people": 2,
		}, tokenB)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func TestE2E_CancelAndRebook(t *testing.T) {
	s := getTestServer(t)
	createAdmin(t, "admin@example.com", "admin-password")
	adminToken := login(t, s, "admin@example.com", "admin-password")
	_, tableID, _ := setupVenue(t, s, adminToken)

	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "ユーザーA", "email": "a@example.com", "password": "password-a",
	}, "")
	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "ユーザーB", "email": "b@example.com", "password": "password-b",
	}, "")
	tokenA := login(t, s, "a@example.com", "password-a")
	tokenB := login(t, s, "b@example.com", "password-b")

	start, end := slot(2, 18)

	var reservationID string
	t.Run("ユーザーAが予約", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": start, "end_time": end, "num_people": 2,
		}, tokenA)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		reservationID = decodeJSON(t, rec)["id"].(string)
	})

	t.Run("ユーザーBによるキャンセルは403", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations/"+reservationID+"/cancel", nil, tokenB)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ユーザーAがキャンセル", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations/"+reservationID+"/cancel", nil, tokenA)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "CANCELLED", decodeJSON(t, rec)["status"])
	})

	t.Run("再キャンセルは409", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations/"+reservationID+"/cancel", nil, tokenA)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("ユーザーBが同じ枠を予約できる", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": start, "end_time": end, "num_people": 2,
		}, tokenB)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func TestE2E_PreorderValidation(t *testing.T) {
	s := getTestServer(t)
	createAdmin(t, "admin@example.com", "admin-password")
	adminToken := login(t, s, "admin@example.com", "admin-password")
	restaurantID, tableID, dishID := setupVenue(t, s, adminToken)

	// 在庫切れの料理を追加
	rec := s.Request("POST", "/api/v1/admin/menu", map[string]interface{}{
		"restaurant_id": restaurantID, "name": "売り切れの一品",
		"category": "一品", "price": 800, "available_stock": 0,
	}, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	soldOutID := decodeJSON(t, rec)["id"].(string)

	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "ユーザーA", "email": "a@example.com", "password": "password-a",
	}, "")
	token := login(t, s, "a@example.com", "password-a")

	t.Run("在庫切れの料理は予約できない", func(t *testing.T) {
		start, end := slot(2, 18)
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id": tableID, "start_time": start, "end_time": end,
			"num_people": 2, "preordered_dishes": []string{dishID, soldOutID},
		}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), soldOutID)
	})

	t.Run("4時間を超える予約は拒否される", func(t *testing.T) {
		base := time.Now().AddDate(0, 0, 2)
		start := time.Date(base.Year(), base.Month(), base.Day(), 12, 0, 0, 0, time.UTC)
		rec := s.Request("POST", "/api/v1/reservations", map[string]interface{}{
			"table_id":   tableID,
			"start_time": start.Format(time.RFC3339),
			"end_time":   start.Add(5 * time.Hour).Format(time.RFC3339),
			"num_people": 2,
		}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestE2E_AdminAuthorization(t *testing.T) {
	s := getTestServer(t)
	s.Request("POST", "/api/v1/auth/register", map[string]string{
		"name": "一般ユーザー", "email": "c@example.com", "password": "password-c",
	}, "")
	token := login(t, s, "c@example.com", "password-c")

	t.Run("一般ユーザーはレストランを作成できない", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/admin/restaurants", map[string]string{
			"name": "許可なし食堂", "address": "どこか",
			"opening_time": "11:00", "closing_time": "22:00",
		}, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("adminロールでの自己登録は拒否される", func(t *testing.T) {
		rec := s.Request("POST", "/api/v1/auth/register", map[string]string{
			"name": "偽管理者", "email": "fake@example.com",
			"password": "password", "role": "admin",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
