package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/victoriaparraf/Goyos-Secret/internal/api"
	"github.com/victoriaparraf/Goyos-Secret/internal/api/handler"
	appmiddleware "github.com/victoriaparraf/Goyos-Secret/internal/api/middleware"
	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/config"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
	"github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/notification"
	"github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/postgres"
	redisinfra "github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/redis"
)

var (
	testServer  *TestServer
	testDB      *sqlx.DB
	redisClient *redis.Client
	testCfg     *config.Config
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo *echo.Echo
}

// TestMain はE2Eテストのエントリポイント
// パッケージ全体で1回だけサーバーを起動することで高速化
func TestMain(m *testing.M) {
	testCfg = config.Load()

	db, err := postgres.NewConnection(&testCfg.Database)
	if err != nil {
		os.Exit(0) // DB未起動時はスキップ
	}
	testDB = db

	rc, err := redisinfra.NewClient(&testCfg.Redis)
	if err != nil {
		db.Close()
		os.Exit(0) // Redis未起動時はスキップ
	}
	redisClient = rc

	txManager := postgres.NewTxManager(db)
	reservationRepo := postgres.NewReservationRepository(db)
	tableRepo := postgres.NewTableRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	userRepo := postgres.NewUserRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	lockManager := redisinfra.NewLockManager(redisClient)
	menuCache := redisinfra.NewMenuCache(redisClient)

	reservationService := application.NewReservationService(
		txManager,
		reservationRepo,
		restaurantRepo,
		application.NewAvailabilityValidator(reservationRepo, tableRepo),
		application.NewPreorderValidator(menuRepo),
		lockManager,
		notification.NewLogNotifier(),
	)
	authService := application.NewAuthService(userRepo, &testCfg.Auth)
	restaurantService := application.NewRestaurantService(restaurantRepo, tableRepo)
	tableService := application.NewTableService(tableRepo, restaurantRepo)
	menuService := application.NewMenuService(menuRepo, menuCache)
	dashboardService := application.NewDashboardService(dashboardRepo)

	reservationHandler := handler.NewReservationHandler(reservationService)
	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	tableHandler := handler.NewTableHandler(tableService)
	menuHandler := handler.NewMenuHandler(menuService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler()

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	e.GET("/health", healthHandler.Check)

	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/restaurants", restaurantHandler.List)
	v1.GET("/restaurants/:id", restaurantHandler.GetByID)
	v1.GET("/restaurants/:id/tables", tableHandler.GetByRestaurant)
	v1.GET("/restaurants/:id/menu", menuHandler.GetByRestaurant)

	authed := v1.Group("", appmiddleware.JWTAuth(testCfg.Auth.JWTSecret))
	authed.POST("/reservations", reservationHandler.Create)
	authed.GET("/reservations", reservationHandler.GetUserReservations)
	authed.GET("/reservations/:id", reservationHandler.GetByID)
	authed.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	admin := v1.Group("/admin", appmiddleware.JWTAuth(testCfg.Auth.JWTSecret), appmiddleware.RequireAdmin())
	admin.POST("/restaurants", restaurantHandler.Create)
	admin.DELETE("/restaurants/:id", restaurantHandler.Delete)
	admin.POST("/tables", tableHandler.Create)
	admin.POST("/menu", menuHandler.Create)
	admin.GET("/reservations", reservationHandler.GetByDateRange)
	admin.GET("/dashboard", dashboardHandler.GetSummary)

	testServer = &TestServer{Echo: e}

	code := m.Run()

	cleanupTables()
	redisClient.Close()
	db.Close()

	os.Exit(code)
}

// cleanupTables はテーブルをクリーンアップ
func cleanupTables() {
	testDB.Exec("TRUNCATE TABLE reservation_dishes, reservations, menu_items, tables, restaurants, users RESTART IDENTITY CASCADE")
}

// getTestServer は共有サーバーを取得（テスト前にテーブルをクリーンアップ）
func getTestServer(t *testing.T) *TestServer {
	t.Helper()
	if testServer == nil {
		t.Skip("テスト環境が利用できません")
	}
	cleanupTables()
	return testServer
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// createAdmin は管理者ユーザーを直接作成する（APIからは登録できないため）
func createAdmin(t *testing.T, email, password string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("パスワードのハッシュ化に失敗: %v", err)
	}
	admin := user.NewUser("管理者", email, string(hashed), user.RoleAdmin)
	userRepo := postgres.NewUserRepository(testDB)
	if err := userRepo.Create(context.Background(), admin); err != nil {
		t.Fatalf("管理者作成に失敗: %v", err)
	}
}
