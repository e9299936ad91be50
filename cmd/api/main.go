package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/api"
	"github.com/victoriaparraf/Goyos-Secret/internal/api/handler"
	appmiddleware "github.com/victoriaparraf/Goyos-Secret/internal/api/middleware"
	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/config"
	"github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/notification"
	"github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/postgres"
	redisinfra "github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/redis"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/metrics"
	"github.com/victoriaparraf/Goyos-Secret/internal/worker"
)

func main() {
	// .env はローカル開発用。存在しなくてもよい
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Server.Env))
	defer logger.Sync()

	m := metrics.Init()

	// PostgreSQL
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.MigrationsPath != "" {
		if err := postgres.RunMigrations(db.DB, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("マイグレーションに失敗", zap.Error(err))
		}
	}

	// Redis
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Redis接続に失敗", zap.Error(err))
	}
	defer redisClient.Close()

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	reservationRepo := postgres.NewReservationRepository(db)
	tableRepo := postgres.NewTableRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	userRepo := postgres.NewUserRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	lockManager := redisinfra.NewLockManager(redisClient)
	menuCache := redisinfra.NewMenuCache(redisClient)
	notifier := notification.NewLogNotifier()

	// サービス
	reservationService := application.NewReservationService(
		txManager,
		reservationRepo,
		restaurantRepo,
		application.NewAvailabilityValidator(reservationRepo, tableRepo),
		application.NewPreorderValidator(menuRepo),
		lockManager,
		notifier,
	)
	authService := application.NewAuthService(userRepo, &cfg.Auth)
	restaurantService := application.NewRestaurantService(restaurantRepo, tableRepo)
	tableService := application.NewTableService(tableRepo, restaurantRepo)
	menuService := application.NewMenuService(menuRepo, menuCache)
	dashboardService := application.NewDashboardService(dashboardRepo)

	// ハンドラー
	reservationHandler := handler.NewReservationHandler(reservationService)
	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	tableHandler := handler.NewTableHandler(tableService)
	menuHandler := handler.NewMenuHandler(menuService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler()

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	appmiddleware.SetupMiddleware(e)
	e.Use(appmiddleware.PrometheusMiddleware(m))

	// ルーティング
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), appmiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	// 認証不要
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/restaurants", restaurantHandler.List)
	v1.GET("/restaurants/:id", restaurantHandler.GetByID)
	v1.GET("/restaurants/:id/tables", tableHandler.GetByRestaurant)
	v1.GET("/restaurants/:id/menu", menuHandler.GetByRestaurant)
	v1.GET("/tables/:id", tableHandler.GetByID)
	v1.GET("/menu/:id", menuHandler.GetByID)

	// 認証必須
	authed := v1.Group("", appmiddleware.JWTAuth(cfg.Auth.JWTSecret))
	authed.POST("/reservations", reservationHandler.Create)
	authed.GET("/reservations", reservationHandler.GetUserReservations)
	authed.GET("/reservations/:id", reservationHandler.GetByID)
	authed.POST("/reservations/:id/cancel", reservationHandler.Cancel)

	// 管理者のみ
	admin := v1.Group("/admin", appmiddleware.JWTAuth(cfg.Auth.JWTSecret), appmiddleware.RequireAdmin())
	admin.POST("/restaurants", restaurantHandler.Create)
	admin.PUT("/restaurants/:id", restaurantHandler.Update)
	admin.DELETE("/restaurants/:id", restaurantHandler.Delete)
	admin.GET("/restaurants/:id/reservations", reservationHandler.GetByRestaurant)
	admin.POST("/tables", tableHandler.Create)
	admin.PUT("/tables/:id", tableHandler.Update)
	admin.DELETE("/tables/:id", tableHandler.Delete)
	admin.POST("/menu", menuHandler.Create)
	admin.PUT("/menu/:id", menuHandler.Update)
	admin.DELETE("/menu/:id", menuHandler.Delete)
	admin.GET("/reservations", reservationHandler.GetByDateRange)
	admin.GET("/dashboard", dashboardHandler.GetSummary)

	// 統計ワーカー
	workerCtx, workerCancel := context.WithCancel(context.Background())
	statsCollector := worker.NewStatsCollector(reservationRepo, m, cfg.Worker.StatsInterval)
	go statsCollector.Start(workerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています")

	workerCancel()
	statsCollector.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
