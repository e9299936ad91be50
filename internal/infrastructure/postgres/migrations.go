package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
)

// RunMigrations はスキーママイグレーションを適用する
// 予約の排他制約が使うbtree_gist拡張もマイグレーション内で有効化される
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("マイグレーションドライバー作成に失敗: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("マイグレーションインスタンス作成に失敗: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("適用すべきマイグレーションはありません")
			return nil
		}
		return fmt.Errorf("マイグレーション適用に失敗: %w", err)
	}

	logger.Info("マイグレーションを適用しました", zap.String("path", migrationsPath))
	return nil
}
