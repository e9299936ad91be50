// Package transaction は予約の作成・更新を単一トランザクションに
// まとめるためのポートを提供する。アプリケーション層はこの抽象を通して
// 操作し、sqlxなどのインフラ実装には依存しない。
package transaction

import "context"

// Tx は開始済みトランザクションを表す
// Rollback はdeferでの呼び出しを想定しており、コミット後の呼び出しが
// 返すエラーは無視してよい
type Tx interface {
	Commit() error
	Rollback() error
}

// Manager はトランザクションの開始を担う
type Manager interface {
	Begin(ctx context.Context) (Tx, error)
}
