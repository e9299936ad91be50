package notification

import "context"

// Kind は通知イベントの種別を表す
type Kind string

const (
	KindReservationCreated   Kind = "reservation_created"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindPreorderRegistered   Kind = "preorder_registered"
)

// Event は通知イベントを表す
type Event struct {
	Kind   Kind
	Fields map[string]string
}

// Notifier は通知シンクのポート
// 実装は失敗を呼び出し元へ伝播させてはならない（ログ出力のみ）
type Notifier interface {
	Notify(ctx context.Context, event Event)
}
