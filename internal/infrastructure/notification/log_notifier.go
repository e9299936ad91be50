// Package notification は通知イベントの送信実装を提供する
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/notification"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
)

// LogNotifier は通知イベントを構造化ログとして記録する。
// 外部メッセージング基盤へ差し替える際はこの実装を置き換える。
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify はイベントをログに出力する。失敗しても呼び出し元へは伝播しない。
func (n *LogNotifier) Notify(_ context.Context, event notification.Event) {
	fields := make([]zap.Field, 0, len(event.Fields)+1)
	fields = append(fields, zap.String("kind", string(event.Kind)))
	for k, v := range event.Fields {
		fields = append(fields, zap.String(k, v))
	}
	logger.Info("通知イベント", fields...)
}

var _ notification.Notifier = (*LogNotifier)(nil)
