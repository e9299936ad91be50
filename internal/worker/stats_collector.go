package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/metrics"
)

// ReservationCounter はアクティブ予約数を集計するインターフェース
type ReservationCounter interface {
	CountActiveByStatus(ctx context.Context) (map[reservation.Status]int, error)
}

// StatsCollector はアクティブ予約数を定期的に集計し、ゲージを更新するワーカー
type StatsCollector struct {
	counter  ReservationCounter
	metrics  *metrics.Metrics
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewStatsCollector は新しい集計ワーカーを作成
func NewStatsCollector(counter ReservationCounter, m *metrics.Metrics, interval time.Duration) *StatsCollector {
	return &StatsCollector{
		counter:  counter,
		metrics:  m,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start は集計ワーカーを開始
func (c *StatsCollector) Start(ctx context.Context) {
	logger.Info("予約統計ワーカー開始", zap.Duration("interval", c.interval))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	// 起動直後に一度更新してからティックを待つ
	c.collect(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("予約統計ワーカー停止（コンテキストキャンセル）")
			return
		case <-c.stopCh:
			logger.Info("予約統計ワーカー停止（シグナル受信）")
			return
		case <-ticker.C:
			c.collect(ctx)
		}
	}
}

// Stop は集計ワーカーを停止
func (c *StatsCollector) Stop() {
	close(c.stopCh)
	<-c.doneCh
}

// collect はアクティブ予約数を取得してゲージに反映する
func (c *StatsCollector) collect(ctx context.Context) {
	log := logger.Get()
	log.Debug("予約統計の集計開始")

	counts, err := c.counter.CountActiveByStatus(ctx)
	if err != nil {
		log.Error("予約統計の集計失敗", zap.Error(err))
		return
	}

	for status, count := range counts {
		c.metrics.ActiveReservations.WithLabelValues(string(status)).Set(float64(count))
	}
	log.Debug("予約統計を更新", zap.Int("statuses", len(counts)))
}
