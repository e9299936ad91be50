package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/notification"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/transaction"
	redislock "github.com/victoriaparraf/Goyos-Secret/internal/infrastructure/redis"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/logger"
	"github.com/victoriaparraf/Goyos-Secret/internal/pkg/metrics"
)

const (
	lockTTL        = 10 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

type ReservationService struct {
	txManager       transaction.Manager
	reservationRepo reservation.Repository
	restaurantRepo  restaurant.Repository
	availability    *AvailabilityValidator
	preorder        *PreorderValidator
	lockManager     redislock.LockManagerInterface
	notifier        notification.Notifier
}

func NewReservationService(
	tm transaction.Manager,
	rr reservation.Repository,
	restRepo restaurant.Repository,
	availability *AvailabilityValidator,
	preorder *PreorderValidator,
	lm redislock.LockManagerInterface,
	notifier notification.Notifier,
) *ReservationService {
	return &ReservationService{
		txManager:       tm,
		reservationRepo: rr,
		restaurantRepo:  restRepo,
		availability:    availability,
		preorder:        preorder,
		lockManager:     lm,
		notifier:        notifier,
	}
}

type CreateReservationInput struct {
	UserID              string
	TableID             string
	StartTime           time.Time
	EndTime             time.Time
	NumPeople           int
	SpecialInstructions string
	PreorderedDishes    []string
}

// ReservationView は予約と表示用のレストラン名を合わせた応答
type ReservationView struct {
	*reservation.Reservation
	RestaurantName string
}

func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*ReservationView, error) {
	res := reservation.NewReservation(
		input.UserID, input.TableID, input.StartTime, input.EndTime,
		input.NumPeople, input.SpecialInstructions, input.PreorderedDishes,
	)
	if err := res.Validate(); err != nil {
		s.recordCreateResult(err)
		return nil, err
	}

	// テーブル・ユーザー両方のロックをキー順に取得してデッドロックを防止
	release, err := s.acquireSlotLocks(ctx, input.UserID, input.TableID)
	if err != nil {
		s.recordCreateResult(err)
		return nil, err
	}
	defer release()

	t, err := s.availability.Validate(ctx, input.UserID, input.TableID, input.StartTime, input.EndTime)
	if err != nil {
		s.recordCreateResult(err)
		return nil, err
	}
	if err := s.preorder.Validate(ctx, t.RestaurantID, res.PreorderedDishes); err != nil {
		s.recordCreateResult(err)
		return nil, err
	}

	rest, err := s.restaurantRepo.GetByID(ctx, t.RestaurantID)
	if err != nil {
		// テーブルが指すレストランが存在しないのはデータ不整合
		s.recordCreateResult(err)
		return nil, fmt.Errorf("レストラン取得に失敗: %v", err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.recordCreateResult(err)
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.Create(ctx, tx, res); err != nil {
		s.recordCreateResult(err)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordCreateResult(err)
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.recordCreateResult(nil)
	s.notifyAsync(notification.Event{
		Kind: notification.KindReservationCreated,
		Fields: map[string]string{
			"reservation_id": res.ID,
			"user_id":        res.UserID,
			"restaurant":     rest.Name,
			"start_time":     res.StartTime.Format(time.RFC3339),
		},
	})
	if len(res.PreorderedDishes) > 0 {
		s.notifyAsync(notification.Event{
			Kind: notification.KindPreorderRegistered,
			Fields: map[string]string{
				"reservation_id": res.ID,
				"dish_count":     strconv.Itoa(len(res.PreorderedDishes)),
			},
		})
	}

	return &ReservationView{Reservation: res, RestaurantName: rest.Name}, nil
}

// CancelReservation は予約をキャンセルする。
// 本人以外は管理者のみ実行でき、一般ユーザーは開始1時間前を過ぎるとキャンセルできない。
func (s *ReservationService) CancelReservation(ctx context.Context, id, requestingUserID string, isAdmin bool) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.recordCancelResult(err)
		return nil, err
	}
	if !isAdmin {
		if res.UserID != requestingUserID {
			s.recordCancelResult(reservation.ErrCancellationForbidden)
			return nil, reservation.ErrCancellationForbidden
		}
		if !time.Now().Add(reservation.CancellationNotice).Before(res.StartTime) {
			s.recordCancelResult(reservation.ErrCancellationTooLate)
			return nil, reservation.ErrCancellationTooLate
		}
	}
	if err := res.Cancel(); err != nil {
		s.recordCancelResult(err)
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		s.recordCancelResult(err)
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()
	if err := s.reservationRepo.Update(ctx, tx, res); err != nil {
		s.recordCancelResult(err)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.recordCancelResult(err)
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.recordCancelResult(nil)
	s.notifyAsync(notification.Event{
		Kind: notification.KindReservationCancelled,
		Fields: map[string]string{
			"reservation_id": res.ID,
			"user_id":        res.UserID,
		},
	})
	return res, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *ReservationService) GetUserReservations(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.reservationRepo.GetByUser(ctx, userID, limit, offset)
}

func (s *ReservationService) GetRestaurantReservations(ctx context.Context, restaurantID string) ([]*reservation.Reservation, error) {
	return s.reservationRepo.GetByRestaurant(ctx, restaurantID)
}

func (s *ReservationService) GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	if !end.After(start) {
		return nil, reservation.ErrInvalidDuration
	}
	return s.reservationRepo.GetByDateRange(ctx, start, end)
}

// acquireSlotLocks はテーブルとユーザーの枠ロックをキー順に取得する
func (s *ReservationService) acquireSlotLocks(ctx context.Context, userID, tableID string) (func(), error) {
	if s.lockManager == nil {
		return func() {}, nil
	}

	keys := []string{"slot:table:" + tableID, "slot:user:" + userID}
	sort.Strings(keys)

	var locks []redislock.Lock
	release := func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Release(ctx)
		}
	}

	start := time.Now()
	for _, key := range keys {
		lock, err := s.lockManager.AcquireLockWithRetry(ctx, key, lockTTL, lockMaxRetries, lockRetryDelay)
		if err != nil {
			release()
			s.recordLockDuration("acquire", "failure", start)
			if errors.Is(err, redislock.ErrLockNotAcquired) {
				// ロック競合は該当枠の競合として扱う
				if key == "slot:user:"+userID {
					return nil, reservation.ErrUserSlotConflict
				}
				return nil, reservation.ErrTableSlotConflict
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		locks = append(locks, lock)
	}
	s.recordLockDuration("acquire", "success", start)
	return release, nil
}

// notifyAsync はコミット後の通知を非同期で送信する。
// 通知の失敗は予約処理の結果に影響しない。
func (s *ReservationService) notifyAsync(event notification.Event) {
	if s.notifier == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("通知処理でpanicが発生", zap.Any("recover", r), zap.String("kind", string(event.Kind)))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.notifier.Notify(ctx, event)
	}()
}

func (s *ReservationService) recordCreateResult(err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, reservation.ErrUserSlotConflict):
		status = "user_conflict"
	case errors.Is(err, reservation.ErrTableSlotConflict):
		status = "table_conflict"
	case errors.Is(err, reservation.ErrInvalidDuration),
		errors.Is(err, reservation.ErrInvalidNumPeople),
		errors.Is(err, table.ErrTableNotFound),
		errors.Is(err, menu.ErrTooManyPreorderedDishes),
		menu.IsDishUnavailable(err):
		status = "rejected"
	default:
		status = "error"
	}
	m.ReservationsTotal.WithLabelValues(status).Inc()
}

func (s *ReservationService) recordCancelResult(err error) {
	m := metrics.Get()
	if m == nil {
		return
	}
	status := "success"
	switch {
	case err == nil:
	case errors.Is(err, reservation.ErrReservationNotFound):
		status = "not_found"
	case errors.Is(err, reservation.ErrCancellationForbidden):
		status = "forbidden"
	case errors.Is(err, reservation.ErrCancellationTooLate):
		status = "too_late"
	case errors.Is(err, reservation.ErrReservationAlreadyCancelled),
		errors.Is(err, reservation.ErrReservationAlreadyCompleted):
		status = "rejected"
	default:
		status = "error"
	}
	m.CancellationsTotal.WithLabelValues(status).Inc()
}

func (s *ReservationService) recordLockDuration(operation, status string, start time.Time) {
	if m := metrics.Get(); m != nil {
		m.DistributedLockDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	}
}
