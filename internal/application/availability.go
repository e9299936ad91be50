package application

import (
	"context"
	"fmt"
	"time"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
)

// AvailabilityValidator は予約枠の検証を行う。
// 判定順序は固定: 時間長 → テーブル存在 → ユーザー重複 → テーブル重複。
type AvailabilityValidator struct {
	reservationRepo reservation.Repository
	tableRepo       table.Repository
}

func NewAvailabilityValidator(rr reservation.Repository, tr table.Repository) *AvailabilityValidator {
	return &AvailabilityValidator{reservationRepo: rr, tableRepo: tr}
}

// Validate は予約枠を検証し、問題なければ対象テーブルを返す
func (v *AvailabilityValidator) Validate(ctx context.Context, userID, tableID string, start, end time.Time) (*table.Table, error) {
	if !end.After(start) || end.Sub(start) > reservation.MaxDuration {
		return nil, reservation.ErrInvalidDuration
	}

	t, err := v.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	// アクティブ（PENDING / CONFIRMED）な予約のみが枠を塞ぐ
	userOverlaps, err := v.reservationRepo.GetActiveByUserAndTime(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ユーザー予約の重複確認に失敗: %w", err)
	}
	if len(userOverlaps) > 0 {
		return nil, reservation.ErrUserSlotConflict
	}

	tableOverlaps, err := v.reservationRepo.GetActiveByTableAndTime(ctx, tableID, start, end)
	if err != nil {
		return nil, fmt.Errorf("テーブル予約の重複確認に失敗: %w", err)
	}
	if len(tableOverlaps) > 0 {
		return nil, reservation.ErrTableSlotConflict
	}

	return t, nil
}
