package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound         = errors.New("予約が見つかりません")
	ErrInvalidDuration             = errors.New("予約時間が不正です（0より大きく最大4時間）")
	ErrInvalidNumPeople            = errors.New("人数は1人以上である必要があります")
	ErrUserIDRequired              = errors.New("ユーザーIDは必須です")
	ErrTableIDRequired             = errors.New("テーブルIDは必須です")
	ErrUserSlotConflict            = errors.New("同じ時間帯に既にあなたの予約があります")
	ErrTableSlotConflict           = errors.New("このテーブルは同じ時間帯に既に予約されています")
	ErrCancellationForbidden       = errors.New("自分の予約のみキャンセルできます")
	ErrCancellationTooLate         = errors.New("キャンセルは開始時刻の1時間前までです")
	ErrReservationAlreadyCancelled = errors.New("予約は既にキャンセルされています")
	ErrReservationAlreadyCompleted = errors.New("予約は既に完了しています")
)
