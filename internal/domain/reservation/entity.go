package reservation

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// MaxDuration は1件の予約が占有できる最大時間
const MaxDuration = 4 * time.Hour

// CancellationNotice はクライアントがキャンセルできる締切（開始時刻の1時間前）
const CancellationNotice = 1 * time.Hour

// Reservation は予約エンティティを表す
// 時間帯は半開区間 [StartTime, EndTime) として扱う
type Reservation struct {
	ID                  string
	UserID              string
	TableID             string
	StartTime           time.Time
	EndTime             time.Time
	NumPeople           int
	SpecialInstructions string
	PreorderedDishes    []string
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewReservation は新しい予約をPENDING状態で作成する
// 事前注文は集合として扱うため、重複する料理IDは取り除かれる
func NewReservation(userID, tableID string, start, end time.Time, numPeople int, instructions string, dishes []string) *Reservation {
	now := time.Now()
	return &Reservation{
		UserID:              userID,
		TableID:             tableID,
		StartTime:           start,
		EndTime:             end,
		NumPeople:           numPeople,
		SpecialInstructions: instructions,
		PreorderedDishes:    dedupeDishes(dishes),
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// dedupeDishes は順序を保ったまま重複する料理IDを取り除く
func dedupeDishes(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Duration は予約の占有時間を返す
func (r *Reservation) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// IsActive は予約が重複判定の対象（PENDINGまたはCONFIRMED）かを返す
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// Overlaps は半開区間 [start, end) がこの予約の時間帯と交差するかを返す
// ある予約の終了時刻と次の予約の開始時刻が一致する場合は交差しない
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// Cancel は予約をキャンセルする
// 既にキャンセル・完了済みの予約はエラーを返し、状態は変化しない
func (r *Reservation) Cancel() error {
	if r.Status == StatusCancelled {
		return ErrReservationAlreadyCancelled
	}
	if r.Status == StatusCompleted {
		return ErrReservationAlreadyCompleted
	}
	r.Status = StatusCancelled
	r.UpdatedAt = time.Now()
	return nil
}

// Validate は予約の不変条件を検証する
func (r *Reservation) Validate() error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if r.TableID == "" {
		return ErrTableIDRequired
	}
	d := r.Duration()
	if d <= 0 || d > MaxDuration {
		return ErrInvalidDuration
	}
	if r.NumPeople <= 0 {
		return ErrInvalidNumPeople
	}
	return nil
}
