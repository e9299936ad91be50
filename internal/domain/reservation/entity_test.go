package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	base := time.Date(2025, 7, 7, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		userID      string
		tableID     string
		start       time.Time
		end         time.Time
		numPeople   int
		wantErr     bool
		errExpected error
	}{
		{
			name: "正常な予約作成", userID: "user-123", tableID: "table-456",
			start: base, end: base.Add(2 * time.Hour), numPeople: 4,
			wantErr: false,
		},
		{
			name: "ユーザーID未指定", userID: "", tableID: "table-456",
			start: base, end: base.Add(2 * time.Hour), numPeople: 4,
			wantErr: true, errExpected: ErrUserIDRequired,
		},
		{
			name: "テーブルID未指定", userID: "user-123", tableID: "",
			start: base, end: base.Add(2 * time.Hour), numPeople: 4,
			wantErr: true, errExpected: ErrTableIDRequired,
		},
		{
			name: "終了時刻が開始時刻より前", userID: "user-123", tableID: "table-456",
			start: base, end: base.Add(-1 * time.Hour), numPeople: 4,
			wantErr: true, errExpected: ErrInvalidDuration,
		},
		{
			name: "開始時刻と終了時刻が同じ", userID: "user-123", tableID: "table-456",
			start: base, end: base, numPeople: 4,
			wantErr: true, errExpected: ErrInvalidDuration,
		},
		{
			name: "4時間を超える予約", userID: "user-123", tableID: "table-456",
			start: base, end: base.Add(4*time.Hour + time.Minute), numPeople: 4,
			wantErr: true, errExpected: ErrInvalidDuration,
		},
		{
			name: "ちょうど4時間は許可", userID: "user-123", tableID: "table-456",
			start: base, end: base.Add(4 * time.Hour), numPeople: 4,
			wantErr: false,
		},
		{
			name: "人数0人", userID: "user-123", tableID: "table-456",
			start: base, end: base.Add(2 * time.Hour), numPeople: 0,
			wantErr: true, errExpected: ErrInvalidNumPeople,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation(tt.userID, tt.tableID, tt.start, tt.end, tt.numPeople, "", nil)
			err := r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusPending, r.Status)
			assert.Equal(t, tt.userID, r.UserID)
			assert.Equal(t, tt.tableID, r.TableID)
		})
	}
}

func TestNewReservation_PreorderedDishes(t *testing.T) {
	base := time.Date(2025, 7, 7, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		dishes []string
		want   []string
	}{
		{name: "注文なし", dishes: nil, want: nil},
		{name: "重複なしはそのまま", dishes: []string{"d1", "d2"}, want: []string{"d1", "d2"}},
		{
			name:   "重複するIDは順序を保って1件にまとめる",
			dishes: []string{"d1", "d2", "d1", "d3", "d2"},
			want:   []string{"d1", "d2", "d3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReservation("user-123", "table-456", base, base.Add(2*time.Hour), 2, "", tt.dishes)
			assert.Equal(t, tt.want, r.PreorderedDishes)
		})
	}
}

func TestReservation_Overlaps(t *testing.T) {
	base := time.Date(2025, 7, 7, 10, 0, 0, 0, time.UTC)
	r := createTestReservation(t)
	r.StartTime = base
	r.EndTime = base.Add(1 * time.Hour) // [10:00, 11:00)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"完全に内包する区間", base.Add(-1 * time.Hour), base.Add(2 * time.Hour), true},
		{"前半だけ重なる区間", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"後半だけ重なる区間", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"同一区間", base, base.Add(1 * time.Hour), true},
		{"直後に隣接する区間は重ならない", base.Add(1 * time.Hour), base.Add(2 * time.Hour), false},
		{"直前に隣接する区間は重ならない", base.Add(-1 * time.Hour), base, false},
		{"完全に後の区間", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Overlaps(tt.start, tt.end))
		})
	}
}

func TestReservation_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		wantErr error
	}{
		{"Pending状態からキャンセル", StatusPending, nil},
		{"Confirmed状態からキャンセル", StatusConfirmed, nil},
		{"Cancelled状態からキャンセル", StatusCancelled, ErrReservationAlreadyCancelled},
		{"Completed状態からキャンセル", StatusCompleted, ErrReservationAlreadyCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestReservation(t)
			r.Status = tt.status
			err := r.Cancel()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, r.Status, "失敗時は状態が変化しない")
			} else {
				require.NoError(t, err)
				assert.Equal(t, StatusCancelled, r.Status)
			}
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	r := createTestReservation(t)
	assert.True(t, r.IsActive())

	r.Status = StatusConfirmed
	assert.True(t, r.IsActive())

	r.Status = StatusCancelled
	assert.False(t, r.IsActive())

	r.Status = StatusCompleted
	assert.False(t, r.IsActive())
}

func createTestReservation(t *testing.T) *Reservation {
	start := time.Now().Add(24 * time.Hour)
	r := NewReservation("user-123", "table-456", start, start.Add(2*time.Hour), 2, "窓際の席を希望", nil)
	require.NoError(t, r.Validate())
	return r
}
