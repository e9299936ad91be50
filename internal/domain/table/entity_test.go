package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		restaurant  string
		number      int
		capacity    int
		wantErr     bool
		errExpected error
	}{
		{"正常なテーブル作成", "rest-1", 1, 4, false, nil},
		{"レストランID未指定", "", 1, 4, true, ErrRestaurantIDRequired},
		{"テーブル番号0", "rest-1", 0, 4, true, ErrInvalidTableNumber},
		{"定員が下限未満", "rest-1", 1, 1, true, ErrInvalidCapacity},
		{"定員が上限超過", "rest-1", 1, 13, true, ErrInvalidCapacity},
		{"定員下限ちょうど", "rest-1", 1, 2, false, nil},
		{"定員上限ちょうど", "rest-1", 1, 12, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(tt.restaurant, tt.number, tt.capacity, "terraza")
			err := tbl.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTable_Fits(t *testing.T) {
	tbl := NewTable("rest-1", 1, 4, "interior")
	assert.True(t, tbl.Fits(4))
	assert.True(t, tbl.Fits(2))
	assert.False(t, tbl.Fits(5))
}
