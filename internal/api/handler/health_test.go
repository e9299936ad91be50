package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
)

func TestHealthHandler_Check(t *testing.T) {
	e := NewTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler()

	err := h.Check(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"service":"reservation-api"`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
}

func TestToReservationResponse(t *testing.T) {
	now := time.Now()
	r := &reservation.Reservation{
		ID:                  "res-123",
		UserID:              "user-789",
		TableID:             "table-1",
		StartTime:           now,
		EndTime:             now.Add(2 * time.Hour),
		NumPeople:           4,
		SpecialInstructions: "アレルギー対応希望",
		PreorderedDishes:    []string{"dish-1", "dish-2"},
		Status:              reservation.StatusPending,
		CreatedAt:           now,
	}

	resp := toReservationResponse(r)

	assert.Equal(t, r.ID, resp.ID)
	assert.Equal(t, r.UserID, resp.UserID)
	assert.Equal(t, r.TableID, resp.TableID)
	assert.Equal(t, r.StartTime, resp.StartTime)
	assert.Equal(t, r.EndTime, resp.EndTime)
	assert.Equal(t, r.NumPeople, resp.NumPeople)
	assert.Equal(t, r.SpecialInstructions, resp.SpecialInstructions)
	assert.Equal(t, r.PreorderedDishes, resp.PreorderedDishes)
	assert.Equal(t, string(r.Status), resp.Status)
}
