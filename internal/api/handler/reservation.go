package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	TableID             string   `json:"table_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	StartTime           string   `json:"start_time" validate:"required" example:"2026-09-01T18:00:00Z"`
	EndTime             string   `json:"end_time" validate:"required" example:"2026-09-01T20:00:00Z"`
	NumPeople           int      `json:"num_people" validate:"required,min=1" example:"2"`
	SpecialInstructions string   `json:"special_instructions,omitempty" example:"窓際の席を希望"`
	PreorderedDishes    []string `json:"preordered_dishes,omitempty"`
}

type ReservationResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	TableID             string    `json:"table_id"`
	RestaurantName      string    `json:"restaurant_name,omitempty"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	NumPeople           int       `json:"num_people"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	PreorderedDishes    []string  `json:"preordered_dishes,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID: r.ID, UserID: r.UserID, TableID: r.TableID,
		StartTime: r.StartTime, EndTime: r.EndTime,
		NumPeople: r.NumPeople, SpecialInstructions: r.SpecialInstructions,
		PreorderedDishes: r.PreorderedDishes,
		Status:           string(r.Status), CreatedAt: r.CreatedAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description テーブルの予約枠を確保します（最長4時間）
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "枠が既に予約済み"
// @Security BearerAuth
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_timeの形式が不正です（RFC3339）")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_timeの形式が不正です（RFC3339）")
	}

	view, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		UserID:              userID,
		TableID:             req.TableID,
		StartTime:           start,
		EndTime:             end,
		NumPeople:           req.NumPeople,
		SpecialInstructions: req.SpecialInstructions,
		PreorderedDishes:    req.PreorderedDishes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	resp := toReservationResponse(view.Reservation)
	resp.RestaurantName = view.RestaurantName
	return c.JSON(http.StatusCreated, resp)
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルします。一般ユーザーは本人の予約のみ、開始1時間前まで
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, isAdmin, err := currentUser(c)
	if err != nil {
		return err
	}
	r, err := h.service.CancelReservation(c.Request().Context(), c.Param("id"), userID, isAdmin)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	userID, isAdmin, err := currentUser(c)
	if err != nil {
		return err
	}
	r, err := h.service.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	// 他人の予約は管理者のみ参照できる
	if !isAdmin && r.UserID != userID {
		return echo.NewHTTPError(http.StatusNotFound, reservation.ErrReservationNotFound.Error())
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// GetUserReservations godoc
// @Summary ログインユーザーの予約一覧を取得
// @Tags reservations
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} ReservationResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	reservations, err := h.service.GetUserReservations(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// GetByRestaurant godoc
// @Summary レストランの予約一覧を取得（管理者用）
// @Tags reservations
// @Produce json
// @Param id path string true "レストランID"
// @Success 200 {array} ReservationResponse
// @Security BearerAuth
// @Router /admin/restaurants/{id}/reservations [get]
func (h *ReservationHandler) GetByRestaurant(c echo.Context) error {
	reservations, err := h.service.GetRestaurantReservations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// GetByDateRange godoc
// @Summary 日付範囲の予約一覧を取得（管理者用）
// @Tags reservations
// @Produce json
// @Param from query string true "開始日時（RFC3339）"
// @Param to query string true "終了日時（RFC3339）"
// @Success 200 {array} ReservationResponse
// @Security BearerAuth
// @Router /admin/reservations [get]
func (h *ReservationHandler) GetByDateRange(c echo.Context) error {
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "fromの形式が不正です（RFC3339）")
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "toの形式が不正です（RFC3339）")
	}
	reservations, err := h.service.GetReservationsByDateRange(c.Request().Context(), from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toReservationResponses(reservations))
}

func toReservationResponses(reservations []*reservation.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return resp
}
