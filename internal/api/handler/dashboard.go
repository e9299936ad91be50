package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/dashboard"
)

type DashboardHandler struct {
	service DashboardServiceInterface
}

func NewDashboardHandler(s DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: s}
}

type PeriodCountResponse struct {
	Period time.Time `json:"period"`
	Count  int       `json:"count"`
}

type DishCountResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

type OccupancyResponse struct {
	RestaurantID   string  `json:"restaurant_id"`
	RestaurantName string  `json:"restaurant_name"`
	TableCount     int     `json:"table_count"`
	ReservedTables int     `json:"reserved_tables"`
	Percentage     float64 `json:"percentage"`
}

type DashboardSummaryResponse struct {
	ReservationsByDay  []PeriodCountResponse `json:"reservations_by_day"`
	ReservationsByWeek []PeriodCountResponse `json:"reservations_by_week"`
	TopDishes          []DishCountResponse   `json:"top_dishes"`
	Occupancies        []OccupancyResponse   `json:"occupancies"`
}

// GetSummary godoc
// @Summary ダッシュボード集計を取得（管理者用）
// @Description 期間別予約数・人気料理・テーブル稼働率を集計します
// @Tags dashboard
// @Produce json
// @Param from query string false "開始日時（RFC3339、省略時は30日前）"
// @Param to query string false "終了日時（RFC3339、省略時は現在）"
// @Success 200 {object} DashboardSummaryResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "fromの形式が不正です（RFC3339）")
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "toの形式が不正です（RFC3339）")
		}
		to = parsed
	}

	summary, err := h.service.GetSummary(c.Request().Context(), from, to)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toDashboardResponse(summary))
}

func toDashboardResponse(s *dashboard.Summary) DashboardSummaryResponse {
	resp := DashboardSummaryResponse{
		ReservationsByDay:  make([]PeriodCountResponse, len(s.ReservationsByDay)),
		ReservationsByWeek: make([]PeriodCountResponse, len(s.ReservationsByWeek)),
		TopDishes:          make([]DishCountResponse, len(s.TopDishes)),
		Occupancies:        make([]OccupancyResponse, len(s.Occupancies)),
	}
	for i, pc := range s.ReservationsByDay {
		resp.ReservationsByDay[i] = PeriodCountResponse{Period: pc.Period, Count: pc.Count}
	}
	for i, pc := range s.ReservationsByWeek {
		resp.ReservationsByWeek[i] = PeriodCountResponse{Period: pc.Period, Count: pc.Count}
	}
	for i, dc := range s.TopDishes {
		resp.TopDishes[i] = DishCountResponse{MenuItemID: dc.MenuItemID, Name: dc.Name, Count: dc.Count}
	}
	for i, oc := range s.Occupancies {
		resp.Occupancies[i] = OccupancyResponse{
			RestaurantID: oc.RestaurantID, RestaurantName: oc.RestaurantName,
			TableCount: oc.TableCount, ReservedTables: oc.ReservedTables,
			Percentage: oc.Percentage,
		}
	}
	return resp
}
