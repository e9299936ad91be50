package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
)

type TableHandler struct {
	service TableServiceInterface
}

func NewTableHandler(s TableServiceInterface) *TableHandler {
	return &TableHandler{service: s}
}

type CreateTableRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Number       int    `json:"number" validate:"required,min=1" example:"3"`
	Capacity     int    `json:"capacity" validate:"required,min=2,max=12" example:"4"`
	Location     string `json:"location,omitempty" example:"窓際"`
}

type UpdateTableRequest struct {
	Number   int    `json:"number,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Location string `json:"location,omitempty"`
}

type TableResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Number       int       `json:"number"`
	Capacity     int       `json:"capacity"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toTableResponse(t *table.Table) TableResponse {
	return TableResponse{
		ID: t.ID, RestaurantID: t.RestaurantID,
		Number: t.Number, Capacity: t.Capacity, Location: t.Location,
		CreatedAt: t.CreatedAt,
	}
}

// Create godoc
// @Summary テーブルを作成（管理者用）
// @Tags tables
// @Accept json
// @Produce json
// @Param request body CreateTableRequest true "テーブル情報"
// @Success 201 {object} TableResponse
// @Failure 409 {object} map[string]string "テーブル番号が重複"
// @Security BearerAuth
// @Router /admin/tables [post]
func (h *TableHandler) Create(c echo.Context) error {
	var req CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.CreateTable(c.Request().Context(), application.CreateTableInput{
		RestaurantID: req.RestaurantID, Number: req.Number,
		Capacity: req.Capacity, Location: req.Location,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toTableResponse(t))
}

// GetByID godoc
// @Summary テーブルを取得
// @Tags tables
// @Produce json
// @Param id path string true "テーブルID"
// @Success 200 {object} TableResponse
// @Failure 404 {object} map[string]string
// @Router /tables/{id} [get]
func (h *TableHandler) GetByID(c echo.Context) error {
	t, err := h.service.GetTable(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTableResponse(t))
}

// GetByRestaurant godoc
// @Summary レストランのテーブル一覧を取得
// @Description capacity・locationクエリで絞り込みできます
// @Tags tables
// @Produce json
// @Param id path string true "レストランID"
// @Param capacity query int false "最低定員"
// @Param location query string false "ロケーション"
// @Success 200 {array} TableResponse
// @Router /restaurants/{id}/tables [get]
func (h *TableHandler) GetByRestaurant(c echo.Context) error {
	restaurantID := c.Param("id")
	capacity, _ := strconv.Atoi(c.QueryParam("capacity"))
	location := c.QueryParam("location")

	var (
		tables []*table.Table
		err    error
	)
	if capacity > 0 || location != "" {
		tables, err = h.service.SearchTables(c.Request().Context(), restaurantID, capacity, location)
	} else {
		tables, err = h.service.GetRestaurantTables(c.Request().Context(), restaurantID)
	}
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]TableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary テーブルを更新（管理者用）
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "テーブルID"
// @Param request body UpdateTableRequest true "更新内容"
// @Success 200 {object} TableResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tables/{id} [put]
func (h *TableHandler) Update(c echo.Context) error {
	var req UpdateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	t, err := h.service.UpdateTable(c.Request().Context(), c.Param("id"), application.UpdateTableInput{
		Number: req.Number, Capacity: req.Capacity, Location: req.Location,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toTableResponse(t))
}

// Delete godoc
// @Summary テーブルを削除（管理者用）
// @Tags tables
// @Param id path string true "テーブルID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tables/{id} [delete]
func (h *TableHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteTable(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
