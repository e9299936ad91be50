package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
)

type RestaurantHandler struct {
	service RestaurantServiceInterface
}

func NewRestaurantHandler(s RestaurantServiceInterface) *RestaurantHandler {
	return &RestaurantHandler{service: s}
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required" example:"花見亭"`
	Address     string `json:"address" validate:"required" example:"東京都渋谷区1-2-3"`
	OpeningTime string `json:"opening_time" validate:"required" example:"11:00"`
	ClosingTime string `json:"closing_time" validate:"required" example:"22:00"`
}

type UpdateRestaurantRequest struct {
	Name        string `json:"name,omitempty"`
	Address     string `json:"address,omitempty"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
}

type RestaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID: r.ID, Name: r.Name, Address: r.Address,
		OpeningTime: r.OpeningTime, ClosingTime: r.ClosingTime,
		CreatedAt: r.CreatedAt,
	}
}

// Create godoc
// @Summary レストランを作成（管理者用）
// @Tags restaurants
// @Accept json
// @Produce json
// @Param request body CreateRestaurantRequest true "レストラン情報"
// @Success 201 {object} RestaurantResponse
// @Failure 409 {object} map[string]string "同名のレストランが存在"
// @Security BearerAuth
// @Router /admin/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateRestaurant(c.Request().Context(), application.CreateRestaurantInput{
		Name: req.Name, Address: req.Address,
		OpeningTime: req.OpeningTime, ClosingTime: req.ClosingTime,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toRestaurantResponse(r))
}

// GetByID godoc
// @Summary レストランを取得
// @Tags restaurants
// @Produce json
// @Param id path string true "レストランID"
// @Success 200 {object} RestaurantResponse
// @Failure 404 {object} map[string]string
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetRestaurant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// List godoc
// @Summary レストラン一覧を取得
// @Tags restaurants
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} RestaurantResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	restaurants, err := h.service.ListRestaurants(c.Request().Context(), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		resp[i] = toRestaurantResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary レストランを更新（管理者用）
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "レストランID"
// @Param request body UpdateRestaurantRequest true "更新内容"
// @Success 200 {object} RestaurantResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	var req UpdateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	r, err := h.service.UpdateRestaurant(c.Request().Context(), c.Param("id"), application.UpdateRestaurantInput{
		Name: req.Name, Address: req.Address,
		OpeningTime: req.OpeningTime, ClosingTime: req.ClosingTime,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// Delete godoc
// @Summary レストランを削除（管理者用）
// @Description テーブルが残っているレストランは削除できません
// @Tags restaurants
// @Param id path string true "レストランID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "テーブルが残存"
// @Security BearerAuth
// @Router /admin/restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRestaurant(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
