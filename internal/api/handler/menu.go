package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/application"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
)

type MenuHandler struct {
	service MenuServiceInterface
}

func NewMenuHandler(s MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

type CreateMenuItemRequest struct {
	RestaurantID   string  `json:"restaurant_id" validate:"required"`
	Name           string  `json:"name" validate:"required" example:"お任せコース"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category" validate:"required" example:"コース"`
	Price          float64 `json:"price" validate:"min=0" example:"5800"`
	AvailableStock int     `json:"available_stock" validate:"min=0" example:"10"`
	ImageURL       string  `json:"image_url,omitempty"`
}

type UpdateMenuItemRequest struct {
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	AvailableStock *int     `json:"available_stock,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}

type MenuItemResponse struct {
	ID             string    `json:"id"`
	RestaurantID   string    `json:"restaurant_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	AvailableStock int       `json:"available_stock"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMenuItemResponse(m *menu.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID: m.ID, RestaurantID: m.RestaurantID,
		Name: m.Name, Description: m.Description, Category: m.Category,
		Price: m.Price, AvailableStock: m.AvailableStock, ImageURL: m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func toMenuItemResponses(items []*menu.MenuItem) []MenuItemResponse {
	resp := make([]MenuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}
	return resp
}

// Create godoc
// @Summary メニュー項目を作成（管理者用）
// @Tags menu
// @Accept json
// @Produce json
// @Param request body CreateMenuItemRequest true "メニュー情報"
// @Success 201 {object} MenuItemResponse
// @Security BearerAuth
// @Router /admin/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	var req CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	item, err := h.service.CreateMenuItem(c.Request().Context(), application.CreateMenuItemInput{
		RestaurantID: req.RestaurantID, Name: req.Name, Description: req.Description,
		Category: req.Category, Price: req.Price, AvailableStock: req.AvailableStock,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// GetByID godoc
// @Summary メニュー項目を取得
// @Tags menu
// @Produce json
// @Param id path string true "メニュー項目ID"
// @Success 200 {object} MenuItemResponse
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [get]
func (h *MenuHandler) GetByID(c echo.Context) error {
	item, err := h.service.GetMenuItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// GetByRestaurant godoc
// @Summary レストランのメニューを取得
// @Description available=trueで提供可能な項目のみ、categoryクエリでカテゴリ絞り込み
// @Tags menu
// @Produce json
// @Param id path string true "レストランID"
// @Param available query bool false "提供可能のみ"
// @Param category query string false "カテゴリ"
// @Success 200 {array} MenuItemResponse
// @Router /restaurants/{id}/menu [get]
func (h *MenuHandler) GetByRestaurant(c echo.Context) error {
	restaurantID := c.Param("id")
	ctx := c.Request().Context()

	var (
		items []*menu.MenuItem
		err   error
	)
	switch {
	case c.QueryParam("category") != "":
		items, err = h.service.GetMenuByCategory(ctx, restaurantID, c.QueryParam("category"))
	case c.QueryParam("available") == "true":
		items, err = h.service.GetAvailableMenu(ctx, restaurantID)
	default:
		items, err = h.service.GetMenu(ctx, restaurantID)
	}
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponses(items))
}

// Update godoc
// @Summary メニュー項目を更新（管理者用）
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "メニュー項目ID"
// @Param request body UpdateMenuItemRequest true "更新内容"
// @Success 200 {object} MenuItemResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/menu/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	var req UpdateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	item, err := h.service.UpdateMenuItem(c.Request().Context(), c.Param("id"), application.UpdateMenuItemInput{
		Name: req.Name, Description: req.Description, Category: req.Category,
		Price: req.Price, AvailableStock: req.AvailableStock, ImageURL: req.ImageURL,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Delete godoc
// @Summary メニュー項目を削除（管理者用）
// @Tags menu
// @Param id path string true "メニュー項目ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/menu/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMenuItem(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
