package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/menu"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/reservation"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/restaurant"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/table"
	"github.com/victoriaparraf/Goyos-Secret/internal/domain/user"
)

// toHTTPError はドメインエラーをHTTPステータスに対応付ける
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound),
		errors.Is(err, table.ErrTableNotFound),
		errors.Is(err, restaurant.ErrRestaurantNotFound),
		errors.Is(err, menu.ErrMenuItemNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, reservation.ErrUserSlotConflict),
		errors.Is(err, reservation.ErrTableSlotConflict),
		errors.Is(err, reservation.ErrReservationAlreadyCancelled),
		errors.Is(err, reservation.ErrReservationAlreadyCompleted),
		errors.Is(err, table.ErrTableNumberConflict),
		errors.Is(err, restaurant.ErrRestaurantNameConflict),
		errors.Is(err, restaurant.ErrRestaurantHasTables),
		errors.Is(err, user.ErrEmailAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, reservation.ErrCancellationForbidden),
		errors.Is(err, user.ErrAdminRegistrationDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, reservation.ErrInvalidDuration),
		errors.Is(err, reservation.ErrInvalidNumPeople),
		errors.Is(err, reservation.ErrUserIDRequired),
		errors.Is(err, reservation.ErrTableIDRequired),
		errors.Is(err, reservation.ErrCancellationTooLate),
		errors.Is(err, menu.ErrTooManyPreorderedDishes),
		menu.IsDishUnavailable(err),
		errors.Is(err, table.ErrInvalidTableNumber),
		errors.Is(err, table.ErrInvalidCapacity),
		errors.Is(err, table.ErrRestaurantIDRequired),
		errors.Is(err, restaurant.ErrRestaurantNameRequired),
		errors.Is(err, restaurant.ErrInvalidOpeningHours),
		errors.Is(err, menu.ErrMenuItemNameRequired),
		errors.Is(err, menu.ErrInvalidPrice),
		errors.Is(err, menu.ErrInvalidStock),
		errors.Is(err, menu.ErrCategoryRequired),
		errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrEmailRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
