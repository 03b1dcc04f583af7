package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/aura_shop/internal/auth"
	"github.com/Skotchmaster/aura_shop/internal/catalog"
	"github.com/Skotchmaster/aura_shop/internal/order"
)

// statusFor maps domain errors to an HTTP status; unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, auth.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserAlreadyExist),
		errors.Is(err, order.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// httpError keeps internal error text out of 500 responses.
func httpError(err error, internalMsg string) *echo.HTTPError {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, internalMsg)
	}
	return echo.NewHTTPError(code, err.Error())
}
