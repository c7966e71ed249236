package handlers

import (
	"errors"
	"net/http"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/labstack/echo/v4"
)

// respondDomainError maps domain errors onto the wire as {code, message}.
func respondDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPaymentEvent):
		return c.JSON(http.StatusBadRequest, echo.Map{"code": "INVALID_PAYMENT_EVENT", "message": "invalid payment event"})
	case errors.Is(err, domain.ErrGpuNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"code": "GPU_NOT_FOUND", "message": "gpu not found"})
	case errors.Is(err, domain.ErrUnknownRental):
		return c.JSON(http.StatusNotFound, echo.Map{"code": "UNKNOWN_RENTAL", "message": "rental not found"})
	case errors.Is(err, domain.ErrGpuUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"code": "GPU_UNAVAILABLE", "message": "gpu unavailable"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"code": "INVALID_TRANSITION", "message": "invalid rental state for this operation"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": "INTERNAL", "message": "internal error"})
	}
}
