package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/coreshare/rental-service/internal/delivery/http/dto"
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/usecase"
	rentaldto "github.com/coreshare/rental-service/internal/usecase/dto/rental"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RentalHandler struct {
	Usecase usecase.RentalUsecase
	V       *validator.Validate
	Log     *slog.Logger
}

func NewRentalHandler(rentalUsecase usecase.RentalUsecase, v *validator.Validate, log *slog.Logger) *RentalHandler {
	return &RentalHandler{Usecase: rentalUsecase, V: v, Log: log}
}

// POST /v1/rentals
func (h *RentalHandler) Create(c echo.Context) error {
	var req dto.CreateRentalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	out, err := h.Usecase.CreateRental(c.Request().Context(), &rentaldto.CreateRentalInput{
		GpuID:    req.GpuID,
		RenterID: req.RenterID,
		Task:     req.Task,
	})
	if err != nil {
		h.Log.Error("rental create", "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"rental": dto.FromDomainRental(&out.Rental),
		"gpu":    dto.FromDomainGpu(&out.Gpu),
	})
}

// GET /v1/rentals/:id
func (h *RentalHandler) Get(c echo.Context) error {
	out, err := h.Usecase.GetRentalByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"rental": dto.FromDomainRental(&out.Rental),
		"gpu":    dto.FromDomainGpu(&out.Gpu),
	})
}

// POST /v1/rentals/:id/initiate-payment
func (h *RentalHandler) InitiatePayment(c echo.Context) error {
	rental, err := h.Usecase.MarkPendingPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("rental initiate payment", "rental_id", c.Param("id"), "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"rental": dto.FromDomainRental(rental)})
}

// POST /v1/rentals/:id/stop
func (h *RentalHandler) Stop(c echo.Context) error {
	rental, err := h.Usecase.StopRental(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("rental stop", "rental_id", c.Param("id"), "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"rental": dto.FromDomainRental(rental)})
}

// POST /v1/rentals/:id/cancel
func (h *RentalHandler) Cancel(c echo.Context) error {
	var req dto.CancelRentalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	reason := req.Reason
	if reason == "" {
		reason = domain.ReasonRenterCancelled
	}

	rental, err := h.Usecase.CancelRental(c.Request().Context(), c.Param("id"), reason)
	if err != nil {
		h.Log.Error("rental cancel", "rental_id", c.Param("id"), "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"rental": dto.FromDomainRental(rental)})
}

// GET /v1/users/:id/rentals
func (h *RentalHandler) ListUserRentals(c echo.Context) error {
	input := &rentaldto.ListRentalsInput{
		UserID: c.Param("id"),
		Party:  domain.RentalParty(c.QueryParam("party")),
	}

	if raw := c.QueryParam("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			input.Statuses = append(input.Statuses, domain.RentalStatus(strings.TrimSpace(s)))
		}
	}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid page"})
		}
		input.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid limit"})
		}
		input.Limit = limit
	}

	out, err := h.Usecase.ListUserRentals(c.Request().Context(), input)
	if err != nil {
		h.Log.Error("rental list", "user_id", input.UserID, "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	rentals := make([]dto.RentalResponse, len(out.Rentals))
	for i, rental := range out.Rentals {
		rentals[i] = dto.FromDomainRental(rental)
	}

	return c.JSON(http.StatusOK, dto.ListRentalsResponse{
		Rentals: rentals,
		Pagination: dto.PaginationResponse{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	})
}
