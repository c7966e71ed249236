package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/coreshare/rental-service/internal/delivery/http/dto"
	"github.com/coreshare/rental-service/internal/usecase"
	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	Usecase        usecase.StatsUsecase
	PaymentUsecase usecase.PaymentUsecase
	Log            *slog.Logger
}

func NewStatsHandler(statsUsecase usecase.StatsUsecase, paymentUsecase usecase.PaymentUsecase, log *slog.Logger) *StatsHandler {
	return &StatsHandler{Usecase: statsUsecase, PaymentUsecase: paymentUsecase, Log: log}
}

// GET /v1/users/:id/stats
func (h *StatsHandler) GetUserStats(c echo.Context) error {
	stats, err := h.Usecase.GetUserStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("user stats", "user_id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, dto.UserStatsResponse{
		UserID:       stats.UserID,
		TotalSpent:   stats.TotalSpent,
		TotalIncome:  stats.TotalIncome,
		TotalRentals: stats.TotalRentals,
		TotalHours:   stats.TotalHours,
	})
}

// GET /v1/users/:id/stats/monthly
func (h *StatsHandler) GetMonthlyBreakdown(c echo.Context) error {
	var from, to time.Time
	var err error

	if raw := c.QueryParam("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid from date, want YYYY-MM-DD"})
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid to date, want YYYY-MM-DD"})
		}
	}

	out, err := h.Usecase.GetMonthlyBreakdown(c.Request().Context(), c.Param("id"), from, to)
	if err != nil {
		h.Log.Error("monthly breakdown", "user_id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	months := make([]dto.MonthlyStatResponse, len(out.Months))
	for i, month := range out.Months {
		months[i] = dto.MonthlyStatResponse{
			Month:  month.Month,
			Spent:  month.Spent,
			Income: month.Income,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"userId": out.UserID,
		"months": months,
	})
}

// GET /v1/users/:id/payments
func (h *StatsHandler) ListUserPayments(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid limit"})
		}
		limit = parsed
	}

	records, err := h.PaymentUsecase.ListUserPayments(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		h.Log.Error("user payments", "user_id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]dto.PaymentRecordResponse, len(records))
	for i, record := range records {
		out[i] = dto.FromDomainPaymentRecord(record)
	}

	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}

// POST /v1/users/:id/stats/rebuild
func (h *StatsHandler) RebuildUserStats(c echo.Context) error {
	stats, err := h.Usecase.RebuildUserStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("stats rebuild", "user_id", c.Param("id"), "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"userId":      stats.UserID,
		"totalSpent":  stats.TotalSpent,
		"totalIncome": stats.TotalIncome,
	})
}
