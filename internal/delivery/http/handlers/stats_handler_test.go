package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/usecase"
	statsdto "github.com/coreshare/rental-service/internal/usecase/dto/stats"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type statsUsecaseMock struct {
	statsFn   func(ctx context.Context, userID string) (*statsdto.UserStatsOutput, error)
	monthlyFn func(ctx context.Context, userID string, from, to time.Time) (*statsdto.MonthlyBreakdownOutput, error)
	rebuildFn func(ctx context.Context, userID string) (*domain.UserStats, error)
}

var _ usecase.StatsUsecase = (*statsUsecaseMock)(nil)

func (m *statsUsecaseMock) GetUserStats(ctx context.Context, userID string) (*statsdto.UserStatsOutput, error) {
	if m.statsFn == nil {
		return &statsdto.UserStatsOutput{UserID: userID}, nil
	}
	return m.statsFn(ctx, userID)
}
func (m *statsUsecaseMock) GetMonthlyBreakdown(ctx context.Context, userID string, from, to time.Time) (*statsdto.MonthlyBreakdownOutput, error) {
	if m.monthlyFn == nil {
		return &statsdto.MonthlyBreakdownOutput{UserID: userID}, nil
	}
	return m.monthlyFn(ctx, userID, from, to)
}
func (m *statsUsecaseMock) RebuildUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if m.rebuildFn == nil {
		return &domain.UserStats{UserID: userID}, nil
	}
	return m.rebuildFn(ctx, userID)
}

func statsGET(t *testing.T, handler echo.HandlerFunc, target, userID string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(userID)
	require.NoError(t, handler(c))
	return rec
}

func TestGetMonthlyBreakdown_PassesParsedRange(t *testing.T) {
	var gotFrom, gotTo time.Time
	h := NewStatsHandler(&statsUsecaseMock{
		monthlyFn: func(ctx context.Context, userID string, from, to time.Time) (*statsdto.MonthlyBreakdownOutput, error) {
			gotFrom, gotTo = from, to
			return &statsdto.MonthlyBreakdownOutput{
				UserID: userID,
				Months: []*domain.MonthlyStat{
					{Month: "2026-03", Spent: decimal.NewFromInt(140), Income: decimal.Zero},
				},
			}, nil
		},
	}, &paymentUsecaseMock{}, testLogger())

	rec := statsGET(t, h.GetMonthlyBreakdown, "/v1/users/user-1/stats/monthly?from=2026-03-01&to=2026-04-30", "user-1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)), "from: got %v", gotFrom)
	require.True(t, gotTo.Equal(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)), "to: got %v", gotTo)
	require.Contains(t, rec.Body.String(), "2026-03")
}

func TestGetMonthlyBreakdown_RejectsBadDate(t *testing.T) {
	h := NewStatsHandler(&statsUsecaseMock{}, &paymentUsecaseMock{}, testLogger())

	rec := statsGET(t, h.GetMonthlyBreakdown, "/v1/users/user-1/stats/monthly?from=march", "user-1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestListUserPayments_RejectsBadLimit(t *testing.T) {
	h := NewStatsHandler(&statsUsecaseMock{}, &paymentUsecaseMock{}, testLogger())

	rec := statsGET(t, h.ListUserPayments, "/v1/users/user-1/payments?limit=plenty", "user-1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRebuildUserStatsEndpoint(t *testing.T) {
	var rebuilt string
	h := NewStatsHandler(&statsUsecaseMock{
		rebuildFn: func(ctx context.Context, userID string) (*domain.UserStats, error) {
			rebuilt = userID
			return &domain.UserStats{
				UserID:      userID,
				TotalSpent:  decimal.NewFromInt(250),
				TotalIncome: decimal.Zero,
			}, nil
		},
	}, &paymentUsecaseMock{}, testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/users/user-1/stats/rebuild", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-1")
	require.NoError(t, h.RebuildUserStats(c))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", rebuilt)
	require.Contains(t, rec.Body.String(), "250")
}
