package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/usecase"
	rentaldto "github.com/coreshare/rental-service/internal/usecase/dto/rental"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type rentalUsecaseMock struct {
	createFn      func(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error)
	markPendingFn func(ctx context.Context, rentalID string) (*domain.Rental, error)
	stopFn        func(ctx context.Context, rentalID string) (*domain.Rental, error)
	cancelFn      func(ctx context.Context, rentalID, reason string) (*domain.Rental, error)
	failFn        func(ctx context.Context, rentalID, reason string) (*domain.Rental, error)
	getFn         func(ctx context.Context, rentalID string) (*rentaldto.RentalOutput, error)
	listFn        func(ctx context.Context, input *rentaldto.ListRentalsInput) (*rentaldto.ListRentalsOutput, error)
	sweepFn       func(ctx context.Context) error
}

var _ usecase.RentalUsecase = (*rentalUsecaseMock)(nil)

func (m *rentalUsecaseMock) CreateRental(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error) {
	if m.createFn == nil {
		return nil, domain.ErrGpuNotFound
	}
	return m.createFn(ctx, input)
}
func (m *rentalUsecaseMock) MarkPendingPayment(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if m.markPendingFn == nil {
		return nil, domain.ErrUnknownRental
	}
	return m.markPendingFn(ctx, rentalID)
}
func (m *rentalUsecaseMock) StopRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	if m.stopFn == nil {
		return nil, domain.ErrUnknownRental
	}
	return m.stopFn(ctx, rentalID)
}
func (m *rentalUsecaseMock) CancelRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	if m.cancelFn == nil {
		return nil, domain.ErrUnknownRental
	}
	return m.cancelFn(ctx, rentalID, reason)
}
func (m *rentalUsecaseMock) FailRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	if m.failFn == nil {
		return nil, domain.ErrUnknownRental
	}
	return m.failFn(ctx, rentalID, reason)
}
func (m *rentalUsecaseMock) GetRentalByID(ctx context.Context, rentalID string) (*rentaldto.RentalOutput, error) {
	if m.getFn == nil {
		return nil, domain.ErrUnknownRental
	}
	return m.getFn(ctx, rentalID)
}
func (m *rentalUsecaseMock) ListUserRentals(ctx context.Context, input *rentaldto.ListRentalsInput) (*rentaldto.ListRentalsOutput, error) {
	if m.listFn == nil {
		return &rentaldto.ListRentalsOutput{}, nil
	}
	return m.listFn(ctx, input)
}
func (m *rentalUsecaseMock) CancelExpiredRentals(ctx context.Context) error {
	if m.sweepFn == nil {
		return nil
	}
	return m.sweepFn(ctx)
}

func sampleOutput(rentalID string) *rentaldto.RentalOutput {
	return &rentaldto.RentalOutput{
		Rental: domain.Rental{
			ID:           rentalID,
			GpuID:        "gpu-1",
			RenterID:     "renter-1",
			OwnerID:      "owner-1",
			Status:       domain.StatusRequested,
			PricePerHour: decimal.NewFromInt(350),
			ExpiresAt:    time.Now().Add(30 * time.Minute),
		},
		Gpu: domain.GPU{
			ID:           "gpu-1",
			OwnerID:      "owner-1",
			Name:         "A100 80GB",
			VramGb:       80,
			PricePerHour: decimal.NewFromInt(350),
			Active:       true,
		},
	}
}

func TestCreateRentalEndpoint(t *testing.T) {
	h := NewRentalHandler(&rentalUsecaseMock{
		createFn: func(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error) {
			require.Equal(t, "gpu-1", input.GpuID)
			require.Equal(t, "renter-1", input.RenterID)
			return sampleOutput("rental-1"), nil
		},
	}, validator.New(), testLogger())

	rec := postJSON(t, h.Create, "/v1/rentals", `{"gpuId": "gpu-1", "renterId": "renter-1", "task": "llm eval"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "rental")
	require.Contains(t, body, "gpu")

	var rental map[string]any
	require.NoError(t, json.Unmarshal(body["rental"], &rental))
	require.Equal(t, "requested", rental["status"])
}

func TestCreateRentalEndpoint_Validation(t *testing.T) {
	h := NewRentalHandler(&rentalUsecaseMock{}, validator.New(), testLogger())

	rec := postJSON(t, h.Create, "/v1/rentals", `{"gpuId": "gpu-1"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "validation error")
}

func TestCreateRentalEndpoint_GpuHeld(t *testing.T) {
	h := NewRentalHandler(&rentalUsecaseMock{
		createFn: func(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error) {
			return nil, domain.ErrGpuUnavailable
		},
	}, validator.New(), testLogger())

	rec := postJSON(t, h.Create, "/v1/rentals", `{"gpuId": "gpu-1", "renterId": "renter-1"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelEndpoint_DefaultsReason(t *testing.T) {
	var gotReason string
	h := NewRentalHandler(&rentalUsecaseMock{
		cancelFn: func(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
			gotReason = reason
			return &domain.Rental{ID: rentalID, Status: domain.StatusCancelled, StatusReason: reason}, nil
		},
	}, validator.New(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals/rental-1/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rental-1")

	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ReasonRenterCancelled, gotReason)
}

func TestStopEndpoint_ConflictWhenNotRunning(t *testing.T) {
	h := NewRentalHandler(&rentalUsecaseMock{
		stopFn: func(ctx context.Context, rentalID string) (*domain.Rental, error) {
			return nil, domain.ErrInvalidTransition
		},
	}, validator.New(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals/rental-1/stop", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("rental-1")

	require.NoError(t, h.Stop(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestListUserRentalsEndpoint_ParsesQuery(t *testing.T) {
	var seen *rentaldto.ListRentalsInput
	h := NewRentalHandler(&rentalUsecaseMock{
		listFn: func(ctx context.Context, input *rentaldto.ListRentalsInput) (*rentaldto.ListRentalsOutput, error) {
			seen = input
			return &rentaldto.ListRentalsOutput{
				Rentals:    []*domain.Rental{},
				Pagination: rentaldto.Pagination{CurrentPage: 2, TotalPages: 5, TotalItems: 98, ItemsPerPage: 20},
			}, nil
		},
	}, validator.New(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/user-1/rentals?party=renter&status=running,%20completed&page=2&limit=20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	require.NoError(t, h.ListUserRentals(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, seen)
	require.Equal(t, "user-1", seen.UserID)
	require.Equal(t, domain.PartyRenter, seen.Party)
	require.Equal(t, []domain.RentalStatus{domain.StatusRunning, domain.StatusCompleted}, seen.Statuses)
	require.EqualValues(t, 2, seen.Page)
	require.EqualValues(t, 20, seen.Limit)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "pagination")
}

func TestListUserRentalsEndpoint_BadPage(t *testing.T) {
	h := NewRentalHandler(&rentalUsecaseMock{}, validator.New(), testLogger())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/user-1/rentals?page=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	require.NoError(t, h.ListUserRentals(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
