package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/kafka"
	"github.com/coreshare/rental-service/internal/infrastructure/metrics"
	rentaldto "github.com/coreshare/rental-service/internal/usecase/dto/rental"
	"github.com/google/uuid"
)

type RentalUsecase interface {
	CreateRental(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error)
	MarkPendingPayment(ctx context.Context, rentalID string) (*domain.Rental, error)
	StopRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error)
	FailRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error)
	GetRentalByID(ctx context.Context, rentalID string) (*rentaldto.RentalOutput, error)
	ListUserRentals(ctx context.Context, input *rentaldto.ListRentalsInput) (*rentaldto.ListRentalsOutput, error)
	CancelExpiredRentals(ctx context.Context) error
}

type DefaultRentalUsecase struct {
	RentalRepo    domain.RentalRepository
	GpuRepo       domain.GpuRepository
	Publisher     kafka.RentalPublisher
	Metrics       *metrics.RentalMetrics
	PaymentWindow time.Duration
}

func NewDefaultRentalUsecase(
	rentalRepo domain.RentalRepository,
	gpuRepo domain.GpuRepository,
	publisher kafka.RentalPublisher,
	rentalMetrics *metrics.RentalMetrics,
	paymentWindow time.Duration) *DefaultRentalUsecase {

	return &DefaultRentalUsecase{
		RentalRepo:    rentalRepo,
		GpuRepo:       gpuRepo,
		Publisher:     publisher,
		Metrics:       rentalMetrics,
		PaymentWindow: paymentWindow,
	}
}

func (uc *DefaultRentalUsecase) CreateRental(ctx context.Context, input *rentaldto.CreateRentalInput) (*rentaldto.RentalOutput, error) {
	start := time.Now()
	slog.Info("CreateRental started", "gpu_id", input.GpuID, "renter_id", input.RenterID)

	gpu, err := uc.GpuRepo.GetGpuByID(ctx, input.GpuID)
	if err != nil {
		return nil, err
	}
	if !gpu.Active {
		return nil, domain.ErrGpuUnavailable
	}

	busy, err := uc.RentalRepo.GpuHasActiveRental(ctx, gpu.ID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, domain.ErrGpuUnavailable
	}

	rental := domain.Rental{
		ID:           uuid.New().String(),
		GpuID:        gpu.ID,
		RenterID:     input.RenterID,
		OwnerID:      gpu.OwnerID,
		Status:       domain.StatusRequested,
		PricePerHour: gpu.PricePerHour,
		Task:         input.Task,
		ExpiresAt:    time.Now().Add(uc.PaymentWindow),
	}

	if err := uc.RentalRepo.CreateRental(ctx, &rental); err != nil {
		return nil, err
	}

	uc.Metrics.RecordRentalCreated(gpu.Purpose)
	uc.publishEvent(&rental, "")

	slog.Info("CreateRental finished", "rental_id", rental.ID, "total_elapsed", time.Since(start))

	return &rentaldto.RentalOutput{
		Rental: rental,
		Gpu:    *gpu,
	}, nil
}

// MarkPendingPayment moves a rental into the payment window right before the
// payment prompt goes out to the renter.
func (uc *DefaultRentalUsecase) MarkPendingPayment(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := uc.RentalRepo.GetRentalByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	// Another rental may have claimed the GPU since this one was requested.
	busy, err := uc.RentalRepo.GpuHasActiveRental(ctx, rental.GpuID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, domain.ErrGpuUnavailable
	}

	updated, err := uc.RentalRepo.ApplyStatusChange(ctx, rentalID, domain.StatusChange{
		From: []domain.RentalStatus{domain.StatusRequested},
		To:   domain.StatusPendingPayment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && updated != nil && updated.Status == domain.StatusPendingPayment {
			return updated, nil
		}
		return nil, err
	}

	uc.publishEvent(updated, "")

	return updated, nil
}

func (uc *DefaultRentalUsecase) StopRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	now := time.Now()
	updated, err := uc.RentalRepo.ApplyStatusChange(ctx, rentalID, domain.StatusChange{
		From:    []domain.RentalStatus{domain.StatusRunning},
		To:      domain.StatusCompleted,
		EndTime: &now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && updated != nil && updated.Status == domain.StatusCompleted {
			// Repeated stop keeps the original end time.
			return updated, nil
		}
		return nil, err
	}

	if gpu, gerr := uc.GpuRepo.GetGpuByID(ctx, updated.GpuID); gerr == nil {
		uc.Metrics.RecordRentalCompleted(gpu.Purpose)
	}
	uc.publishEvent(updated, "")

	return updated, nil
}

func (uc *DefaultRentalUsecase) CancelRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	updated, err := uc.RentalRepo.ApplyStatusChange(ctx, rentalID, domain.StatusChange{
		From:         []domain.RentalStatus{domain.StatusRequested, domain.StatusPendingPayment},
		To:           domain.StatusCancelled,
		StatusReason: reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && updated != nil && updated.Status == domain.StatusCancelled {
			return updated, nil
		}
		return nil, err
	}

	uc.Metrics.RecordRentalCancelled(reason)
	uc.publishEvent(updated, reason)

	return updated, nil
}

// FailRental ends a rental that can no longer be served, during the payment
// window or mid-session. On a rental that already reached a terminal state it
// is a no-op returning the existing record.
func (uc *DefaultRentalUsecase) FailRental(ctx context.Context, rentalID, reason string) (*domain.Rental, error) {
	updated, err := uc.RentalRepo.ApplyStatusChange(ctx, rentalID, domain.StatusChange{
		From:         []domain.RentalStatus{domain.StatusPendingPayment, domain.StatusRunning},
		To:           domain.StatusFailed,
		StatusReason: reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && updated != nil && updated.Status.IsTerminal() {
			return updated, nil
		}
		return nil, err
	}

	uc.Metrics.RecordRentalFailed(reason)
	uc.publishEvent(updated, reason)

	return updated, nil
}

func (uc *DefaultRentalUsecase) GetRentalByID(ctx context.Context, rentalID string) (*rentaldto.RentalOutput, error) {
	rental, err := uc.RentalRepo.GetRentalByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	gpu, err := uc.GpuRepo.GetGpuByID(ctx, rental.GpuID)
	if err != nil {
		return nil, err
	}
	return &rentaldto.RentalOutput{
		Rental: *rental,
		Gpu:    *gpu,
	}, nil
}

func (uc *DefaultRentalUsecase) ListUserRentals(ctx context.Context, input *rentaldto.ListRentalsInput) (*rentaldto.ListRentalsOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 || input.Limit > 100 {
		input.Limit = 20
	}

	validStatuses := map[domain.RentalStatus]bool{
		domain.StatusRequested:      true,
		domain.StatusPendingPayment: true,
		domain.StatusRunning:        true,
		domain.StatusCompleted:      true,
		domain.StatusCancelled:      true,
		domain.StatusFailed:         true,
	}
	for _, status := range input.Statuses {
		if !validStatuses[status] {
			return nil, fmt.Errorf("invalid status in filters: %s", status)
		}
	}

	rentals, total, err := uc.RentalRepo.ListRentals(ctx, domain.RentalQuery{
		UserID:   input.UserID,
		Party:    input.Party,
		Statuses: input.Statuses,
		Page:     input.Page,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := total / input.Limit
	if total%input.Limit > 0 {
		totalPages++
	}

	return &rentaldto.ListRentalsOutput{
		Rentals: rentals,
		Pagination: rentaldto.Pagination{
			CurrentPage:  int32(input.Page),
			TotalPages:   int32(totalPages),
			TotalItems:   int32(total),
			ItemsPerPage: int32(input.Limit),
		},
	}, nil
}

func (uc *DefaultRentalUsecase) CancelExpiredRentals(ctx context.Context) error {
	rentals, err := uc.RentalRepo.FindExpiredUnpaid(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, rental := range rentals {
		if _, err := uc.CancelRental(ctx, rental.ID, domain.ReasonPaymentWindowExpired); err != nil {
			log.Printf("Failed to cancel rental %s on timeout! Error: %v\n", rental.ID, err)
			continue
		}

		log.Printf("Rental %s cancelled: payment window expired\n", rental.ID)
	}

	return nil
}

func (uc *DefaultRentalUsecase) publishEvent(rental *domain.Rental, reason string) {
	go func(event kafka.RentalEvent) {
		if err := uc.Publisher.PublishRental(event); err != nil {
			slog.Error("failed to publish rental event", "rental_id", event.RentalID, "error", err.Error())
		}
	}(kafka.RentalEvent{
		RentalID:   rental.ID,
		GpuID:      rental.GpuID,
		RenterID:   rental.RenterID,
		OwnerID:    rental.OwnerID,
		Status:     string(rental.Status),
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}
