package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/mappers"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultRentalRepository struct {
	DB *gorm.DB
}

func NewDefaultRentalRepository(db *gorm.DB) *DefaultRentalRepository {
	return &DefaultRentalRepository{DB: db}
}

func (r *DefaultRentalRepository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin tx: %w", tx.Error)
	}
	return tx, nil
}

func (r *DefaultRentalRepository) WithTx(tx *gorm.DB) domain.RentalRepository {
	return &DefaultRentalRepository{DB: tx}
}

func (r *DefaultRentalRepository) CreateRental(ctx context.Context, rental *domain.Rental) error {
	rentalModel := mappers.ToGORMRental(rental)
	if err := r.DB.WithContext(ctx).Create(rentalModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultRentalRepository) GetRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	var rentalModel models.RentalModel
	if err := r.DB.WithContext(ctx).First(&rentalModel, "id = ?", rentalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownRental
		}
		return nil, err
	}

	return mappers.ToDomainRental(&rentalModel), nil
}

func (r *DefaultRentalRepository) ListRentals(ctx context.Context, query domain.RentalQuery) ([]*domain.Rental, int64, error) {
	var rentalModels []models.RentalModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.RentalModel{})

	switch query.Party {
	case domain.PartyRenter:
		baseQuery = baseQuery.Where("renter_id = ?", query.UserID)
	case domain.PartyOwner:
		baseQuery = baseQuery.Where("owner_id = ?", query.UserID)
	default:
		baseQuery = baseQuery.Where("renter_id = ? OR owner_id = ?", query.UserID, query.UserID)
	}

	if len(query.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN ?", query.Statuses)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&rentalModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find rentals: %w", err)
	}

	rentals := make([]*domain.Rental, len(rentalModels))
	for i, rentalModel := range rentalModels {
		rentals[i] = mappers.ToDomainRental(&rentalModel)
	}

	return rentals, total, nil
}

func (r *DefaultRentalRepository) GpuHasActiveRental(ctx context.Context, gpuID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.RentalModel{}).
		Where("gpu_id = ? AND status IN ?", gpuID, []domain.RentalStatus{domain.StatusPendingPayment, domain.StatusRunning}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyStatusChange is the persisted half of the state machine: the UPDATE
// only matches when the row still holds one of the expected statuses, so
// concurrent writers serialize on the rental row and the loser gets
// ErrInvalidTransition with the current snapshot instead of clobbering it.
func (r *DefaultRentalRepository) ApplyStatusChange(ctx context.Context, rentalID string, change domain.StatusChange) (*domain.Rental, error) {
	updates := map[string]interface{}{
		"status":     change.To,
		"updated_at": time.Now(),
	}
	if change.StartTime != nil {
		updates["start_time"] = *change.StartTime
	}
	if change.EndTime != nil {
		updates["end_time"] = *change.EndTime
	}
	if change.StatusReason != "" {
		updates["status_reason"] = change.StatusReason
	}

	res := r.DB.WithContext(ctx).
		Model(&models.RentalModel{}).
		Where("id = ? AND status IN ?", rentalID, change.From).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	current, err := r.GetRentalByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if res.RowsAffected == 0 {
		return current, domain.ErrInvalidTransition
	}

	return current, nil
}

func (r *DefaultRentalRepository) FindExpiredUnpaid(ctx context.Context, now time.Time) ([]*domain.Rental, error) {
	var rentalModels []models.RentalModel
	err := r.DB.WithContext(ctx).
		Where("status IN ?", []domain.RentalStatus{domain.StatusRequested, domain.StatusPendingPayment}).
		Where("expires_at < ?", now).
		Find(&rentalModels).Error
	if err != nil {
		return nil, err
	}

	rentals := make([]*domain.Rental, len(rentalModels))
	for i, rentalModel := range rentalModels {
		rentals[i] = mappers.ToDomainRental(&rentalModel)
	}

	return rentals, nil
}

// GetRentalUsage folds in Go rather than SUM in SQL so hour math follows the
// same rounding everywhere.
func (r *DefaultRentalRepository) GetRentalUsage(ctx context.Context, renterID string) (*domain.RentalUsage, error) {
	var rentalModels []models.RentalModel
	err := r.DB.WithContext(ctx).
		Where("renter_id = ? AND status = ?", renterID, domain.StatusCompleted).
		Find(&rentalModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completed rentals: %w", err)
	}

	usage := &domain.RentalUsage{
		RenterID:   renterID,
		TotalHours: decimal.Zero,
	}
	for i := range rentalModels {
		rental := mappers.ToDomainRental(&rentalModels[i])
		hours := decimal.NewFromFloat(rental.Duration().Hours()).Round(2)
		usage.TotalRentals++
		usage.TotalHours = usage.TotalHours.Add(hours)
	}

	return usage, nil
}
