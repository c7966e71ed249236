package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RentalQuery filters dashboard listings.
type RentalQuery struct {
	UserID   string
	Party    RentalParty
	Statuses []RentalStatus
	Page     int64
	Limit    int64
}

type RentalRepository interface {
	// BeginTx opens the ledger transaction the reconciler's atomic step runs
	// in. The returned handle is shared with the other repositories via
	// WithTx.
	BeginTx(ctx context.Context) (*gorm.DB, error)
	WithTx(tx *gorm.DB) RentalRepository

	CreateRental(ctx context.Context, rental *Rental) error
	GetRentalByID(ctx context.Context, rentalID string) (*Rental, error)
	ListRentals(ctx context.Context, query RentalQuery) ([]*Rental, int64, error)

	// GpuHasActiveRental reports whether the GPU is held by a
	// pending_payment or running rental.
	GpuHasActiveRental(ctx context.Context, gpuID string) (bool, error)

	// ApplyStatusChange performs the compare-and-swap transition. When the
	// rental is not in one of change.From it returns the current row together
	// with ErrInvalidTransition; a missing rental returns ErrUnknownRental.
	ApplyStatusChange(ctx context.Context, rentalID string, change StatusChange) (*Rental, error)

	// FindExpiredUnpaid returns rentals still awaiting payment whose window
	// lapsed before now.
	FindExpiredUnpaid(ctx context.Context, now time.Time) ([]*Rental, error)

	// GetRentalUsage folds completed sessions into total count and hours.
	GetRentalUsage(ctx context.Context, renterID string) (*RentalUsage, error)
}
