package models

import (
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RentalModel struct {
	ID           string              `gorm:"primaryKey;type:uuid"`
	GpuID        string              `gorm:"type:uuid;not null;index:idx_rentals_gpu_status"`
	RenterID     string              `gorm:"not null;index:idx_rentals_renter"`
	OwnerID      string              `gorm:"not null;index:idx_rentals_owner"`
	Status       domain.RentalStatus `gorm:"not null;index:idx_rentals_gpu_status;index:idx_rentals_status_expires"`
	PricePerHour decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Task         string
	StatusReason string
	StartTime    *time.Time
	EndTime      *time.Time
	ExpiresAt    time.Time `gorm:"index:idx_rentals_status_expires"`
	CreatedAt    time.Time `gorm:"index:idx_rentals_created_at"`
	UpdatedAt    time.Time
}

func (RentalModel) TableName() string {
	return "rentals"
}
