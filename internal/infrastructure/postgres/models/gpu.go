package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GpuModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	OwnerID      string `gorm:"not null;index:idx_gpus_owner"`
	Name         string `gorm:"not null"`
	VramGb       int32
	PricePerHour decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Purpose      string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (GpuModel) TableName() string {
	return "gpus"
}
