package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GPU struct {
	ID           string
	OwnerID      string
	Name         string
	VramGb       int32
	PricePerHour decimal.Decimal
	Purpose      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
