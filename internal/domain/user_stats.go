package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserStats is a derived cache over PaymentRecords. On any disagreement the
// PaymentRecord fold wins; RecomputeUserStats rewrites the row from it.
type UserStats struct {
	UserID      string
	TotalSpent  decimal.Decimal
	TotalIncome decimal.Decimal
	UpdatedAt   time.Time
}

func NewUserStats(userID string) *UserStats {
	return &UserStats{
		UserID:      userID,
		TotalSpent:  decimal.Zero,
		TotalIncome: decimal.Zero,
	}
}

// MonthlyStat is one row of the per-period dashboard breakdown.
type MonthlyStat struct {
	Month  string // "2026-08"
	Spent  decimal.Decimal
	Income decimal.Decimal
}

// RentalUsage aggregates finished sessions for one renter.
type RentalUsage struct {
	RenterID     string
	TotalRentals int64
	TotalHours   decimal.Decimal
}
