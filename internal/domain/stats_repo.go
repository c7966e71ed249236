package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type StatsRepository interface {
	WithTx(tx *gorm.DB) StatsRepository

	// GetUserStats reads the cached row; a user with no settlements yet gets
	// zero totals, not an error.
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)

	// RecomputeUserStats folds the user's PaymentRecords with exact decimal
	// addition and upserts the cache row with the result. Called inside the
	// settlement transaction for both parties, and standalone for repair.
	RecomputeUserStats(ctx context.Context, userID string) (*UserStats, error)

	// MonthlyBreakdown folds PaymentRecords into per-calendar-month
	// spent/income rows over [from, to).
	MonthlyBreakdown(ctx context.Context, userID string, from, to time.Time) ([]*MonthlyStat, error)
}
