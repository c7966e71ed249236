package usecase

import (
	"context"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	statsdto "github.com/coreshare/rental-service/internal/usecase/dto/stats"
)

type StatsUsecase interface {
	GetUserStats(ctx context.Context, userID string) (*statsdto.UserStatsOutput, error)
	GetMonthlyBreakdown(ctx context.Context, userID string, from, to time.Time) (*statsdto.MonthlyBreakdownOutput, error)
	RebuildUserStats(ctx context.Context, userID string) (*domain.UserStats, error)
}

type DefaultStatsUsecase struct {
	statsRepo  domain.StatsRepository
	rentalRepo domain.RentalRepository
}

func NewDefaultStatsUsecase(statsRepo domain.StatsRepository, rentalRepo domain.RentalRepository) *DefaultStatsUsecase {
	return &DefaultStatsUsecase{statsRepo: statsRepo, rentalRepo: rentalRepo}
}

func (uc *DefaultStatsUsecase) GetUserStats(ctx context.Context, userID string) (*statsdto.UserStatsOutput, error) {
	stats, err := uc.statsRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	usage, err := uc.rentalRepo.GetRentalUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &statsdto.UserStatsOutput{
		UserID:       userID,
		TotalSpent:   stats.TotalSpent,
		TotalIncome:  stats.TotalIncome,
		TotalRentals: usage.TotalRentals,
		TotalHours:   usage.TotalHours,
	}, nil
}

func (uc *DefaultStatsUsecase) GetMonthlyBreakdown(ctx context.Context, userID string, from, to time.Time) (*statsdto.MonthlyBreakdownOutput, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(-1, 0, 0)
	}

	months, err := uc.statsRepo.MonthlyBreakdown(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &statsdto.MonthlyBreakdownOutput{
		UserID: userID,
		Months: months,
	}, nil
}

// RebuildUserStats re-derives the cached totals from the payment log. The
// log is the source of truth, so this repairs any drift in the cache row.
func (uc *DefaultStatsUsecase) RebuildUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	return uc.statsRepo.RecomputeUserStats(ctx, userID)
}
