package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/mappers"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultStatsRepository struct {
	DB *gorm.DB
}

func NewDefaultStatsRepository(db *gorm.DB) *DefaultStatsRepository {
	return &DefaultStatsRepository{DB: db}
}

func (r *DefaultStatsRepository) WithTx(tx *gorm.DB) domain.StatsRepository {
	return &DefaultStatsRepository{DB: tx}
}

func (r *DefaultStatsRepository) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	var statsModel models.UserStatsModel
	err := r.DB.WithContext(ctx).First(&statsModel, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewUserStats(userID), nil
		}
		return nil, err
	}

	return mappers.ToDomainUserStats(&statsModel), nil
}

// RecomputeUserStats folds the user's PaymentRecords in Go with decimal
// addition and writes the absolute totals. Summing in the application keeps
// the cache bit-for-bit equal to the fold the dashboards are defined by,
// with no numeric coercion on the way.
func (r *DefaultStatsRepository) RecomputeUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	spent, err := r.sumAmounts(ctx, "renter_id = ?", userID)
	if err != nil {
		return nil, err
	}
	income, err := r.sumAmounts(ctx, "owner_id = ?", userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.UserStats{
		UserID:      userID,
		TotalSpent:  spent,
		TotalIncome: income,
		UpdatedAt:   time.Now(),
	}

	statsModel := mappers.ToGORMUserStats(stats)
	err = r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_spent", "total_income", "updated_at"}),
		}).
		Create(statsModel).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *DefaultStatsRepository) sumAmounts(ctx context.Context, condition string, userID string) (decimal.Decimal, error) {
	var recordModels []models.PaymentRecordModel
	err := r.DB.WithContext(ctx).
		Where(condition, userID).
		Find(&recordModels).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, recordModel := range recordModels {
		total = total.Add(recordModel.Amount)
	}
	return total, nil
}

func (r *DefaultStatsRepository) MonthlyBreakdown(ctx context.Context, userID string, from, to time.Time) ([]*domain.MonthlyStat, error) {
	var recordModels []models.PaymentRecordModel
	err := r.DB.WithContext(ctx).
		Where("renter_id = ? OR owner_id = ?", userID, userID).
		Where("applied_at >= ? AND applied_at < ?", from, to).
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*domain.MonthlyStat)
	for _, recordModel := range recordModels {
		month := recordModel.AppliedAt.Format("2006-01")
		stat, ok := byMonth[month]
		if !ok {
			stat = &domain.MonthlyStat{
				Month:  month,
				Spent:  decimal.Zero,
				Income: decimal.Zero,
			}
			byMonth[month] = stat
		}
		if recordModel.RenterID == userID {
			stat.Spent = stat.Spent.Add(recordModel.Amount)
		}
		if recordModel.OwnerID == userID {
			stat.Income = stat.Income.Add(recordModel.Amount)
		}
	}

	monthly := make([]*domain.MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		monthly = append(monthly, stat)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	return monthly, nil
}
