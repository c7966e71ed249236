package mappers

import (
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
)

func ToDomainUserStats(model *models.UserStatsModel) *domain.UserStats {
	return &domain.UserStats{
		UserID:      model.UserID,
		TotalSpent:  model.TotalSpent,
		TotalIncome: model.TotalIncome,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMUserStats(stats *domain.UserStats) *models.UserStatsModel {
	return &models.UserStatsModel{
		UserID:      stats.UserID,
		TotalSpent:  stats.TotalSpent,
		TotalIncome: stats.TotalIncome,
		UpdatedAt:   stats.UpdatedAt,
	}
}
