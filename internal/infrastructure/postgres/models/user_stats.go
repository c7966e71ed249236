package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserStatsModel struct {
	UserID      string          `gorm:"primaryKey"`
	TotalSpent  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalIncome decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	UpdatedAt   time.Time
}

func (UserStatsModel) TableName() string {
	return "user_stats"
}
