package statsdto

import (
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/shopspring/decimal"
)

type UserStatsOutput struct {
	UserID       string
	TotalSpent   decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalRentals int64
	TotalHours   decimal.Decimal
}

type MonthlyBreakdownOutput struct {
	UserID string
	Months []*domain.MonthlyStat
}
