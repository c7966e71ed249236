package dto

import (
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RentalResponse struct {
	ID            string          `json:"id"`
	GpuID         string          `json:"gpuId"`
	RenterID      string          `json:"renterId"`
	OwnerID       string          `json:"ownerId"`
	Status        string          `json:"status"`
	PricePerHour  decimal.Decimal `json:"pricePerHour"`
	Task          string          `json:"task,omitempty"`
	StatusReason  string          `json:"statusReason,omitempty"`
	StartTime     *time.Time      `json:"startTime,omitempty"`
	EndTime       *time.Time      `json:"endTime,omitempty"`
	DurationHours decimal.Decimal `json:"durationHours"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func FromDomainRental(rental *domain.Rental) RentalResponse {
	return RentalResponse{
		ID:            rental.ID,
		GpuID:         rental.GpuID,
		RenterID:      rental.RenterID,
		OwnerID:       rental.OwnerID,
		Status:        string(rental.Status),
		PricePerHour:  rental.PricePerHour,
		Task:          rental.Task,
		StatusReason:  rental.StatusReason,
		StartTime:     rental.StartTime,
		EndTime:       rental.EndTime,
		DurationHours: decimal.NewFromFloat(rental.Duration().Hours()).Round(2),
		ExpiresAt:     rental.ExpiresAt,
		CreatedAt:     rental.CreatedAt,
		UpdatedAt:     rental.UpdatedAt,
	}
}

type GpuResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Name         string          `json:"name"`
	VramGb       int32           `json:"vramGb"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Purpose      string          `json:"purpose,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func FromDomainGpu(gpu *domain.GPU) GpuResponse {
	return GpuResponse{
		ID:           gpu.ID,
		OwnerID:      gpu.OwnerID,
		Name:         gpu.Name,
		VramGb:       gpu.VramGb,
		PricePerHour: gpu.PricePerHour,
		Purpose:      gpu.Purpose,
		Active:       gpu.Active,
		CreatedAt:    gpu.CreatedAt,
	}
}

type PaymentRecordResponse struct {
	ID            string          `json:"id"`
	RentalID      string          `json:"rentalId"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PhoneNumber   string          `json:"phoneNumber,omitempty"`
	RenterID      string          `json:"renterId"`
	OwnerID       string          `json:"ownerId"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

func FromDomainPaymentRecord(record *domain.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:            record.ID,
		RentalID:      record.RentalID,
		TransactionID: record.TransactionID,
		Amount:        record.Amount,
		PhoneNumber:   record.PhoneNumber,
		RenterID:      record.RenterID,
		OwnerID:       record.OwnerID,
		AppliedAt:     record.AppliedAt,
	}
}

type SettlementResponse struct {
	RentalID      string          `json:"rentalId"`
	Status        string          `json:"status"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
}

func FromDomainSettlement(result *domain.SettlementResult) SettlementResponse {
	return SettlementResponse{
		RentalID:      result.RentalID,
		Status:        string(result.Status),
		AmountApplied: result.AmountApplied,
	}
}

type UserStatsResponse struct {
	UserID       string          `json:"userId"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalRentals int64           `json:"totalRentals"`
	TotalHours   decimal.Decimal `json:"totalHours"`
}

type MonthlyStatResponse struct {
	Month  string          `json:"month"`
	Spent  decimal.Decimal `json:"spent"`
	Income decimal.Decimal `json:"income"`
}

type PaginationResponse struct {
	CurrentPage  int32 `json:"currentPage"`
	TotalPages   int32 `json:"totalPages"`
	TotalItems   int32 `json:"totalItems"`
	ItemsPerPage int32 `json:"itemsPerPage"`
}

type ListRentalsResponse struct {
	Rentals    []RentalResponse   `json:"rentals"`
	Pagination PaginationResponse `json:"pagination"`
}
