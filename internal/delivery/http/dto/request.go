package dto

import "github.com/shopspring/decimal"

type CreateRentalRequest struct {
	GpuID    string `json:"gpuId" validate:"required"`
	RenterID string `json:"renterId" validate:"required"`
	Task     string `json:"task"`
}

type CancelRentalRequest struct {
	Reason string `json:"reason"`
}

type RegisterGpuRequest struct {
	OwnerID      string          `json:"ownerId" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	VramGb       int32           `json:"vramGb" validate:"required,gt=0"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	Purpose      string          `json:"purpose"`
}

type SetGpuActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// PaymentCallbackRequest is the already-normalized event shape accepted on
// the generic callback endpoint. Success is a pointer so an omitted flag is
// rejected instead of silently read as a decline.
type PaymentCallbackRequest struct {
	TransactionID string          `json:"transactionId" validate:"required"`
	RentalID      string          `json:"rentalId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PhoneNumber   string          `json:"phoneNumber"`
	Success       *bool           `json:"success" validate:"required"`
}
