package rentaldto

import "github.com/coreshare/rental-service/internal/domain"

type CreateRentalInput struct {
	GpuID    string
	RenterID string
	Task     string
}

type ListRentalsInput struct {
	UserID   string
	Party    domain.RentalParty
	Statuses []domain.RentalStatus
	Page     int64
	Limit    int64
}
