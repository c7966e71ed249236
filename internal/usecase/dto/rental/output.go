package rentaldto

import "github.com/coreshare/rental-service/internal/domain"

type RentalOutput struct {
	Rental domain.Rental
	Gpu    domain.GPU
}

type ListRentalsOutput struct {
	Rentals    []*domain.Rental
	Pagination Pagination
}

type Pagination struct {
	CurrentPage  int32
	TotalPages   int32
	TotalItems   int32
	ItemsPerPage int32
}
