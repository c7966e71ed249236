package mappers

import (
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
)

func ToDomainRental(model *models.RentalModel) *domain.Rental {
	return &domain.Rental{
		ID:           model.ID,
		GpuID:        model.GpuID,
		RenterID:     model.RenterID,
		OwnerID:      model.OwnerID,
		Status:       model.Status,
		PricePerHour: model.PricePerHour,
		Task:         model.Task,
		StatusReason: model.StatusReason,
		StartTime:    model.StartTime,
		EndTime:      model.EndTime,
		ExpiresAt:    model.ExpiresAt,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMRental(rental *domain.Rental) *models.RentalModel {
	return &models.RentalModel{
		ID:           rental.ID,
		GpuID:        rental.GpuID,
		RenterID:     rental.RenterID,
		OwnerID:      rental.OwnerID,
		Status:       rental.Status,
		PricePerHour: rental.PricePerHour,
		Task:         rental.Task,
		StatusReason: rental.StatusReason,
		StartTime:    rental.StartTime,
		EndTime:      rental.EndTime,
		ExpiresAt:    rental.ExpiresAt,
		CreatedAt:    rental.CreatedAt,
		UpdatedAt:    rental.UpdatedAt,
	}
}
