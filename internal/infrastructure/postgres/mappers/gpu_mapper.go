package mappers

import (
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
)

func ToDomainGpu(model *models.GpuModel) *domain.GPU {
	return &domain.GPU{
		ID:           model.ID,
		OwnerID:      model.OwnerID,
		Name:         model.Name,
		VramGb:       model.VramGb,
		PricePerHour: model.PricePerHour,
		Purpose:      model.Purpose,
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMGpu(gpu *domain.GPU) *models.GpuModel {
	return &models.GpuModel{
		ID:           gpu.ID,
		OwnerID:      gpu.OwnerID,
		Name:         gpu.Name,
		VramGb:       gpu.VramGb,
		PricePerHour: gpu.PricePerHour,
		Purpose:      gpu.Purpose,
		Active:       gpu.Active,
		CreatedAt:    gpu.CreatedAt,
		UpdatedAt:    gpu.UpdatedAt,
	}
}
