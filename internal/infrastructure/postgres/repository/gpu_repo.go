package repository

import (
	"context"
	"errors"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/mappers"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultGpuRepository struct {
	DB *gorm.DB
}

func NewDefaultGpuRepository(db *gorm.DB) *DefaultGpuRepository {
	return &DefaultGpuRepository{DB: db}
}

func (r *DefaultGpuRepository) CreateGpu(ctx context.Context, gpu *domain.GPU) error {
	gpuModel := mappers.ToGORMGpu(gpu)
	if err := r.DB.WithContext(ctx).Create(gpuModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultGpuRepository) GetGpuByID(ctx context.Context, gpuID string) (*domain.GPU, error) {
	var gpuModel models.GpuModel
	if err := r.DB.WithContext(ctx).First(&gpuModel, "id = ?", gpuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGpuNotFound
		}
		return nil, err
	}

	return mappers.ToDomainGpu(&gpuModel), nil
}

func (r *DefaultGpuRepository) ListGpus(ctx context.Context, onlyAvailable bool) ([]*domain.GPU, error) {
	query := r.DB.WithContext(ctx).Model(&models.GpuModel{})

	if onlyAvailable {
		query = query.
			Where("active = ?", true).
			Where("NOT EXISTS (SELECT 1 FROM rentals WHERE rentals.gpu_id = gpus.id AND rentals.status IN ?)",
				[]domain.RentalStatus{domain.StatusPendingPayment, domain.StatusRunning})
	}

	var gpuModels []models.GpuModel
	if err := query.Order("created_at DESC").Find(&gpuModels).Error; err != nil {
		return nil, err
	}

	gpus := make([]*domain.GPU, len(gpuModels))
	for i, gpuModel := range gpuModels {
		gpus[i] = mappers.ToDomainGpu(&gpuModel)
	}

	return gpus, nil
}

func (r *DefaultGpuRepository) SetGpuActive(ctx context.Context, gpuID string, active bool) (*domain.GPU, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.GpuModel{}).
		Where("id = ?", gpuID).
		Update("active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrGpuNotFound
	}

	return r.GetGpuByID(ctx, gpuID)
}
