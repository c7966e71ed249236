package usecase

import (
	"context"
	"fmt"

	"github.com/coreshare/rental-service/internal/domain"
	gpudto "github.com/coreshare/rental-service/internal/usecase/dto/gpu"
	"github.com/google/uuid"
)

type GpuUsecase interface {
	RegisterGpu(ctx context.Context, input *gpudto.RegisterGpuInput) (*domain.GPU, error)
	GetGpuByID(ctx context.Context, gpuID string) (*domain.GPU, error)
	ListGpus(ctx context.Context, onlyAvailable bool) ([]*domain.GPU, error)
	SetGpuActive(ctx context.Context, gpuID string, active bool) (*domain.GPU, error)
}

type DefaultGpuUsecase struct {
	gpuRepo domain.GpuRepository
}

func NewDefaultGpuUsecase(gpuRepo domain.GpuRepository) *DefaultGpuUsecase {
	return &DefaultGpuUsecase{gpuRepo: gpuRepo}
}

func (uc *DefaultGpuUsecase) RegisterGpu(ctx context.Context, input *gpudto.RegisterGpuInput) (*domain.GPU, error) {
	if input.OwnerID == "" || input.Name == "" {
		return nil, fmt.Errorf("owner id and name are required")
	}
	if input.VramGb <= 0 {
		return nil, fmt.Errorf("vram must be positive")
	}
	if !input.PricePerHour.IsPositive() {
		return nil, fmt.Errorf("price per hour must be positive")
	}

	gpu := domain.GPU{
		ID:           uuid.New().String(),
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		VramGb:       input.VramGb,
		PricePerHour: input.PricePerHour,
		Purpose:      input.Purpose,
		Active:       true,
	}

	if err := uc.gpuRepo.CreateGpu(ctx, &gpu); err != nil {
		return nil, err
	}

	return &gpu, nil
}

func (uc *DefaultGpuUsecase) GetGpuByID(ctx context.Context, gpuID string) (*domain.GPU, error) {
	return uc.gpuRepo.GetGpuByID(ctx, gpuID)
}

func (uc *DefaultGpuUsecase) ListGpus(ctx context.Context, onlyAvailable bool) ([]*domain.GPU, error) {
	return uc.gpuRepo.ListGpus(ctx, onlyAvailable)
}

func (uc *DefaultGpuUsecase) SetGpuActive(ctx context.Context, gpuID string, active bool) (*domain.GPU, error) {
	return uc.gpuRepo.SetGpuActive(ctx, gpuID, active)
}
