package domain

import "context"

type GpuRepository interface {
	CreateGpu(ctx context.Context, gpu *GPU) error
	GetGpuByID(ctx context.Context, gpuID string) (*GPU, error)

	// ListGpus returns listings, optionally narrowed to rentable ones
	// (active and not held by a pending_payment/running rental).
	ListGpus(ctx context.Context, onlyAvailable bool) ([]*GPU, error)

	SetGpuActive(ctx context.Context, gpuID string, active bool) (*GPU, error)
}
