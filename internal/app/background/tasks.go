package background

import (
	"context"
	"log"
	"time"

	"github.com/coreshare/rental-service/internal/usecase"
)

type BackgroundTasks struct {
	RentalUsecase usecase.RentalUsecase
	SweepInterval time.Duration
}

func NewBackgroundTasks(rentalUC usecase.RentalUsecase, sweepInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		RentalUsecase: rentalUC,
		SweepInterval: sweepInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startExpiredRentalSweep(ctx)
}

func (bt *BackgroundTasks) startExpiredRentalSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := bt.RentalUsecase.CancelExpiredRentals(ctx); err != nil {
				log.Printf("Expired rental sweep error: %v\n", err)
			}
		}
	}
}
