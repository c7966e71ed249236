package setup

import (
	"github.com/coreshare/rental-service/internal/usecase"
)

type UseCases struct {
	RentalUsecase  usecase.RentalUsecase
	PaymentUsecase usecase.PaymentUsecase
	StatsUsecase   usecase.StatsUsecase
	GpuUsecase     usecase.GpuUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	rentalUsecase := usecase.NewDefaultRentalUsecase(
		deps.Repositories.RentalRepo,
		deps.Repositories.GpuRepo,
		deps.Publisher,
		deps.Metrics,
		deps.Config.Payment.Window,
	)

	paymentUsecase := usecase.NewDefaultPaymentUsecase(
		deps.Repositories.RentalRepo,
		deps.Repositories.PaymentRepo,
		deps.Repositories.StatsRepo,
		deps.Repositories.GpuRepo,
		deps.Publisher,
		deps.CallbackLogger,
		deps.Metrics,
		deps.Config.Payment.Currency,
	)

	statsUsecase := usecase.NewDefaultStatsUsecase(
		deps.Repositories.StatsRepo,
		deps.Repositories.RentalRepo,
	)

	gpuUsecase := usecase.NewDefaultGpuUsecase(deps.Repositories.GpuRepo)

	return &UseCases{
		RentalUsecase:  rentalUsecase,
		PaymentUsecase: paymentUsecase,
		StatsUsecase:   statsUsecase,
		GpuUsecase:     gpuUsecase,
	}, nil
}
