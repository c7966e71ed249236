package setup

import (
	"github.com/coreshare/rental-service/internal/config"
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/kafka"
	"github.com/coreshare/rental-service/internal/infrastructure/logger"
	"github.com/coreshare/rental-service/internal/infrastructure/metrics"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config         *config.RentalConfig
	DB             *gorm.DB
	Publisher      kafka.RentalPublisher
	CallbackLogger logger.CallbackLogger
	Metrics        *metrics.RentalMetrics
	Repositories   *Repositories
}

type Repositories struct {
	RentalRepo  domain.RentalRepository
	PaymentRepo domain.PaymentRepository
	StatsRepo   domain.StatsRepository
	GpuRepo     domain.GpuRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	repos := &Repositories{
		RentalRepo:  repository.NewDefaultRentalRepository(db),
		PaymentRepo: repository.NewDefaultPaymentRepository(db),
		StatsRepo:   repository.NewDefaultStatsRepository(db),
		GpuRepo:     repository.NewDefaultGpuRepository(db),
	}

	return &Dependencies{
		Config:         cfg,
		DB:             db,
		Publisher:      initRentalPublisher(cfg),
		CallbackLogger: logger.NewPGCallbackLogger(db),
		Metrics:        metrics.NewRentalMetrics(),
		Repositories:   repos,
	}, nil
}

func initRentalPublisher(cfg *config.RentalConfig) kafka.RentalPublisher {
	if !cfg.Kafka.Enabled {
		return kafka.NoopPublisher{}
	}
	return kafka.NewDefaultKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}
