package postgres

import (
	"log"

	"github.com/coreshare/rental-service/internal/config"
	"github.com/coreshare/rental-service/internal/infrastructure/logger"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RentalConfig) *gorm.DB {
	dsn := cfg.RentalDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate db: %v\n", err.Error())
	}

	return db
}

// AutoMigrate keeps the schema in sync with the models. The SQL migrations
// under migrations/ remain the authoritative history for deployed databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GpuModel{},
		&models.RentalModel{},
		&models.PaymentRecordModel{},
		&models.UserStatsModel{},
		&logger.CallbackLog{},
	)
}
