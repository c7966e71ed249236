package repository

import (
	"context"
	"errors"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/mappers"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) WithTx(tx *gorm.DB) domain.PaymentRepository {
	return &DefaultPaymentRepository{DB: tx}
}

// CreatePaymentRecord relies on the unique transaction_id index: a second
// delivery of the same transaction fails the insert and surfaces as
// ErrDuplicateTransaction, which is the reconciler's idempotency signal.
func (r *DefaultPaymentRepository) CreatePaymentRecord(ctx context.Context, record *domain.PaymentRecord) error {
	recordModel := mappers.ToGORMPaymentRecord(record)
	if err := r.DB.WithContext(ctx).Create(recordModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTransaction
		}
		return err
	}
	return nil
}

func (r *DefaultPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.PaymentRecord, error) {
	var recordModel models.PaymentRecordModel
	err := r.DB.WithContext(ctx).First(&recordModel, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return mappers.ToDomainPaymentRecord(&recordModel), nil
}

func (r *DefaultPaymentRepository) ListByRentalID(ctx context.Context, rentalID string) ([]*domain.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	err := r.DB.WithContext(ctx).
		Where("rental_id = ?", rentalID).
		Order("applied_at ASC").
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.PaymentRecord, len(recordModels))
	for i, recordModel := range recordModels {
		records[i] = mappers.ToDomainPaymentRecord(&recordModel)
	}

	return records, nil
}

func (r *DefaultPaymentRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*domain.PaymentRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var recordModels []models.PaymentRecordModel
	err := r.DB.WithContext(ctx).
		Where("renter_id = ? OR owner_id = ?", userID, userID).
		Order("applied_at DESC").
		Limit(limit).
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*domain.PaymentRecord, len(recordModels))
	for i, recordModel := range recordModels {
		records[i] = mappers.ToDomainPaymentRecord(&recordModel)
	}

	return records, nil
}
