package mappers

import (
	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres/models"
)

func ToDomainPaymentRecord(model *models.PaymentRecordModel) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		ID:            model.ID,
		RentalID:      model.RentalID,
		TransactionID: model.TransactionID,
		Amount:        model.Amount,
		PhoneNumber:   model.PhoneNumber,
		RenterID:      model.RenterID,
		OwnerID:       model.OwnerID,
		AppliedAt:     model.AppliedAt,
	}
}

func ToGORMPaymentRecord(record *domain.PaymentRecord) *models.PaymentRecordModel {
	return &models.PaymentRecordModel{
		ID:            record.ID,
		RentalID:      record.RentalID,
		TransactionID: record.TransactionID,
		Amount:        record.Amount,
		PhoneNumber:   record.PhoneNumber,
		RenterID:      record.RenterID,
		OwnerID:       record.OwnerID,
		AppliedAt:     record.AppliedAt,
	}
}
