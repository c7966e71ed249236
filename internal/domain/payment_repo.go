package domain

import (
	"context"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	// CreatePaymentRecord inserts the settlement fact. A unique-index hit on
	// TransactionID comes back as ErrDuplicateTransaction.
	CreatePaymentRecord(ctx context.Context, record *PaymentRecord) error

	// GetByTransactionID returns (nil, nil) when no record exists for the id.
	GetByTransactionID(ctx context.Context, transactionID string) (*PaymentRecord, error)
	ListByRentalID(ctx context.Context, rentalID string) ([]*PaymentRecord, error)

	// ListByUserID returns the newest records where the user is renter or
	// owner, for the recent-transactions panel.
	ListByUserID(ctx context.Context, userID string, limit int) ([]*PaymentRecord, error)
}
