package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecordModel rows are append-only: created by the reconciler inside
// the settlement transaction, never updated, never deleted. The unique index
// on TransactionID is the idempotency serialization point.
type PaymentRecordModel struct {
	ID            string          `gorm:"primaryKey"`
	RentalID      string          `gorm:"type:uuid;not null;index:idx_payments_rental"`
	TransactionID string          `gorm:"not null;uniqueIndex:idx_payments_txid"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PhoneNumber   string
	RenterID      string    `gorm:"not null;index:idx_payments_renter"`
	OwnerID       string    `gorm:"not null;index:idx_payments_owner"`
	AppliedAt     time.Time `gorm:"not null"`
}

func (PaymentRecordModel) TableName() string {
	return "payment_records"
}
