package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Outcome values recorded per delivery.
const (
	OutcomeSettled       = "settled"
	OutcomeDuplicate     = "duplicate"
	OutcomeDeclined      = "declined"
	OutcomeUnknownRental = "unknown_rental"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

// CallbackLog is the append-only operator audit trail of every provider
// delivery, including the rejected ones. It lives outside the settlement
// transaction and is written best effort.
type CallbackLog struct {
	ID            uint   `gorm:"primaryKey"`
	TransactionID string `gorm:"index"`
	RentalID      string `gorm:"index"`
	Success       bool
	Amount        string
	PhoneNumber   string
	Outcome       string
	RawPayload    string
	ReceivedAt    time.Time
}

func (CallbackLog) TableName() string {
	return "callback_logs"
}

type CallbackLogger interface {
	LogCallback(ctx context.Context, entry CallbackLog) error
}

type PGCallbackLogger struct {
	db *gorm.DB
}

func NewPGCallbackLogger(db *gorm.DB) *PGCallbackLogger {
	return &PGCallbackLogger{db: db}
}

func (l *PGCallbackLogger) LogCallback(ctx context.Context, entry CallbackLog) error {
	return l.db.WithContext(ctx).Create(&entry).Error
}
