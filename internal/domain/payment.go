package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentEvent is a provider callback after gateway normalization. The
// TransactionID is provider-assigned and is the idempotency key for the
// whole settlement path. Raw keeps the provider body as delivered, for the
// audit trail only.
type PaymentEvent struct {
	TransactionID string
	RentalID      string
	Amount        decimal.Decimal
	PhoneNumber   string
	Success       bool
	ReceivedAt    time.Time
	Raw           []byte
}

// Validate checks the event shape. Events failing here carry no financial
// meaning and must never reach the ledger. Declined events come without an
// amount, so only successful ones need a positive figure.
func (e *PaymentEvent) Validate() error {
	if e.TransactionID == "" || e.RentalID == "" {
		return ErrInvalidPaymentEvent
	}
	if e.Success && !e.Amount.IsPositive() {
		return ErrInvalidPaymentEvent
	}
	return nil
}

// PaymentRecord is the durable, append-only audit fact of one applied
// settlement. Records are never mutated or deleted; user stats are always
// re-derivable by folding them.
type PaymentRecord struct {
	ID            string
	RentalID      string
	TransactionID string
	Amount        decimal.Decimal
	PhoneNumber   string
	RenterID      string
	OwnerID       string
	AppliedAt     time.Time
}

// SettlementResult is echoed back to the provider as the delivery
// acknowledgment. Duplicate marks an idempotency short-circuit and is not
// part of the wire response.
type SettlementResult struct {
	RentalID      string
	Status        RentalStatus
	AmountApplied decimal.Decimal
	Duplicate     bool
}
