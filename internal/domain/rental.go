package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	StatusRequested      RentalStatus = "requested"
	StatusPendingPayment RentalStatus = "pending_payment"
	StatusRunning        RentalStatus = "running"
	StatusCompleted      RentalStatus = "completed"
	StatusCancelled      RentalStatus = "cancelled"
	StatusFailed         RentalStatus = "failed"
)

// Reasons recorded on terminal transitions.
const (
	ReasonPaymentDeclined      = "payment_declined"
	ReasonPaymentWindowExpired = "payment_window_expired"
	ReasonRenterCancelled      = "renter_cancelled"
)

type Rental struct {
	ID           string
	GpuID        string
	RenterID     string
	OwnerID      string
	Status       RentalStatus
	PricePerHour decimal.Decimal
	Task         string
	StatusReason string
	StartTime    *time.Time
	EndTime      *time.Time
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// rentalTransitions is the single source of legal status moves. Every
// persisted transition goes through a compare-and-swap guarded by this table.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	StatusRequested:      {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusRunning, StatusCancelled, StatusFailed},
	StatusRunning:        {StatusCompleted, StatusFailed},
	StatusCompleted:      {},
	StatusCancelled:      {},
	StatusFailed:         {},
}

func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// NonTerminalStatuses returns the statuses a rental can still move out of.
func NonTerminalStatuses() []RentalStatus {
	return []RentalStatus{StatusRequested, StatusPendingPayment, StatusRunning}
}

// StatusChange describes one state machine step applied as an atomic
// compare-and-swap on the rental row. From lists the statuses the rental must
// currently be in; optional fields are written together with the new status.
type StatusChange struct {
	From         []RentalStatus
	To           RentalStatus
	StartTime    *time.Time
	EndTime      *time.Time
	StatusReason string
}

// Duration reports the billed session length for a stopped rental,
// zero until both timestamps are set.
func (r *Rental) Duration() time.Duration {
	if r.StartTime == nil || r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(*r.StartTime)
}

type RentalParty string

const (
	PartyRenter RentalParty = "renter"
	PartyOwner  RentalParty = "owner"
)
