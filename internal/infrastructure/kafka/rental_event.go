package kafka

import "time"

// RentalEvent is the fire-and-forget message published to the rental-events
// topic on settlement, decline, completion and cancellation. It is a UX push
// channel for dashboards; correctness never depends on it.
type RentalEvent struct {
	RentalID      string    `json:"rental_id"`
	GpuID         string    `json:"gpu_id"`
	RenterID      string    `json:"renter_id"`
	OwnerID       string    `json:"owner_id"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RentalPublisher is what the usecases publish through; the noop variant
// backs local runs with kafka disabled.
type RentalPublisher interface {
	PublishRental(event RentalEvent) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishRental(event RentalEvent) error { return nil }
