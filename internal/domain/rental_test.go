package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    RentalStatus
		to      RentalStatus
		allowed bool
	}{
		{StatusRequested, StatusPendingPayment, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusRunning, false},
		{StatusRequested, StatusFailed, false},
		{StatusRequested, StatusCompleted, false},
		{StatusPendingPayment, StatusRunning, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusPendingPayment, StatusFailed, true},
		{StatusPendingPayment, StatusCompleted, false},
		{StatusRunning, StatusCompleted, true},
		{StatusRunning, StatusFailed, true},
		{StatusRunning, StatusCancelled, false},
		{StatusRunning, StatusPendingPayment, false},
		{StatusCompleted, StatusRunning, false},
		{StatusCancelled, StatusRequested, false},
		{StatusFailed, StatusPendingPayment, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []RentalStatus{StatusCompleted, StatusCancelled, StatusFailed}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range NonTerminalStatuses() {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestRentalDuration(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	r := Rental{}
	if r.Duration() != 0 {
		t.Fatalf("duration without timestamps: got %v, want 0", r.Duration())
	}

	r.StartTime = &start
	if r.Duration() != 0 {
		t.Fatalf("duration without end time: got %v, want 0", r.Duration())
	}

	r.EndTime = &end
	if r.Duration() != 90*time.Minute {
		t.Fatalf("duration: got %v, want 90m", r.Duration())
	}
}

func TestPaymentEventValidate(t *testing.T) {
	cases := []struct {
		name  string
		event PaymentEvent
		ok    bool
	}{
		{
			name:  "settled with amount",
			event: PaymentEvent{TransactionID: "TX1", RentalID: "r1", Success: true, Amount: decimal.NewFromInt(500)},
			ok:    true,
		},
		{
			name:  "declined without amount",
			event: PaymentEvent{TransactionID: "TX2", RentalID: "r1", Success: false},
			ok:    true,
		},
		{
			name:  "missing transaction id",
			event: PaymentEvent{RentalID: "r1", Success: true, Amount: decimal.NewFromInt(500)},
			ok:    false,
		},
		{
			name:  "missing rental id",
			event: PaymentEvent{TransactionID: "TX3", Success: true, Amount: decimal.NewFromInt(500)},
			ok:    false,
		},
		{
			name:  "settled with zero amount",
			event: PaymentEvent{TransactionID: "TX4", RentalID: "r1", Success: true},
			ok:    false,
		},
		{
			name:  "settled with negative amount",
			event: PaymentEvent{TransactionID: "TX5", RentalID: "r1", Success: true, Amount: decimal.NewFromInt(-10)},
			ok:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.event.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
