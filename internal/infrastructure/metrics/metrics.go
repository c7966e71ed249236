package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RentalMetrics holds all rental and payment counters
type RentalMetrics struct {
	// Rental lifecycle
	RentalsCreatedTotal   prometheus.CounterVec
	RentalsCompletedTotal prometheus.CounterVec
	RentalsCancelledTotal prometheus.CounterVec
	RentalsFailedTotal    prometheus.CounterVec
	RentalsActiveCount    prometheus.GaugeVec

	// Payment reconciliation
	SettlementsAppliedTotal  prometheus.CounterVec
	SettlementsAmountTotal   prometheus.CounterVec
	DuplicateCallbacksTotal  prometheus.CounterVec
	DeclinedPaymentsTotal    prometheus.CounterVec
	UnknownRentalEventsTotal prometheus.CounterVec
	InvalidEventsTotal       prometheus.CounterVec

	// Processing time
	CallbackDuration prometheus.HistogramVec

	// Errors
	RentalErrorsTotal prometheus.CounterVec
}

// NewRentalMetrics registers and returns the metrics set
func NewRentalMetrics() *RentalMetrics {
	return &RentalMetrics{
		RentalsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentals_created_total",
				Help: "Total number of rental requests created",
			},
			[]string{"gpu_purpose"},
		),

		RentalsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentals_completed_total",
				Help: "Total number of rentals stopped normally",
			},
			[]string{"gpu_purpose"},
		),

		RentalsCancelledTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentals_cancelled_total",
				Help: "Total number of rentals cancelled before activation",
			},
			[]string{"reason"},
		),

		RentalsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rentals_failed_total",
				Help: "Total number of rentals that ended in failure",
			},
			[]string{"reason"},
		),

		RentalsActiveCount: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rentals_active_count",
				Help: "Current number of running rentals",
			},
			[]string{"gpu_purpose"},
		),

		SettlementsAppliedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlements_applied_total",
				Help: "Total number of payment callbacks settled",
			},
			[]string{"currency"},
		),

		SettlementsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settlements_amount_total",
				Help: "Total amount settled across all rentals",
			},
			[]string{"currency"},
		),

		DuplicateCallbacksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "duplicate_callbacks_total",
				Help: "Total number of callbacks skipped as already-seen transactions",
			},
			[]string{"currency"},
		),

		DeclinedPaymentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "declined_payments_total",
				Help: "Total number of declined payment callbacks",
			},
			[]string{"currency"},
		),

		UnknownRentalEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unknown_rental_events_total",
				Help: "Total number of callbacks referencing no known rental",
			},
			[]string{"currency"},
		),

		InvalidEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invalid_payment_events_total",
				Help: "Total number of malformed payment callbacks rejected",
			},
			[]string{"source"},
		),

		CallbackDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_callback_duration_seconds",
				Help:    "Time spent reconciling a payment callback",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms, 10ms, 20ms...
			},
			[]string{"outcome"},
		),

		RentalErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rental_errors_total",
				Help: "Total number of errors while handling rentals",
			},
			[]string{"error_type"},
		),
	}
}

// RecordRentalCreated records a fresh rental request
func (m *RentalMetrics) RecordRentalCreated(gpuPurpose string) {
	m.RentalsCreatedTotal.WithLabelValues(gpuPurpose).Inc()
}

// RecordRentalActivated moves a rental into the running gauge
func (m *RentalMetrics) RecordRentalActivated(gpuPurpose string) {
	m.RentalsActiveCount.WithLabelValues(gpuPurpose).Inc()
}

// RecordRentalCompleted records a normal stop
func (m *RentalMetrics) RecordRentalCompleted(gpuPurpose string) {
	m.RentalsCompletedTotal.WithLabelValues(gpuPurpose).Inc()
	m.RentalsActiveCount.WithLabelValues(gpuPurpose).Dec()
}

// RecordRentalCancelled records a pre-activation cancellation
func (m *RentalMetrics) RecordRentalCancelled(reason string) {
	m.RentalsCancelledTotal.WithLabelValues(reason).Inc()
}

// RecordRentalFailed records a failed rental
func (m *RentalMetrics) RecordRentalFailed(reason string) {
	m.RentalsFailedTotal.WithLabelValues(reason).Inc()
}

// RecordSettlement records a successfully applied payment
func (m *RentalMetrics) RecordSettlement(currency string, amount float64) {
	m.SettlementsAppliedTotal.WithLabelValues(currency).Inc()
	m.SettlementsAmountTotal.WithLabelValues(currency).Add(amount)
}

// RecordDuplicateCallback records a replayed transaction id
func (m *RentalMetrics) RecordDuplicateCallback(currency string) {
	m.DuplicateCallbacksTotal.WithLabelValues(currency).Inc()
}

// RecordDeclinedPayment records a declined callback
func (m *RentalMetrics) RecordDeclinedPayment(currency string) {
	m.DeclinedPaymentsTotal.WithLabelValues(currency).Inc()
}

// RecordUnknownRental records a callback for a missing rental
func (m *RentalMetrics) RecordUnknownRental(currency string) {
	m.UnknownRentalEventsTotal.WithLabelValues(currency).Inc()
}

// RecordInvalidEvent records a malformed callback
func (m *RentalMetrics) RecordInvalidEvent(source string) {
	m.InvalidEventsTotal.WithLabelValues(source).Inc()
}

// RecordCallbackDuration records reconciliation time by outcome
func (m *RentalMetrics) RecordCallbackDuration(outcome string, durationSeconds float64) {
	m.CallbackDuration.WithLabelValues(outcome).Observe(durationSeconds)
}

// RecordError records a handling error
func (m *RentalMetrics) RecordError(errorType string) {
	m.RentalErrorsTotal.WithLabelValues(errorType).Inc()
}
