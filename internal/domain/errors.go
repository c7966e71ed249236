package domain

import "errors"

var (
	ErrInvalidTransition    = errors.New("invalid rental status transition")
	ErrInvalidPaymentEvent  = errors.New("invalid payment event")
	ErrUnknownRental        = errors.New("unknown rental")
	ErrGpuUnavailable       = errors.New("gpu unavailable")
	ErrGpuNotFound          = errors.New("gpu not found")
	ErrDuplicateTransaction = errors.New("transaction already applied")
)
