package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/kafka"
	"github.com/coreshare/rental-service/internal/infrastructure/logger"
	"github.com/coreshare/rental-service/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

type PaymentUsecase interface {
	Reconcile(ctx context.Context, event *domain.PaymentEvent) (*domain.SettlementResult, error)
	ListRentalPayments(ctx context.Context, rentalID string) ([]*domain.PaymentRecord, error)
	ListUserPayments(ctx context.Context, userID string, limit int) ([]*domain.PaymentRecord, error)
}

type DefaultPaymentUsecase struct {
	RentalRepo  domain.RentalRepository
	PaymentRepo domain.PaymentRepository
	StatsRepo   domain.StatsRepository
	GpuRepo     domain.GpuRepository
	Publisher   kafka.RentalPublisher
	CallbackLog logger.CallbackLogger
	Metrics     *metrics.RentalMetrics
	Currency    string
}

func NewDefaultPaymentUsecase(
	rentalRepo domain.RentalRepository,
	paymentRepo domain.PaymentRepository,
	statsRepo domain.StatsRepository,
	gpuRepo domain.GpuRepository,
	publisher kafka.RentalPublisher,
	callbackLog logger.CallbackLogger,
	rentalMetrics *metrics.RentalMetrics,
	currency string) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		RentalRepo:  rentalRepo,
		PaymentRepo: paymentRepo,
		StatsRepo:   statsRepo,
		GpuRepo:     gpuRepo,
		Publisher:   publisher,
		CallbackLog: callbackLog,
		Metrics:     rentalMetrics,
		Currency:    currency,
	}
}

// Reconcile applies one provider callback exactly once. Redeliveries of an
// already-applied transaction id come back with the stored result instead of
// an error, so the provider always sees success for money it sent once.
func (uc *DefaultPaymentUsecase) Reconcile(ctx context.Context, event *domain.PaymentEvent) (*domain.SettlementResult, error) {
	start := time.Now()
	slog.Info("Reconcile started", "transaction_id", event.TransactionID, "rental_id", event.RentalID)

	if err := event.Validate(); err != nil {
		uc.Metrics.RecordInvalidEvent("callback")
		uc.logCallback(ctx, event, logger.OutcomeInvalid)
		return nil, err
	}

	// Fast path: the transaction was already applied by an earlier delivery.
	existing, err := uc.PaymentRepo.GetByTransactionID(ctx, event.TransactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.logCallback(ctx, event, logger.OutcomeDuplicate)
		uc.Metrics.RecordDuplicateCallback(uc.Currency)
		uc.Metrics.RecordCallbackDuration("duplicate", time.Since(start).Seconds())
		return uc.storedResult(ctx, existing)
	}

	rental, err := uc.RentalRepo.GetRentalByID(ctx, event.RentalID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRental) {
			uc.Metrics.RecordUnknownRental(uc.Currency)
			uc.logCallback(ctx, event, logger.OutcomeUnknownRental)
		}
		return nil, err
	}

	if !event.Success {
		return uc.applyDeclined(ctx, rental, event, start)
	}

	return uc.applySettlement(ctx, rental, event, start)
}

// applyDeclined fails the rental without touching the ledger. Declined
// attempts are not money movements, so no PaymentRecord is written.
func (uc *DefaultPaymentUsecase) applyDeclined(ctx context.Context, rental *domain.Rental, event *domain.PaymentEvent, start time.Time) (*domain.SettlementResult, error) {
	updated, err := uc.RentalRepo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From:         []domain.RentalStatus{domain.StatusPendingPayment},
		To:           domain.StatusFailed,
		StatusReason: domain.ReasonPaymentDeclined,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) && updated != nil {
			// Late or repeated decline: a settled or already-terminal rental
			// stays as it is.
			slog.Warn("declined callback ignored",
				"rental_id", rental.ID, "status", updated.Status, "transaction_id", event.TransactionID)
			uc.logCallback(ctx, event, logger.OutcomeDeclined)
			uc.Metrics.RecordCallbackDuration("declined", time.Since(start).Seconds())
			return &domain.SettlementResult{
				RentalID:      updated.ID,
				Status:        updated.Status,
				AmountApplied: decimal.Zero,
			}, nil
		}
		return nil, err
	}

	uc.Metrics.RecordDeclinedPayment(uc.Currency)
	uc.Metrics.RecordRentalFailed(domain.ReasonPaymentDeclined)
	uc.logCallback(ctx, event, logger.OutcomeDeclined)

	go func(ev kafka.RentalEvent) {
		if err := uc.Publisher.PublishRental(ev); err != nil {
			slog.Error("failed to publish rental decline", "rental_id", ev.RentalID, "error", err.Error())
		}
	}(kafka.RentalEvent{
		RentalID:      updated.ID,
		GpuID:         updated.GpuID,
		RenterID:      updated.RenterID,
		OwnerID:       updated.OwnerID,
		Status:        string(updated.Status),
		Currency:      uc.Currency,
		TransactionID: event.TransactionID,
		Reason:        domain.ReasonPaymentDeclined,
		OccurredAt:    time.Now(),
	})

	uc.Metrics.RecordCallbackDuration("declined", time.Since(start).Seconds())
	slog.Info("Reconcile finished", "outcome", "declined", "total_elapsed", time.Since(start))

	return &domain.SettlementResult{
		RentalID:      updated.ID,
		Status:        updated.Status,
		AmountApplied: decimal.Zero,
	}, nil
}

// applySettlement runs the money step. PaymentRecord insert, rental
// activation and both stats rows commit together or not at all; the unique
// transaction id index is what serializes racing deliveries.
func (uc *DefaultPaymentUsecase) applySettlement(ctx context.Context, rental *domain.Rental, event *domain.PaymentEvent, start time.Time) (*domain.SettlementResult, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	tx, err := uc.RentalRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin settlement transaction: %w", err)
	}

	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
				slog.Error("failed to rollback settlement", "error", rollbackErr)
			}
		}
	}()

	txRentals := uc.RentalRepo.WithTx(tx)
	txPayments := uc.PaymentRepo.WithTx(tx)
	txStats := uc.StatsRepo.WithTx(tx)

	record := &domain.PaymentRecord{
		ID:            idGenerator(),
		RentalID:      rental.ID,
		TransactionID: event.TransactionID,
		Amount:        event.Amount,
		PhoneNumber:   event.PhoneNumber,
		RenterID:      rental.RenterID,
		OwnerID:       rental.OwnerID,
		AppliedAt:     time.Now(),
	}

	if err := txPayments.CreatePaymentRecord(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransaction) {
			// Lost the insert race: another delivery applied this transaction
			// between our fast-path check and now. Serve the stored outcome.
			slog.Info("Reconcile hit existing transaction", "transaction_id", event.TransactionID)
			uc.logCallback(ctx, event, logger.OutcomeDuplicate)
			uc.Metrics.RecordDuplicateCallback(uc.Currency)
			uc.Metrics.RecordCallbackDuration("duplicate", time.Since(start).Seconds())
			return uc.storedResultByTransactionID(ctx, event.TransactionID)
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	now := time.Now()
	activated, err := txRentals.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From:      []domain.RentalStatus{domain.StatusPendingPayment},
		To:        domain.StatusRunning,
		StartTime: &now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			uc.logCallback(ctx, event, logger.OutcomeError)
			if activated != nil {
				slog.Warn("settlement rejected: rental not awaiting payment",
					"rental_id", rental.ID, "status", activated.Status, "transaction_id", event.TransactionID)
			}
		}
		return nil, err
	}

	for _, userID := range []string{rental.RenterID, rental.OwnerID} {
		if _, err := txStats.RecomputeUserStats(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to refresh stats for %s: %w", userID, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	committed = true

	amount, _ := record.Amount.Float64()
	uc.Metrics.RecordSettlement(uc.Currency, amount)
	if gpu, gerr := uc.GpuRepo.GetGpuByID(ctx, rental.GpuID); gerr == nil {
		uc.Metrics.RecordRentalActivated(gpu.Purpose)
	}
	uc.logCallback(ctx, event, logger.OutcomeSettled)

	go func(ev kafka.RentalEvent) {
		if err := uc.Publisher.PublishRental(ev); err != nil {
			slog.Error("failed to publish rental activation", "rental_id", ev.RentalID, "error", err.Error())
		}
	}(kafka.RentalEvent{
		RentalID:      activated.ID,
		GpuID:         activated.GpuID,
		RenterID:      activated.RenterID,
		OwnerID:       activated.OwnerID,
		Status:        string(activated.Status),
		Amount:        record.Amount.String(),
		Currency:      uc.Currency,
		TransactionID: record.TransactionID,
		OccurredAt:    time.Now(),
	})

	uc.Metrics.RecordCallbackDuration("settled", time.Since(start).Seconds())
	slog.Info("Reconcile finished", "outcome", "settled", "rental_id", rental.ID, "total_elapsed", time.Since(start))

	return &domain.SettlementResult{
		RentalID:      activated.ID,
		Status:        activated.Status,
		AmountApplied: record.Amount,
	}, nil
}

func (uc *DefaultPaymentUsecase) ListRentalPayments(ctx context.Context, rentalID string) ([]*domain.PaymentRecord, error) {
	return uc.PaymentRepo.ListByRentalID(ctx, rentalID)
}

func (uc *DefaultPaymentUsecase) ListUserPayments(ctx context.Context, userID string, limit int) ([]*domain.PaymentRecord, error) {
	return uc.PaymentRepo.ListByUserID(ctx, userID, limit)
}

// storedResult rebuilds the acknowledgment for an already-applied
// transaction from its durable record.
func (uc *DefaultPaymentUsecase) storedResult(ctx context.Context, record *domain.PaymentRecord) (*domain.SettlementResult, error) {
	rental, err := uc.RentalRepo.GetRentalByID(ctx, record.RentalID)
	if err != nil {
		return nil, err
	}
	return &domain.SettlementResult{
		RentalID:      record.RentalID,
		Status:        rental.Status,
		AmountApplied: record.Amount,
		Duplicate:     true,
	}, nil
}

func (uc *DefaultPaymentUsecase) storedResultByTransactionID(ctx context.Context, transactionID string) (*domain.SettlementResult, error) {
	// Reads run on the base connection: the losing transaction is aborted and
	// unwound by the deferred rollback.
	record, err := uc.PaymentRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("transaction %s vanished after duplicate hit", transactionID)
	}
	return uc.storedResult(ctx, record)
}

func (uc *DefaultPaymentUsecase) logCallback(ctx context.Context, event *domain.PaymentEvent, outcome string) {
	raw := event.Raw
	if len(raw) == 0 {
		raw, _ = json.Marshal(event)
	}

	entry := logger.CallbackLog{
		TransactionID: event.TransactionID,
		RentalID:      event.RentalID,
		Success:       event.Success,
		Amount:        event.Amount.String(),
		PhoneNumber:   event.PhoneNumber,
		Outcome:       outcome,
		RawPayload:    string(raw),
		ReceivedAt:    time.Now(),
	}
	if err := uc.CallbackLog.LogCallback(ctx, entry); err != nil {
		slog.Error("failed to log payment callback", "transaction_id", event.TransactionID, "error", err.Error())
	}
}
