package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/coreshare/rental-service/internal/domain"
	"github.com/coreshare/rental-service/internal/infrastructure/postgres"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func insertRental(t *testing.T, repo *DefaultRentalRepository, gpuID string, status domain.RentalStatus, expiresAt time.Time) *domain.Rental {
	t.Helper()

	rental := &domain.Rental{
		ID:           uuid.New().String(),
		GpuID:        gpuID,
		RenterID:     "renter-1",
		OwnerID:      "owner-1",
		Status:       status,
		PricePerHour: decimal.NewFromInt(250),
		ExpiresAt:    expiresAt,
	}
	if err := repo.CreateRental(context.Background(), rental); err != nil {
		t.Fatalf("insert rental: %v", err)
	}
	return rental
}

func TestApplyStatusChange_CompareAndSwap(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	rental := insertRental(t, repo, uuid.New().String(), domain.StatusRequested, time.Now().Add(time.Hour))

	updated, err := repo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From: []domain.RentalStatus{domain.StatusRequested},
		To:   domain.StatusPendingPayment,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.Status != domain.StatusPendingPayment {
		t.Fatalf("status: got %s, want pending_payment", updated.Status)
	}

	// Second writer expecting the old status loses and gets the current row.
	current, err := repo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From: []domain.RentalStatus{domain.StatusRequested},
		To:   domain.StatusCancelled,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
	if current == nil || current.Status != domain.StatusPendingPayment {
		t.Fatalf("loser must see the current row, got %+v", current)
	}
}

func TestApplyStatusChange_WritesSessionFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	rental := insertRental(t, repo, uuid.New().String(), domain.StatusPendingPayment, time.Now().Add(time.Hour))

	start := time.Now().Truncate(time.Second)
	activated, err := repo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From:      []domain.RentalStatus{domain.StatusPendingPayment},
		To:        domain.StatusRunning,
		StartTime: &start,
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if activated.StartTime == nil || !activated.StartTime.Equal(start) {
		t.Fatalf("start time: got %v, want %v", activated.StartTime, start)
	}

	end := start.Add(45 * time.Minute)
	completed, err := repo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From:    []domain.RentalStatus{domain.StatusRunning},
		To:      domain.StatusCompleted,
		EndTime: &end,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.EndTime == nil || !completed.EndTime.Equal(end) {
		t.Fatalf("end time: got %v", completed.EndTime)
	}
	if completed.StartTime == nil || !completed.StartTime.Equal(start) {
		t.Fatal("completion must keep the start time")
	}
}

func TestApplyStatusChange_RecordsReason(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	rental := insertRental(t, repo, uuid.New().String(), domain.StatusPendingPayment, time.Now().Add(time.Hour))

	failed, err := repo.ApplyStatusChange(ctx, rental.ID, domain.StatusChange{
		From:         []domain.RentalStatus{domain.StatusPendingPayment},
		To:           domain.StatusFailed,
		StatusReason: domain.ReasonPaymentDeclined,
	})
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if failed.StatusReason != domain.ReasonPaymentDeclined {
		t.Fatalf("reason: got %q", failed.StatusReason)
	}
}

func TestApplyStatusChange_UnknownRental(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)

	_, err := repo.ApplyStatusChange(context.Background(), uuid.New().String(), domain.StatusChange{
		From: []domain.RentalStatus{domain.StatusRequested},
		To:   domain.StatusCancelled,
	})
	if !errors.Is(err, domain.ErrUnknownRental) {
		t.Fatalf("got %v, want ErrUnknownRental", err)
	}
}

func TestGpuHasActiveRental(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	heldGpu := uuid.New().String()
	freeGpu := uuid.New().String()
	insertRental(t, repo, heldGpu, domain.StatusRunning, time.Now().Add(time.Hour))
	insertRental(t, repo, freeGpu, domain.StatusCompleted, time.Now().Add(time.Hour))

	busy, err := repo.GpuHasActiveRental(ctx, heldGpu)
	if err != nil {
		t.Fatalf("busy check: %v", err)
	}
	if !busy {
		t.Fatal("running rental must hold the gpu")
	}

	free, err := repo.GpuHasActiveRental(ctx, freeGpu)
	if err != nil {
		t.Fatalf("free check: %v", err)
	}
	if free {
		t.Fatal("completed rental must not hold the gpu")
	}
}

func TestFindExpiredUnpaid(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	expiredRequested := insertRental(t, repo, uuid.New().String(), domain.StatusRequested, past)
	expiredPending := insertRental(t, repo, uuid.New().String(), domain.StatusPendingPayment, past)
	insertRental(t, repo, uuid.New().String(), domain.StatusRunning, past)
	insertRental(t, repo, uuid.New().String(), domain.StatusPendingPayment, future)

	expired, err := repo.FindExpiredUnpaid(ctx, time.Now())
	if err != nil {
		t.Fatalf("find expired: %v", err)
	}
	if len(expired) != 2 {
		t.Fatalf("expired: got %d, want 2", len(expired))
	}
	got := map[string]bool{}
	for _, rental := range expired {
		got[rental.ID] = true
	}
	if !got[expiredRequested.ID] || !got[expiredPending.ID] {
		t.Fatalf("wrong rentals swept: %v", got)
	}
}

func TestCreatePaymentRecord_DuplicateTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultPaymentRepository(db)
	ctx := context.Background()

	record := &domain.PaymentRecord{
		ID:            "pay-1",
		RentalID:      uuid.New().String(),
		TransactionID: "QH77DUP001",
		Amount:        decimal.NewFromInt(120),
		RenterID:      "renter-1",
		OwnerID:       "owner-1",
		AppliedAt:     time.Now(),
	}
	if err := repo.CreatePaymentRecord(ctx, record); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := *record
	second.ID = "pay-2"
	err := repo.CreatePaymentRecord(ctx, &second)
	if !errors.Is(err, domain.ErrDuplicateTransaction) {
		t.Fatalf("got %v, want ErrDuplicateTransaction", err)
	}
}

func TestGetRentalUsage_CountsOnlyCompleted(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	start := time.Now().Add(-4 * time.Hour)
	end := start.Add(90 * time.Minute)

	completed := insertRental(t, repo, uuid.New().String(), domain.StatusCompleted, time.Now())
	err := db.Table("rentals").Where("id = ?", completed.ID).
		Updates(map[string]interface{}{"start_time": start, "end_time": end}).Error
	if err != nil {
		t.Fatalf("backfill times: %v", err)
	}

	running := insertRental(t, repo, uuid.New().String(), domain.StatusRunning, time.Now())
	err = db.Table("rentals").Where("id = ?", running.ID).Update("start_time", start).Error
	if err != nil {
		t.Fatalf("backfill start: %v", err)
	}

	usage, err := repo.GetRentalUsage(ctx, "renter-1")
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage.TotalRentals != 1 {
		t.Fatalf("total rentals: got %d, want 1", usage.TotalRentals)
	}
	if !usage.TotalHours.Equal(decimal.NewFromFloat(1.5)) {
		t.Fatalf("total hours: got %s, want 1.5", usage.TotalHours)
	}
}

func TestListGpus_OnlyAvailable(t *testing.T) {
	db := openTestDB(t)
	gpuRepo := NewDefaultGpuRepository(db)
	rentalRepo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	free := &domain.GPU{ID: uuid.New().String(), OwnerID: "owner-1", Name: "free", VramGb: 24, PricePerHour: decimal.NewFromInt(100), Active: true}
	held := &domain.GPU{ID: uuid.New().String(), OwnerID: "owner-1", Name: "held", VramGb: 24, PricePerHour: decimal.NewFromInt(100), Active: true}
	dark := &domain.GPU{ID: uuid.New().String(), OwnerID: "owner-1", Name: "dark", VramGb: 24, PricePerHour: decimal.NewFromInt(100), Active: false}
	for _, gpu := range []*domain.GPU{free, held, dark} {
		if err := gpuRepo.CreateGpu(ctx, gpu); err != nil {
			t.Fatalf("seed gpu: %v", err)
		}
	}
	insertRental(t, rentalRepo, held.ID, domain.StatusRunning, time.Now().Add(time.Hour))

	available, err := gpuRepo.ListGpus(ctx, true)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}
	if len(available) != 1 || available[0].ID != free.ID {
		t.Fatalf("available: got %d gpus, want only the free one", len(available))
	}

	all, err := gpuRepo.ListGpus(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all: got %d gpus, want 3", len(all))
	}
}

func TestListRentals_PartyFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefaultRentalRepository(db)
	ctx := context.Background()

	mine := &domain.Rental{
		ID: uuid.New().String(), GpuID: uuid.New().String(),
		RenterID: "user-a", OwnerID: "user-b",
		Status: domain.StatusRunning, PricePerHour: decimal.NewFromInt(100),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	theirs := &domain.Rental{
		ID: uuid.New().String(), GpuID: uuid.New().String(),
		RenterID: "user-b", OwnerID: "user-c",
		Status: domain.StatusCompleted, PricePerHour: decimal.NewFromInt(100),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	for _, rental := range []*domain.Rental{mine, theirs} {
		if err := repo.CreateRental(ctx, rental); err != nil {
			t.Fatalf("seed rental: %v", err)
		}
	}

	asRenter, total, err := repo.ListRentals(ctx, domain.RentalQuery{UserID: "user-b", Party: domain.PartyRenter, Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list as renter: %v", err)
	}
	if total != 1 || len(asRenter) != 1 || asRenter[0].ID != theirs.ID {
		t.Fatalf("renter filter: got %d rentals", len(asRenter))
	}

	either, total, err := repo.ListRentals(ctx, domain.RentalQuery{UserID: "user-b", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list either party: %v", err)
	}
	if total != 2 || len(either) != 2 {
		t.Fatalf("either-party filter: got %d rentals, want 2", len(either))
	}

	filtered, _, err := repo.ListRentals(ctx, domain.RentalQuery{
		UserID: "user-b", Statuses: []domain.RentalStatus{domain.StatusCompleted}, Page: 1, Limit: 20,
	})
	if err != nil {
		t.Fatalf("status filter: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Status != domain.StatusCompleted {
		t.Fatalf("status filter: got %d rentals", len(filtered))
	}
}
