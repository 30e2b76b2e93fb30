package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "creator-advance-service/internal/domain/advance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type advanceSQLite struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	AdvanceID       string     `gorm:"column:advance_id;size:36;uniqueIndex:ux_advances_advance_id"`
	CreatorID       string     `gorm:"column:creator_id;size:36;index:idx_advances_creator_status,priority:1;uniqueIndex:ux_advances_creator_pending,priority:1"`
	RequestedAmount string     `gorm:"column:requested_amount"`
	Fee             string     `gorm:"column:fee"`
	NetAmount       string     `gorm:"column:net_amount"`
	Status          string     `gorm:"column:status;type:text;index:idx_advances_creator_status,priority:2"` // ← no enum
	PendingFlag     *uint8     `gorm:"column:pending_flag;uniqueIndex:ux_advances_creator_pending,priority:2"`
	RequestDate     time.Time  `gorm:"column:request_date"`
	ProcessedDate   *time.Time `gorm:"column:processed_date"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (advanceSQLite) TableName() string { return "advance_requests" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&advanceSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeAdvance(t *testing.T, creatorID uuid.UUID, amount int64, requestDate time.Time) *domain.AdvanceRequest {
	t.Helper()
	a, err := domain.New(creatorID, decimal.NewFromInt(amount), requestDate, domain.DefaultTerms())
	if err != nil {
		t.Fatalf("domain.New: %v", err)
	}
	return a
}

func TestCreateAndGetByAdvanceID(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	a := makeAdvance(t, creator, 1000, time.Now().UTC())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetByAdvanceID(ctx, a.AdvanceID)
	if err != nil {
		t.Fatalf("GetByAdvanceID: %v", err)
	}
	if got.AdvanceID != a.AdvanceID || got.CreatorID != creator {
		t.Errorf("unexpected advance: %+v", got)
	}
	if got.Status != domain.StatusPending || got.ProcessedDate != nil {
		t.Errorf("unexpected state: %+v", got)
	}
	if !got.Fee.Equal(decimal.NewFromInt(50)) || !got.NetAmount.Equal(decimal.NewFromInt(950)) {
		t.Errorf("fee/net = %s/%s", got.Fee, got.NetAmount)
	}
}

func TestGetByAdvanceID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)

	_, err := repo.GetByAdvanceID(context.Background(), uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCreate_SecondPendingBlockedByUniqueIndex(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	first := makeAdvance(t, creator, 1000, time.Now().UTC())
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := makeAdvance(t, creator, 2000, time.Now().UTC())
	err := repo.Create(ctx, second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	// Once the first is processed its pending_flag is NULL, so a new
	// pending request is allowed again.
	if err := first.Approve(time.Now()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}
	third := makeAdvance(t, creator, 3000, time.Now().UTC())
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("Create after processing: %v", err)
	}
}

func TestHasPending(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	ok, err := repo.HasPending(ctx, creator)
	if err != nil || ok {
		t.Fatalf("HasPending on empty table = %v, %v", ok, err)
	}

	a := makeAdvance(t, creator, 1000, time.Now().UTC())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, err = repo.HasPending(ctx, creator)
	if err != nil || !ok {
		t.Fatalf("HasPending with pending row = %v, %v", ok, err)
	}

	if err := a.Reject(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	ok, err = repo.HasPending(ctx, creator)
	if err != nil || ok {
		t.Fatalf("HasPending after processing = %v, %v", ok, err)
	}
}

func TestGetPageByCreator(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	other := uuid.New()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	// Five requests; dates ascending so the newest has the latest date.
	// They can't all stay pending, so process each one right away.
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		a := makeAdvance(t, creator, 1000+int64(i), base.Add(time.Duration(i)*time.Hour))
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, a.AdvanceID)
		if err := a.Approve(time.Now()); err != nil {
			t.Fatal(err)
		}
		if err := repo.Update(ctx, a); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}
	// Noise from another creator must not leak into the page or count.
	noise := makeAdvance(t, other, 5000, base)
	if err := repo.Create(ctx, noise); err != nil {
		t.Fatalf("Create noise: %v", err)
	}

	items, total, err := repo.GetPageByCreator(ctx, creator, 0, 2)
	if err != nil {
		t.Fatalf("GetPageByCreator: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(items) != 2 || items[0].AdvanceID != ids[4] || items[1].AdvanceID != ids[3] {
		t.Fatalf("unexpected first page: %+v", items)
	}

	items, total, err = repo.GetPageByCreator(ctx, creator, 4, 2)
	if err != nil {
		t.Fatalf("GetPageByCreator last: %v", err)
	}
	if total != 5 || len(items) != 1 || items[0].AdvanceID != ids[0] {
		t.Fatalf("unexpected last page: total=%d items=%+v", total, items)
	}

	// Beyond range: empty slice, count intact.
	items, total, err = repo.GetPageByCreator(ctx, creator, 18, 2)
	if err != nil {
		t.Fatalf("GetPageByCreator beyond: %v", err)
	}
	if total != 5 || len(items) != 0 {
		t.Fatalf("beyond range: total=%d len=%d", total, len(items))
	}
}

func TestGetPageByCreator_TiesKeepInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	when := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		a := makeAdvance(t, creator, 1000, when)
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		ids = append(ids, a.AdvanceID)
		if err := a.Reject(time.Now()); err != nil {
			t.Fatal(err)
		}
		if err := repo.Update(ctx, a); err != nil {
			t.Fatalf("Update %d: %v", i, err)
		}
	}

	items, _, err := repo.GetPageByCreator(ctx, creator, 0, 10)
	if err != nil {
		t.Fatalf("GetPageByCreator: %v", err)
	}
	for i := range ids {
		if items[i].AdvanceID != ids[i] {
			t.Fatalf("tie order broken at %d: %+v", i, items)
		}
	}
}

func TestUpdate_GuardedOnPendingStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewAdvanceRepository(db)
	ctx := context.Background()

	a := makeAdvance(t, uuid.New(), 1000, time.Now().UTC())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := a.Approve(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByAdvanceID(ctx, a.AdvanceID)
	if err != nil {
		t.Fatalf("GetByAdvanceID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.ProcessedDate == nil || got.PendingFlag != nil {
		t.Fatalf("transition not persisted: %+v", got)
	}

	// The row is no longer pending; a second transition attempt loses.
	late := *got
	late.Status = domain.StatusRejected
	err = repo.Update(ctx, &late)
	if domain.KindOf(err) != domain.KindInvalidState {
		t.Fatalf("expected InvalidState for stale update, got %v", err)
	}

	// Stored status untouched by the losing update.
	got, err = repo.GetByAdvanceID(ctx, a.AdvanceID)
	if err != nil {
		t.Fatalf("GetByAdvanceID: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status overwritten: %+v", got)
	}
}
