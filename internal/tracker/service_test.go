package tracker

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/problemurl"
	"github.com/example/leettrack/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tracker-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return New(repo)
}

func TestCreatePersistsItemWithCadence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	today := dateutil.New(2024, time.January, 1)

	item, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/?tab=editorial", today)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Slug != "two-sum" || item.Title != "Two Sum" {
		t.Fatalf("unexpected derived fields: %+v", item)
	}
	if item.URL != "https://leetcode.com/problems/two-sum/" {
		t.Fatalf("url not sanitized: %q", item.URL)
	}

	loaded, err := svc.Get(ctx, "owner-1", item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if err := loaded.Validate(); err != nil {
		t.Fatalf("loaded item invalid: %v", err)
	}
	if got := loaded.Checkpoints[2].DueOn.Format(); got != "2024-01-16" {
		t.Fatalf("unexpected day15 due date: %s", got)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	today := dateutil.New(2024, time.January, 1)

	if _, err := svc.Create(ctx, "owner-1", "https://x.com/problems/two-sum/", today); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// trailing slash stripped, same slug
	_, err := svc.Create(ctx, "owner-1", "https://x.com/problems/two-sum", today)
	if !errors.Is(err, ErrAlreadyTracked) {
		t.Fatalf("expected ErrAlreadyTracked, got %v", err)
	}
	// different owner is fine
	if _, err := svc.Create(ctx, "owner-2", "https://x.com/problems/two-sum/", today); err != nil {
		t.Fatalf("cross-owner create failed: %v", err)
	}
}

func TestCreateRejectsBadURL(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), "owner-1", "https://x.com/contest/weekly/", dateutil.New(2024, time.January, 1))
	if !errors.Is(err, problemurl.ErrNoProblemSegment) {
		t.Fatalf("expected ErrNoProblemSegment, got %v", err)
	}
}

func TestToggleRoundTripThroughStorage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	anchor := dateutil.New(2024, time.January, 1)

	item, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/", anchor)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	dueDay := anchor.AddDays(3)
	updated, err := svc.Toggle(ctx, "owner-1", item.ID, model.CadenceDay3, dueDay)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	cp, _ := updated.Checkpoint(model.CadenceDay3)
	if !cp.CompletedOn.Equal(dueDay) {
		t.Fatalf("expected completion on %s, got %s", dueDay.Format(), cp.CompletedOn.Format())
	}

	// reversal restores the open state, persisted
	reverted, err := svc.Toggle(ctx, "owner-1", item.ID, model.CadenceDay3, dueDay)
	if err != nil {
		t.Fatalf("reverse toggle failed: %v", err)
	}
	cp, _ = reverted.Checkpoint(model.CadenceDay3)
	if cp.Completed() {
		t.Fatal("expected completion cleared")
	}
	loaded, err := svc.Get(ctx, "owner-1", item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	cp, _ = loaded.Checkpoint(model.CadenceDay3)
	if cp.Completed() {
		t.Fatal("cleared completion not persisted")
	}
}

func TestToggleTooEarlyLeavesStorageUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	anchor := dateutil.New(2024, time.January, 1)

	item, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/", anchor)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = svc.Toggle(ctx, "owner-1", item.ID, model.CadenceDay3, anchor.AddDays(2))
	if !errors.Is(err, model.ErrTooEarly) {
		t.Fatalf("expected ErrTooEarly, got %v", err)
	}
	loaded, err := svc.Get(ctx, "owner-1", item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	cp, _ := loaded.Checkpoint(model.CadenceDay3)
	if cp.Completed() {
		t.Fatal("failed toggle must not persist anything")
	}
}

func TestToggleUnknownItemAndKind(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	anchor := dateutil.New(2024, time.January, 1)

	_, err := svc.Toggle(ctx, "owner-1", "missing", model.CadenceDay3, anchor)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	item, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/", anchor)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = svc.Toggle(ctx, "owner-1", item.ID, model.Cadence("day30"), anchor.AddDays(10))
	if !errors.Is(err, model.ErrCheckpointNotFound) {
		t.Fatalf("expected ErrCheckpointNotFound, got %v", err)
	}
}

func TestSnapshotReflectsStoredItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	anchor := dateutil.New(2024, time.January, 1)

	if _, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/", anchor); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	snap, err := svc.Snapshot(ctx, "owner-1", anchor.AddDays(3))
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.Stats.TodaysDueCount != 1 {
		t.Fatalf("expected day3 due today, got %+v", snap.Stats)
	}
	if len(snap.TodayGroups[0].Items) != 1 || snap.TodayGroups[0].Items[0].ItemTitle != "Two Sum" {
		t.Fatalf("unexpected today group: %+v", snap.TodayGroups[0])
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	anchor := dateutil.New(2024, time.January, 1)

	item, err := svc.Create(ctx, "owner-1", "https://leetcode.com/problems/two-sum/", anchor)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Remove(ctx, "owner-1", item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(ctx, "owner-1", item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
