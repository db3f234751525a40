package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "leettrack-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func testItemRow(id, owner, slug, addedOn string) (Item, []Checkpoint) {
	item := Item{
		ID:        id,
		OwnerID:   owner,
		URL:       "https://leetcode.com/problems/" + slug + "/",
		Slug:      slug,
		Title:     slug,
		AddedOn:   addedOn,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	checkpoints := []Checkpoint{
		{ItemID: id, Kind: "day3", Label: "3-Day Review", DueOn: "2024-01-04"},
		{ItemID: id, Kind: "day7", Label: "7-Day Review", DueOn: "2024-01-08"},
		{ItemID: id, Kind: "day15", Label: "15-Day Review", DueOn: "2024-01-16"},
	}
	return item, checkpoints
}

func TestCreateAndGetItem(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	item, cps := testItemRow("it-1", "owner-1", "two-sum", "2024-01-01")
	if err := repo.CreateItem(ctx, item, cps); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, gotCps, err := repo.GetItem(ctx, "owner-1", "it-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Slug != "two-sum" || got.AddedOn != "2024-01-01" {
		t.Fatalf("unexpected item: %+v", got)
	}
	if len(gotCps) != 3 {
		t.Fatalf("expected 3 checkpoints, got %d", len(gotCps))
	}
	if gotCps[0].Kind != "day3" || gotCps[2].Kind != "day15" {
		t.Fatalf("checkpoints out of due order: %+v", gotCps)
	}
	if gotCps[0].CompletedOn != "" {
		t.Fatalf("expected uncompleted checkpoint, got %q", gotCps[0].CompletedOn)
	}
}

func TestGetItemScopedToOwner(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	item, cps := testItemRow("it-1", "owner-1", "two-sum", "2024-01-01")
	if err := repo.CreateItem(ctx, item, cps); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := repo.GetItem(ctx, "owner-2", "it-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestCreateDuplicateSlugRejected(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first, cps1 := testItemRow("it-1", "owner-1", "two-sum", "2024-01-01")
	if err := repo.CreateItem(ctx, first, cps1); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, cps2 := testItemRow("it-2", "owner-1", "two-sum", "2024-01-02")
	if err := repo.CreateItem(ctx, second, cps2); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// a different owner may track the same slug
	other, cps3 := testItemRow("it-3", "owner-2", "two-sum", "2024-01-02")
	if err := repo.CreateItem(ctx, other, cps3); err != nil {
		t.Fatalf("cross-owner create failed: %v", err)
	}
}

func TestListItemsNewestAnchorFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	older, cps1 := testItemRow("it-1", "owner-1", "old", "2024-01-01")
	newer, cps2 := testItemRow("it-2", "owner-1", "new", "2024-01-05")
	foreign, cps3 := testItemRow("it-3", "owner-2", "other", "2024-01-09")
	for _, pair := range []struct {
		item Item
		cps  []Checkpoint
	}{{older, cps1}, {newer, cps2}, {foreign, cps3}} {
		if err := repo.CreateItem(ctx, pair.item, pair.cps); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := repo.ListItems(ctx, ItemListFilter{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "it-2" || items[1].ID != "it-1" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestListCheckpointsForOwner(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	a, cpsA := testItemRow("it-1", "owner-1", "aaa", "2024-01-01")
	b, cpsB := testItemRow("it-2", "owner-2", "bbb", "2024-01-01")
	if err := repo.CreateItem(ctx, a, cpsA); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.CreateItem(ctx, b, cpsB); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cps, err := repo.ListCheckpoints(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list checkpoints failed: %v", err)
	}
	if len(cps) != 3 {
		t.Fatalf("expected 3 checkpoints, got %d", len(cps))
	}
	for _, cp := range cps {
		if cp.ItemID != "it-1" {
			t.Fatalf("leaked foreign checkpoint: %+v", cp)
		}
	}
}

func TestUpdateCheckpointConditional(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	item, cps := testItemRow("it-1", "owner-1", "two-sum", "2024-01-01")
	if err := repo.CreateItem(ctx, item, cps); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateCheckpoint(ctx, "it-1", "day3", "", "2024-01-04"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	_, gotCps, err := repo.GetItem(ctx, "owner-1", "it-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotCps[0].CompletedOn != "2024-01-04" {
		t.Fatalf("completion not stored: %+v", gotCps[0])
	}

	// stale expectation loses the race
	if err := repo.UpdateCheckpoint(ctx, "it-1", "day3", "", "2024-01-05"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// clearing with the right expectation works
	if err := repo.UpdateCheckpoint(ctx, "it-1", "day3", "2024-01-04", ""); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// unknown checkpoint
	if err := repo.UpdateCheckpoint(ctx, "it-1", "day30", "", "2024-01-04"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItemCascades(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	item, cps := testItemRow("it-1", "owner-1", "two-sum", "2024-01-01")
	if err := repo.CreateItem(ctx, item, cps); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.DeleteItem(ctx, "owner-1", "it-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	left, err := repo.ListCheckpoints(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list checkpoints failed: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("checkpoints should cascade on delete, got %d", len(left))
	}
	if err := repo.DeleteItem(ctx, "owner-1", "it-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
