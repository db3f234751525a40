package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	item, cps := testItemRow("it-rt-1", "owner-1", "roundtrip", "2024-01-01")
	item.CreatedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.CreateItem(context.Background(), item, cps); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, _, err := repo.GetItem(context.Background(), "owner-1", "it-rt-1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Slug != "roundtrip" {
		t.Fatalf("unexpected slug after roundtrip: %q", got.Slug)
	}
}
