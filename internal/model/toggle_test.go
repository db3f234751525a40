package model

import (
	"errors"
	"testing"
	"time"

	"github.com/example/leettrack/internal/dateutil"
)

func testItem(anchor dateutil.Date) TrackedItem {
	return TrackedItem{
		ID:          "item-1",
		OwnerID:     "owner-1",
		URL:         "https://leetcode.com/problems/two-sum/",
		Slug:        "two-sum",
		Title:       "Two Sum",
		AddedOn:     anchor,
		Checkpoints: GenerateCheckpoints(anchor),
	}
}

func TestToggleCompletesOnDueDate(t *testing.T) {
	anchor := dateutil.New(2024, time.January, 1)
	item := testItem(anchor)
	today := dateutil.New(2024, time.January, 4)

	updated, err := Toggle(item, CadenceDay3, today)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	cp, _ := updated.Checkpoint(CadenceDay3)
	if !cp.Completed() || !cp.CompletedOn.Equal(today) {
		t.Fatalf("expected completion stamped %s, got %+v", today.Format(), cp)
	}
	// other checkpoints untouched
	for _, kind := range []Cadence{CadenceDay7, CadenceDay15} {
		other, _ := updated.Checkpoint(kind)
		if other.Completed() {
			t.Fatalf("checkpoint %q should be untouched", kind)
		}
	}
	// input item unchanged
	orig, _ := item.Checkpoint(CadenceDay3)
	if orig.Completed() {
		t.Fatal("toggle mutated its input")
	}
}

func TestToggleAllowsLateCompletion(t *testing.T) {
	item := testItem(dateutil.New(2024, time.January, 1))
	today := dateutil.New(2024, time.February, 1)
	updated, err := Toggle(item, CadenceDay3, today)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	cp, _ := updated.Checkpoint(CadenceDay3)
	if !cp.CompletedOn.Equal(today) {
		t.Fatalf("expected completion on %s, got %s", today.Format(), cp.CompletedOn.Format())
	}
}

func TestToggleRejectsEarlyCompletion(t *testing.T) {
	item := testItem(dateutil.New(2024, time.January, 1))
	// day3 due 2024-01-04, today one day earlier
	_, err := Toggle(item, CadenceDay3, dateutil.New(2024, time.January, 3))
	if !errors.Is(err, ErrTooEarly) {
		t.Fatalf("expected ErrTooEarly, got %v", err)
	}
	cp, _ := item.Checkpoint(CadenceDay3)
	if cp.Completed() {
		t.Fatal("failed toggle must leave the item unchanged")
	}
}

func TestToggleReversalHasNoEarlinessCheck(t *testing.T) {
	anchor := dateutil.New(2024, time.January, 1)
	item := testItem(anchor)
	item.Checkpoints[2].CompletedOn = dateutil.New(2024, time.January, 16)

	// today is before day15's due date, but clearing is always allowed
	updated, err := Toggle(item, CadenceDay15, dateutil.New(2024, time.January, 2))
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	cp, _ := updated.Checkpoint(CadenceDay15)
	if cp.Completed() {
		t.Fatal("expected completion cleared")
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	item := testItem(dateutil.New(2024, time.January, 1))
	today := dateutil.New(2024, time.January, 8)

	once, err := Toggle(item, CadenceDay7, today)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	twice, err := Toggle(once, CadenceDay7, today)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	cp, _ := twice.Checkpoint(CadenceDay7)
	orig, _ := item.Checkpoint(CadenceDay7)
	if cp.CompletedOn != orig.CompletedOn {
		t.Fatalf("double toggle did not restore state: %+v vs %+v", cp, orig)
	}
}

func TestToggleUnknownKind(t *testing.T) {
	item := testItem(dateutil.New(2024, time.January, 1))
	_, err := Toggle(item, Cadence("day30"), dateutil.New(2024, time.January, 10))
	if !errors.Is(err, ErrCheckpointNotFound) {
		t.Fatalf("expected ErrCheckpointNotFound, got %v", err)
	}
}

func TestTrackedItemValidate(t *testing.T) {
	item := testItem(dateutil.New(2024, time.January, 1))
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}

	broken := item
	broken.Checkpoints = broken.Checkpoints[:2]
	if err := broken.Validate(); err == nil {
		t.Fatal("expected error for missing checkpoint")
	}

	shifted := testItem(dateutil.New(2024, time.January, 1))
	shifted.Checkpoints[1].DueOn = shifted.Checkpoints[1].DueOn.AddDays(1)
	if err := shifted.Validate(); err == nil {
		t.Fatal("expected error for drifted due date")
	}
}
