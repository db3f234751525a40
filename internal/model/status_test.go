package model

import (
	"testing"
	"time"

	"github.com/example/leettrack/internal/dateutil"
)

func TestStatusOnDecisionOrder(t *testing.T) {
	due := dateutil.New(2024, time.January, 4)
	cp := Checkpoint{Kind: CadenceDay3, Label: CadenceDay3.Label(), DueOn: due}

	if got := cp.StatusOn(dateutil.New(2024, time.January, 3)); got != StatusUpcoming {
		t.Fatalf("day before due: got %q", got)
	}
	if got := cp.StatusOn(due); got != StatusDueToday {
		t.Fatalf("on due date: got %q", got)
	}
	if got := cp.StatusOn(dateutil.New(2024, time.January, 5)); got != StatusOverdue {
		t.Fatalf("day after due: got %q", got)
	}

	cp.CompletedOn = dateutil.New(2024, time.January, 4)
	for _, today := range []dateutil.Date{
		dateutil.New(2024, time.January, 3),
		due,
		dateutil.New(2024, time.January, 10),
	} {
		if got := cp.StatusOn(today); got != StatusDone {
			t.Fatalf("completed checkpoint on %s: got %q", today.Format(), got)
		}
	}
}

func TestStatusOnAnchorScenario(t *testing.T) {
	// anchor 2024-01-01 -> day3 due 2024-01-04
	cps := GenerateCheckpoints(dateutil.New(2024, time.January, 1))
	day3 := cps[0]
	if got := day3.StatusOn(dateutil.New(2024, time.January, 4)); got != StatusDueToday {
		t.Fatalf("expected due_today, got %q", got)
	}
	if got := day3.StatusOn(dateutil.New(2024, time.January, 5)); got != StatusOverdue {
		t.Fatalf("expected overdue, got %q", got)
	}
}
