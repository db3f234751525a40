package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/leettrack/internal/dateutil"
)

var ErrInvalidCadence = errors.New("model: invalid cadence kind")

// Checkpoint is one scheduled review inside a tracked item's cadence.
// A zero CompletedOn means the review has not been done yet.
type Checkpoint struct {
	Kind        Cadence
	Label       string
	DueOn       dateutil.Date
	CompletedOn dateutil.Date
}

func (c Checkpoint) Completed() bool {
	return !c.CompletedOn.IsZero()
}

// TrackedItem is one problem followed by one owner. Checkpoints are
// fixed at creation; only their CompletedOn fields ever change, and
// only through Toggle.
type TrackedItem struct {
	ID          string
	OwnerID     string
	URL         string
	Slug        string
	Title       string
	AddedOn     dateutil.Date
	Checkpoints []Checkpoint
}

// Checkpoint returns the checkpoint for the given cadence kind.
func (t TrackedItem) Checkpoint(kind Cadence) (Checkpoint, bool) {
	for _, cp := range t.Checkpoints {
		if cp.Kind == kind {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

func (t TrackedItem) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: item id is required")
	}
	if strings.TrimSpace(t.OwnerID) == "" {
		return errors.New("model: owner id is required")
	}
	if strings.TrimSpace(t.Slug) == "" {
		return errors.New("model: slug is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: title is required")
	}
	if t.AddedOn.IsZero() {
		return errors.New("model: added_on is required")
	}
	if len(t.Checkpoints) != len(cadenceTable) {
		return fmt.Errorf("model: expected %d checkpoints, have %d", len(cadenceTable), len(t.Checkpoints))
	}
	for i, spec := range cadenceTable {
		cp := t.Checkpoints[i]
		if cp.Kind != spec.Kind {
			return fmt.Errorf("model: checkpoint %d is %q, want %q", i, cp.Kind, spec.Kind)
		}
		if want := t.AddedOn.AddDays(spec.Offset); !cp.DueOn.Equal(want) {
			return fmt.Errorf("model: checkpoint %q due %s, want %s", cp.Kind, cp.DueOn.Format(), want.Format())
		}
	}
	return nil
}
