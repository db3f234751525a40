package model

import (
	"errors"

	"github.com/example/leettrack/internal/dateutil"
)

var (
	ErrCheckpointNotFound = errors.New("model: checkpoint not found")
	ErrTooEarly           = errors.New("model: review cannot be completed before it is due")
)

// Toggle flips the completion state of one checkpoint and returns a
// copy of the item with only that checkpoint changed.
//
// An incomplete checkpoint can only be completed on or after its due
// date; completing it stamps today. Un-completing is always allowed and
// simply clears the stamp, so a successful toggle followed by another
// toggle on the same day restores the original state.
//
// The caller is responsible for serializing concurrent toggles on the
// same item; Toggle itself only defines the mutation.
func Toggle(item TrackedItem, kind Cadence, today dateutil.Date) (TrackedItem, error) {
	idx := -1
	for i, cp := range item.Checkpoints {
		if cp.Kind == kind {
			idx = i
			break
		}
	}
	if idx == -1 {
		return TrackedItem{}, ErrCheckpointNotFound
	}

	cp := item.Checkpoints[idx]
	if !cp.Completed() && cp.DueOn.After(today) {
		return TrackedItem{}, ErrTooEarly
	}

	if cp.Completed() {
		cp.CompletedOn = dateutil.Date{}
	} else {
		cp.CompletedOn = today
	}

	out := item
	out.Checkpoints = make([]Checkpoint, len(item.Checkpoints))
	copy(out.Checkpoints, item.Checkpoints)
	out.Checkpoints[idx] = cp
	return out, nil
}
