package model

import (
	"github.com/example/leettrack/internal/dateutil"
)

// Cadence identifies one slot in the fixed review schedule. The set is
// closed: adding or removing a slot is a deliberate code change, not a
// runtime configuration.
type Cadence string

const (
	CadenceDay3  Cadence = "day3"
	CadenceDay7  Cadence = "day7"
	CadenceDay15 Cadence = "day15"
)

type CadenceSpec struct {
	Kind   Cadence
	Label  string
	Offset int // days after the anchor date
}

var cadenceTable = []CadenceSpec{
	{Kind: CadenceDay3, Label: "3-Day Review", Offset: 3},
	{Kind: CadenceDay7, Label: "7-Day Review", Offset: 7},
	{Kind: CadenceDay15, Label: "15-Day Review", Offset: 15},
}

// CadenceTable returns the schedule in ascending offset order, which is
// also the display order everywhere downstream.
func CadenceTable() []CadenceSpec {
	out := make([]CadenceSpec, len(cadenceTable))
	copy(out, cadenceTable)
	return out
}

func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDay3, CadenceDay7, CadenceDay15:
		return true
	default:
		return false
	}
}

func (c Cadence) Label() string {
	for _, spec := range cadenceTable {
		if spec.Kind == c {
			return spec.Label
		}
	}
	return string(c)
}

func (c Cadence) OffsetDays() int {
	for _, spec := range cadenceTable {
		if spec.Kind == c {
			return spec.Offset
		}
	}
	return 0
}

// GenerateCheckpoints builds the full checkpoint set for an item added
// on the anchor date. Output order matches the cadence table; all
// checkpoints start uncompleted. Due dates are fixed here and never
// recomputed.
func GenerateCheckpoints(anchor dateutil.Date) []Checkpoint {
	out := make([]Checkpoint, 0, len(cadenceTable))
	for _, spec := range cadenceTable {
		out = append(out, Checkpoint{
			Kind:  spec.Kind,
			Label: spec.Label,
			DueOn: anchor.AddDays(spec.Offset),
		})
	}
	return out
}
