package model

import "github.com/example/leettrack/internal/dateutil"

// Status is a checkpoint's lifecycle state relative to a given day.
type Status string

const (
	StatusDone     Status = "done"
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due_today"
	StatusUpcoming Status = "upcoming"
)

// StatusOn classifies the checkpoint against today. Completion wins
// over everything; the remaining states partition the due date's
// position relative to today, so the four outcomes are total and
// mutually exclusive.
func (c Checkpoint) StatusOn(today dateutil.Date) Status {
	switch {
	case c.Completed():
		return StatusDone
	case c.DueOn.Before(today):
		return StatusOverdue
	case c.DueOn.Equal(today):
		return StatusDueToday
	default:
		return StatusUpcoming
	}
}
