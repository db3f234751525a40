// Package dashboard derives the read-side view-model from a flattened
// list of checkpoints. Every function is pure: "today" is always passed
// in, so one snapshot is internally consistent even if the wall clock
// advances mid-build.
package dashboard

import (
	"math"
	"sort"

	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
)

const (
	// TimelineWindow is the number of days in the due/completed chart,
	// ending at today.
	TimelineWindow = 14
	// UpcomingLimit caps the upcoming list.
	UpcomingLimit = 8
)

// ReviewRef is one checkpoint paired with its owning item's display
// fields.
type ReviewRef struct {
	Checkpoint model.Checkpoint
	ItemID     string
	ItemTitle  string
	ItemURL    string
	AddedOn    dateutil.Date
}

// Flatten expands items into (checkpoint, owning item) pairs.
func Flatten(items []model.TrackedItem) []ReviewRef {
	out := make([]ReviewRef, 0, len(items)*3)
	for _, item := range items {
		for _, cp := range item.Checkpoints {
			out = append(out, ReviewRef{
				Checkpoint: cp,
				ItemID:     item.ID,
				ItemTitle:  item.Title,
				ItemURL:    item.URL,
				AddedOn:    item.AddedOn,
			})
		}
	}
	return out
}

// Pending lists overdue checkpoints, oldest due date first.
func Pending(refs []ReviewRef, today dateutil.Date) []ReviewRef {
	out := make([]ReviewRef, 0)
	for _, ref := range refs {
		if ref.Checkpoint.StatusOn(today) == model.StatusOverdue {
			out = append(out, ref)
		}
	}
	sortByDueDate(out)
	return out
}

// Upcoming lists not-yet-due checkpoints, soonest first, capped at
// UpcomingLimit.
func Upcoming(refs []ReviewRef, today dateutil.Date) []ReviewRef {
	out := make([]ReviewRef, 0)
	for _, ref := range refs {
		if ref.Checkpoint.StatusOn(today) == model.StatusUpcoming {
			out = append(out, ref)
		}
	}
	sortByDueDate(out)
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

type TodayGroup struct {
	Kind  model.Cadence
	Label string
	Items []ReviewRef
}

// TodayGroups buckets today's incomplete reviews per cadence slot, in
// cadence-table order, each group sorted by item title.
func TodayGroups(refs []ReviewRef, today dateutil.Date) []TodayGroup {
	groups := make([]TodayGroup, 0, 3)
	for _, spec := range model.CadenceTable() {
		group := TodayGroup{Kind: spec.Kind, Label: spec.Label, Items: make([]ReviewRef, 0)}
		for _, ref := range refs {
			cp := ref.Checkpoint
			if cp.Kind == spec.Kind && !cp.Completed() && cp.DueOn.Equal(today) {
				group.Items = append(group.Items, ref)
			}
		}
		sort.SliceStable(group.Items, func(i, j int) bool {
			return group.Items[i].ItemTitle < group.Items[j].ItemTitle
		})
		groups = append(groups, group)
	}
	return groups
}

type Stats struct {
	TodaysDueCount      int
	CompletedTodayCount int
	PendingCount        int
	UpcomingWeekCount   int
	TotalReviews        int
	TotalCompleted      int
	CompletionRate      int
	RecentCompletions   int
	CurrentStreak       int
}

// BuildStats computes the headline dashboard numbers. CompletionRate is
// a rounded percentage and zero when there is nothing to complete;
// RecentCompletions counts the inclusive 7-day window ending today.
func BuildStats(refs []ReviewRef, today dateutil.Date) Stats {
	stats := Stats{TotalReviews: len(refs)}
	weekStart := today.AddDays(-6)
	weekAhead := today.AddDays(7)
	for _, ref := range refs {
		cp := ref.Checkpoint
		if cp.Completed() {
			stats.TotalCompleted++
			if !cp.CompletedOn.Before(weekStart) && !cp.CompletedOn.After(today) {
				stats.RecentCompletions++
			}
			if cp.DueOn.Equal(today) {
				stats.CompletedTodayCount++
			}
			continue
		}
		switch {
		case cp.DueOn.Before(today):
			stats.PendingCount++
		case cp.DueOn.Equal(today):
			stats.TodaysDueCount++
		case !cp.DueOn.After(weekAhead):
			stats.UpcomingWeekCount++
		}
	}
	if stats.TotalReviews > 0 {
		stats.CompletionRate = roundPercent(stats.TotalCompleted, stats.TotalReviews)
	}
	stats.CurrentStreak = Streak(refs, today)
	return stats
}

type TimelineDay struct {
	Date      dateutil.Date
	Due       int
	Completed int
}

// Timeline counts due and completed checkpoints per day over the fixed
// window ending at today, oldest day first. The two counts are
// independent: one checkpoint can contribute to a due bucket and to a
// different (or the same) completed bucket.
func Timeline(refs []ReviewRef, today dateutil.Date) []TimelineDay {
	days := make([]TimelineDay, 0, TimelineWindow)
	index := make(map[string]int, TimelineWindow)
	for offset := TimelineWindow - 1; offset >= 0; offset-- {
		day := today.AddDays(-offset)
		index[day.Format()] = len(days)
		days = append(days, TimelineDay{Date: day})
	}
	for _, ref := range refs {
		cp := ref.Checkpoint
		if i, ok := index[cp.DueOn.Format()]; ok {
			days[i].Due++
		}
		if cp.Completed() {
			if i, ok := index[cp.CompletedOn.Format()]; ok {
				days[i].Completed++
			}
		}
	}
	return days
}

type CadenceProgress struct {
	Kind      model.Cadence
	Label     string
	Completed int
	Remaining int
	Progress  int
}

// CadenceSummary reports per-slot completion progress in cadence-table
// order. An empty slot is treated as total 1 so the ratio stays
// defined; its progress reads 0.
func CadenceSummary(refs []ReviewRef) []CadenceProgress {
	out := make([]CadenceProgress, 0, 3)
	for _, spec := range model.CadenceTable() {
		total, completed := 0, 0
		for _, ref := range refs {
			if ref.Checkpoint.Kind != spec.Kind {
				continue
			}
			total++
			if ref.Checkpoint.Completed() {
				completed++
			}
		}
		if total == 0 {
			total = 1
		}
		out = append(out, CadenceProgress{
			Kind:      spec.Kind,
			Label:     spec.Label,
			Completed: completed,
			Remaining: total - completed,
			Progress:  roundPercent(completed, total),
		})
	}
	return out
}

// Streak counts consecutive days ending at today on which at least one
// checkpoint was completed. A day without completions stops the walk,
// so a quiet today yields zero.
func Streak(refs []ReviewRef, today dateutil.Date) int {
	completed := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if ref.Checkpoint.Completed() {
			completed[ref.Checkpoint.CompletedOn.Format()] = true
		}
	}
	streak := 0
	for cursor := today; completed[cursor.Format()]; cursor = cursor.AddDays(-1) {
		streak++
	}
	return streak
}

// Snapshot is the complete dashboard view-model for one owner.
type Snapshot struct {
	Today          dateutil.Date
	Pending        []ReviewRef
	Upcoming       []ReviewRef
	TodayGroups    []TodayGroup
	Stats          Stats
	Timeline       []TimelineDay
	CadenceSummary []CadenceProgress
}

// Build assembles the full view-model from an owner's items.
func Build(items []model.TrackedItem, today dateutil.Date) Snapshot {
	refs := Flatten(items)
	return Snapshot{
		Today:          today,
		Pending:        Pending(refs, today),
		Upcoming:       Upcoming(refs, today),
		TodayGroups:    TodayGroups(refs, today),
		Stats:          BuildStats(refs, today),
		Timeline:       Timeline(refs, today),
		CadenceSummary: CadenceSummary(refs),
	}
}

func sortByDueDate(refs []ReviewRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Checkpoint.DueOn.Before(refs[j].Checkpoint.DueOn)
	})
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
