package update

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/leettrack/internal/dashboard"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/views"
)

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Capture = false
		m.captureInput.Blur()
		m.captureInput.SetValue("")
		m.Status = StatusBar{Text: "capture cancelled"}
		return m, nil
	case "enter":
		url := m.captureInput.Value()
		m.Capture = false
		m.captureInput.Blur()
		m.captureInput.SetValue("")
		return m, m.addCmd(url)
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.captureInput, cmd = m.captureInput.Update(msg)
		return m, cmd
	}
}

func (m Model) renderOverviewView() string {
	stats := m.Snapshot.Stats
	cards := []views.StatCardData{
		{Label: "due today", Value: itoa(stats.TodaysDueCount)},
		{Label: "done today", Value: itoa(stats.CompletedTodayCount)},
		{Label: "pending", Value: itoa(stats.PendingCount)},
		{Label: "next 7d", Value: itoa(stats.UpcomingWeekCount)},
		{Label: "streak", Value: itoa(stats.CurrentStreak)},
	}

	index := 0
	groups := make([]views.TodayGroupData, 0, len(m.Snapshot.TodayGroups))
	for _, group := range m.Snapshot.TodayGroups {
		data := views.TodayGroupData{Label: group.Label}
		for _, ref := range group.Items {
			data.Items = append(data.Items, views.ReviewLineData{
				Title:    ref.ItemTitle,
				Label:    ref.Checkpoint.Label,
				DueOn:    ref.Checkpoint.DueOn.DisplayShort(),
				Status:   string(model.StatusDueToday),
				Selected: m.CurrentView == ViewOverview && index == m.Cursor,
			})
			index++
		}
		groups = append(groups, data)
	}

	return views.RenderOverviewPanel(views.OverviewPanelData{
		Date:          m.Snapshot.Today.DisplayFull(),
		Cards:         cards,
		CaptureActive: m.Capture,
		CaptureView:   m.captureInput.View(),
		Groups:        groups,
	})
}

func (m Model) renderPendingView() string {
	return views.RenderReviewListPanel(views.ReviewListPanelData{
		Title:   "pending",
		Actions: "[j/k]move [space]complete [r]refresh",
		Empty:   "nothing overdue, nice",
		Items:   m.reviewLines(m.Snapshot.Pending, m.CurrentView == ViewPending),
	})
}

func (m Model) renderUpcomingView() string {
	return views.RenderReviewListPanel(views.ReviewListPanelData{
		Title:   "upcoming",
		Actions: "[j/k]move [r]refresh",
		Empty:   "no reviews scheduled",
		Items:   m.reviewLines(m.Snapshot.Upcoming, m.CurrentView == ViewUpcoming),
	})
}

func (m Model) renderAnalyticsView() string {
	cadences := make([]views.CadenceRowData, 0, len(m.Snapshot.CadenceSummary))
	for _, row := range m.Snapshot.CadenceSummary {
		cadences = append(cadences, views.CadenceRowData{
			Label:        row.Label,
			ProgressView: m.cadenceBar.ViewAs(float64(row.Progress) / 100),
			Completed:    row.Completed,
			Remaining:    row.Remaining,
			Progress:     row.Progress,
		})
	}
	return views.RenderAnalyticsPanel(views.AnalyticsPanelData{
		TimelineView:   m.timelineTable.View(),
		Cadences:       cadences,
		CurrentStreak:  m.Snapshot.Stats.CurrentStreak,
		CompletionRate: m.Snapshot.Stats.CompletionRate,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.Palette.Input) + "\n" + m.commandInput.View()
}

func (m Model) reviewLines(refs []dashboard.ReviewRef, cursorActive bool) []views.ReviewLineData {
	out := make([]views.ReviewLineData, 0, len(refs))
	for i, ref := range refs {
		out = append(out, views.ReviewLineData{
			Title:    ref.ItemTitle,
			Label:    ref.Checkpoint.Label,
			DueOn:    ref.Checkpoint.DueOn.Format(),
			Status:   string(ref.Checkpoint.StatusOn(m.Snapshot.Today)),
			Selected: cursorActive && i == m.Cursor,
		})
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
