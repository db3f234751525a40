package views

import (
	"fmt"
	"strings"
)

type StatCardData struct {
	Label string
	Value string
}

// ReviewLineData is one review row in any of the list panels.
type ReviewLineData struct {
	Title    string
	Label    string
	DueOn    string
	Status   string
	Selected bool
}

type TodayGroupData struct {
	Label string
	Items []ReviewLineData
}

type OverviewPanelData struct {
	Date          string
	Cards         []StatCardData
	CaptureActive bool
	CaptureView   string
	Groups        []TodayGroupData
}

type ReviewListPanelData struct {
	Title   string
	Actions string
	Empty   string
	Items   []ReviewLineData
}

type CadenceRowData struct {
	Label        string
	ProgressView string
	Completed    int
	Remaining    int
	Progress     int
}

type AnalyticsPanelData struct {
	TimelineView   string
	Cadences       []CadenceRowData
	CurrentStreak  int
	CompletionRate int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderOverviewPanel(data OverviewPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("overview: %s\n", data.Date))
	b.WriteString("actions: [a]add [j/k]move [space]toggle [r]refresh\n")
	if len(data.Cards) > 0 {
		parts := make([]string, 0, len(data.Cards))
		for _, card := range data.Cards {
			parts = append(parts, fmt.Sprintf("%s: %s", card.Label, card.Value))
		}
		b.WriteString(strings.Join(parts, " | ") + "\n")
	}
	if data.CaptureActive {
		b.WriteString("add problem url:\n" + data.CaptureView + "\n")
	}
	for _, group := range data.Groups {
		b.WriteString(fmt.Sprintf("\n%s:\n", group.Label))
		if len(group.Items) == 0 {
			b.WriteString("  (none)\n")
			continue
		}
		for _, item := range group.Items {
			b.WriteString(renderReviewLine(item))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderReviewListPanel(data ReviewListPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.Actions != "" {
		b.WriteString("actions: " + data.Actions + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString(data.Empty)
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		b.WriteString(renderReviewLine(item))
	}
	return strings.TrimSpace(b.String())
}

func RenderAnalyticsPanel(data AnalyticsPanelData) string {
	var b strings.Builder
	b.WriteString("analytics:\n")
	b.WriteString(fmt.Sprintf("completion-rate: %d%% | streak: %d day(s)\n", data.CompletionRate, data.CurrentStreak))
	b.WriteString("\ntimeline (last 14 days):\n")
	b.WriteString(data.TimelineView + "\n")
	b.WriteString("\ncadence progress:\n")
	for _, row := range data.Cadences {
		b.WriteString(fmt.Sprintf("%s %s %d%% (%d done, %d left)\n",
			row.Label, row.ProgressView, row.Progress, row.Completed, row.Remaining))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderReviewLine(item ReviewLineData) string {
	cursor := " "
	if item.Selected {
		cursor = ">"
	}
	return fmt.Sprintf("%s %s %s [%s] due:%s\n", cursor, statusBadge(item.Status), item.Title, item.Label, item.DueOn)
}

func statusBadge(status string) string {
	switch status {
	case "overdue":
		return "[RED]"
	case "due_today":
		return "[YELLOW]"
	case "done":
		return "[DONE]"
	default:
		return "[GREEN]"
	}
}
