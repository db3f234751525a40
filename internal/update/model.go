// Package update implements the terminal dashboard as a Bubble Tea
// program. The model is a value type; service calls run inside tea.Cmds
// and report back through messages.
package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/example/leettrack/internal/dashboard"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/tracker"
)

type View string

const (
	ViewOverview  View = "Overview"
	ViewPending   View = "Pending"
	ViewUpcoming  View = "Upcoming"
	ViewAnalytics View = "Analytics"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Overview  string
	Pending   string
	Upcoming  string
	Analytics string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	OwnerID     string
	Snapshot    dashboard.Snapshot
	Loaded      bool
	Cursor      int
	Capture     bool
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	service *tracker.Service

	// Bubble components used for rich TUI controls
	captureInput   textinput.Model
	commandInput   textinput.Model
	timelineTable  table.Model
	cadenceBar     progress.Model
	refreshSpinner spinner.Model
	helpModel      help.Model
	refreshing     bool
}

// selectedReview is one toggleable row under the cursor.
type selectedReview struct {
	ItemID string
	Title  string
	Kind   model.Cadence
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SnapshotMsg struct {
	Snapshot dashboard.Snapshot
}

type ItemAddedMsg struct {
	Item model.TrackedItem
}

type ReviewToggledMsg struct {
	Item model.TrackedItem
	Kind model.Cadence
}

type ItemRemovedMsg struct {
	Target string
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewOverview,
		Keys: GlobalKeyMap{
			Overview:  "1",
			Pending:   "2",
			Upcoming:  "3",
			Analytics: "4",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.initBubbleComponents()
	return m
}

func NewModelWithService(svc *tracker.Service, ownerID string) Model {
	m := NewModel()
	m.service = svc
	m.OwnerID = ownerID
	return m
}

func (m *Model) initBubbleComponents() {
	capture := textinput.New()
	capture.Placeholder = "https://leetcode.com/problems/..."
	capture.CharLimit = 300
	capture.Width = 48
	m.captureInput = capture

	command := textinput.New()
	command.Placeholder = "add <url> | toggle <slug> <kind> | show <subject> | remove <slug>"
	command.CharLimit = 200
	command.Width = 48
	m.commandInput = command

	m.timelineTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Due", Width: 5},
			{Title: "Done", Width: 5},
		}),
		table.WithHeight(dashboard.TimelineWindow),
	)

	m.cadenceBar = progress.New(progress.WithDefaultGradient())
	m.refreshSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
}

// syncBubbleData pushes the latest snapshot into the table component.
func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Snapshot.Timeline))
	for _, day := range m.Snapshot.Timeline {
		rows = append(rows, table.Row{
			day.Date.Format(),
			itoa(day.Due),
			itoa(day.Completed),
		})
	}
	m.timelineTable.SetRows(rows)
}

// selectable lists the rows the cursor can reach in the current view.
// Overview walks the today groups in order; Pending and Upcoming walk
// their snapshot lists. Analytics has no selection.
func (m Model) selectable() []selectedReview {
	switch m.CurrentView {
	case ViewOverview:
		out := make([]selectedReview, 0)
		for _, group := range m.Snapshot.TodayGroups {
			for _, ref := range group.Items {
				out = append(out, selectedReview{ItemID: ref.ItemID, Title: ref.ItemTitle, Kind: ref.Checkpoint.Kind})
			}
		}
		return out
	case ViewPending:
		return refsToSelections(m.Snapshot.Pending)
	case ViewUpcoming:
		return refsToSelections(m.Snapshot.Upcoming)
	default:
		return nil
	}
}

func (m Model) selectedReviewAtCursor() (selectedReview, bool) {
	rows := m.selectable()
	if len(rows) == 0 || m.Cursor < 0 || m.Cursor >= len(rows) {
		return selectedReview{}, false
	}
	return rows[m.Cursor], true
}

func (m *Model) clampCursor() {
	max := len(m.selectable()) - 1
	if max < 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor > max {
		m.Cursor = max
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func refsToSelections(refs []dashboard.ReviewRef) []selectedReview {
	out := make([]selectedReview, 0, len(refs))
	for _, ref := range refs {
		out = append(out, selectedReview{ItemID: ref.ItemID, Title: ref.ItemTitle, Kind: ref.Checkpoint.Kind})
	}
	return out
}
