package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/leettrack/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Capture {
			return m.handleCaptureKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Overview:
			return m.switchView(ViewOverview), nil
		case m.Keys.Pending:
			return m.switchView(ViewPending), nil
		case m.Keys.Upcoming:
			return m.switchView(ViewUpcoming), nil
		case m.Keys.Analytics:
			return m.switchView(ViewAnalytics), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "a":
			if m.CurrentView == ViewOverview {
				m.Capture = true
				m.captureInput.Focus()
				m.captureInput.SetValue("")
				m.Status = StatusBar{Text: "paste a problem url, enter to track"}
				return m, nil
			}
		case "r":
			m.refreshing = true
			m.Status = StatusBar{Text: "refreshing"}
			return m, tea.Batch(m.refreshSpinner.Tick, m.refreshCmd())
		case "j", "down":
			m.Cursor++
			m.clampCursor()
			return m, nil
		case "k", "up":
			m.Cursor--
			m.clampCursor()
			return m, nil
		case " ", "space":
			if sel, ok := m.selectedReviewAtCursor(); ok {
				return m, m.toggleCmd(sel.ItemID, sel.Kind)
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.refreshing {
			var cmd tea.Cmd
			m.refreshSpinner, cmd = m.refreshSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			return m.switchView(typed.View), nil
		}
		return m, nil
	case SnapshotMsg:
		m.Snapshot = typed.Snapshot
		m.Loaded = true
		m.refreshing = false
		m.syncBubbleData()
		m.clampCursor()
		if m.Status.Text == "refreshing" {
			m.Status = StatusBar{}
		}
		return m, nil
	case ItemAddedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("tracking %s, first review on %s",
			typed.Item.Title, typed.Item.Checkpoints[0].DueOn.DisplayShort())}
		return m, m.refreshCmd()
	case ReviewToggledMsg:
		if cp, ok := typed.Item.Checkpoint(typed.Kind); ok && cp.Completed() {
			m.Status = StatusBar{Text: fmt.Sprintf("%s %s done", typed.Item.Title, cp.Label)}
		} else if ok {
			m.Status = StatusBar{Text: fmt.Sprintf("%s %s reopened", typed.Item.Title, cp.Label)}
		}
		return m, m.refreshCmd()
	case ItemRemovedMsg:
		m.Status = StatusBar{Text: fmt.Sprintf("removed %s", typed.Target)}
		return m, m.refreshCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		m.refreshing = false
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	if m.refreshing {
		status = strings.TrimSpace(m.refreshSpinner.View() + " " + status)
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewOverview:
		leftPane = m.renderOverviewView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewPending:
		leftPane = m.renderPendingView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewUpcoming:
		leftPane = m.renderUpcomingView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewAnalytics:
		leftPane = m.renderAnalyticsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	today := ""
	if m.Loaded {
		today = m.Snapshot.Today.DisplayFull()
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("leettrack | view: %s | %s", m.CurrentView, today),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s overview | %s pending | %s upcoming | %s analytics | / cmd | %s help | %s quit",
			m.Keys.Overview, m.Keys.Pending, m.Keys.Upcoming, m.Keys.Analytics, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	m.Cursor = 0
	return m
}

func isKnownView(v View) bool {
	switch v {
	case ViewOverview, ViewPending, ViewUpcoming, ViewAnalytics:
		return true
	default:
		return false
	}
}
