package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/example/leettrack/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const helpMarkdown = `Reviews follow a fixed cadence: **3**, **7** and **15** days
after a problem is added. A review can be completed on its due date or
later, never before, and completing it again reopens it.`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	}) + "\n" + views.RenderMarkdown(helpMarkdown)
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Overview, Action: "switch to Overview"},
		{Key: m.Keys.Pending, Action: "switch to Pending"},
		{Key: m.Keys.Upcoming, Action: "switch to Upcoming"},
		{Key: m.Keys.Analytics, Action: "switch to Analytics"},
		{Key: "/", Action: "open command palette"},
		{Key: "r", Action: "refresh from storage"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewOverview:
		return []KeyBinding{
			{Key: "a", Action: "add a problem url"},
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "toggle selected review"},
		}
	case ViewPending:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "complete selected review"},
		}
	case ViewUpcoming:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
		}
	case ViewAnalytics:
		return []KeyBinding{
			{Key: "-", Action: "no contextual bindings"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
