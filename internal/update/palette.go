package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/leettrack/internal/commands"
	"github.com/example/leettrack/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			teaCmd = m.addCmd(a.URL)
			return commands.Result{Message: fmt.Sprintf("adding %s", a.URL)}, nil
		},
		Toggle: func(t commands.ToggleArgs) (commands.Result, error) {
			kind := model.Cadence(t.Kind)
			if !kind.IsValid() {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown review kind: %s", t.Kind),
				}
			}
			teaCmd = m.toggleBySlugCmd(t.Target, kind)
			return commands.Result{Message: fmt.Sprintf("toggling %s %s", t.Target, kind)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			view, ok := viewForSubject(s.Subject)
			if !ok {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("unknown subject: %s", s.Subject),
				}
			}
			m.CurrentView = view
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("showing %s", s.Subject)}, nil
		},
		Remove: func(r commands.RemoveArgs) (commands.Result, error) {
			teaCmd = m.removeBySlugCmd(r.Target)
			return commands.Result{Message: fmt.Sprintf("removing %s", r.Target)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, teaCmd
}

func viewForSubject(subject string) (View, bool) {
	switch subject {
	case "overview", "today":
		return ViewOverview, true
	case "pending":
		return ViewPending, true
	case "upcoming":
		return ViewUpcoming, true
	case "analytics", "stats":
		return ViewAnalytics, true
	default:
		return "", false
	}
}
