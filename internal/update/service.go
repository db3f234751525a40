package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/tracker"
)

// The tea.Cmds below are the only places the TUI touches the service.
// Each one snapshots its inputs before the closure runs so the command
// stays valid even if the model value it came from is gone.

func (m Model) refreshCmd() tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, owner := m.service, m.OwnerID
	return func() tea.Msg {
		snap, err := svc.Snapshot(context.Background(), owner, dateutil.Today(time.Now()))
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

func (m Model) addCmd(rawURL string) tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, owner := m.service, m.OwnerID
	return func() tea.Msg {
		item, err := svc.Create(context.Background(), owner, rawURL, dateutil.Today(time.Now()))
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return ItemAddedMsg{Item: item}
	}
}

func (m Model) toggleCmd(itemID string, kind model.Cadence) tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, owner := m.service, m.OwnerID
	return func() tea.Msg {
		item, err := svc.Toggle(context.Background(), owner, itemID, kind, dateutil.Today(time.Now()))
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return ReviewToggledMsg{Item: item, Kind: kind}
	}
}

// toggleBySlugCmd resolves a palette target that may be a slug rather
// than an item ID.
func (m Model) toggleBySlugCmd(target string, kind model.Cadence) tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, owner := m.service, m.OwnerID
	return func() tea.Msg {
		item, err := resolveTarget(svc, owner, target)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		toggled, err := svc.Toggle(context.Background(), owner, item.ID, kind, dateutil.Today(time.Now()))
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return ReviewToggledMsg{Item: toggled, Kind: kind}
	}
}

func (m Model) removeBySlugCmd(target string) tea.Cmd {
	if m.service == nil {
		return nil
	}
	svc, owner := m.service, m.OwnerID
	return func() tea.Msg {
		item, err := resolveTarget(svc, owner, target)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		if err := svc.Remove(context.Background(), owner, item.ID); err != nil {
			return AppErrorMsg{Err: err}
		}
		return ItemRemovedMsg{Target: item.Slug}
	}
}

func resolveTarget(svc *tracker.Service, owner, target string) (model.TrackedItem, error) {
	items, err := svc.List(context.Background(), owner)
	if err != nil {
		return model.TrackedItem{}, err
	}
	for _, item := range items {
		if item.Slug == target || item.ID == target {
			return item, nil
		}
	}
	return model.TrackedItem{}, fmt.Errorf("no tracked problem matches %q", target)
}
