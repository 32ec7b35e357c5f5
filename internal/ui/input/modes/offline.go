package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/ui/input/types"
)

// OfflineMode is active while the offline notice covers the screen.
// Only retry, help and quit are available.
type OfflineMode struct {
	keys types.KeyMap
}

func NewOfflineMode(keys types.KeyMap) *OfflineMode {
	return &OfflineMode{keys: keys}
}

func (m *OfflineMode) Name() string {
	return "offline"
}

func (m *OfflineMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *OfflineMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *OfflineMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	case key.Matches(msg, m.keys.Refresh), key.Matches(msg, m.keys.Open):
		return []types.Action{types.RefreshAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	// swallow everything else
	return nil, true
}
