package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/ui/input/types"
)

// DetailMode drives the best-seller list of one category
type DetailMode struct {
	keys types.KeyMap
}

func NewDetailMode(keys types.KeyMap) *DetailMode {
	return &DetailMode{keys: keys}
}

func (m *DetailMode) Name() string {
	return "detail"
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	case key.Matches(msg, m.keys.Back):
		return []types.Action{
			types.BackAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.ScrollAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.ScrollAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Home), msg.String() == "g":
		return []types.Action{types.ScrollAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.End):
		return []types.Action{types.ScrollAction{Direction: "end"}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	case key.Matches(msg, m.keys.Copy):
		return []types.Action{types.CopyAction{Detail: true}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
