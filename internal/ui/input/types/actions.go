package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// OpenAction opens the category under the cursor
type OpenAction struct {
	Index int
}

func (a OpenAction) Type() string { return "open" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// BeginSearchAction is emitted when the search box opens
type BeginSearchAction struct{}

func (a BeginSearchAction) Type() string { return "begin_search" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// RefreshAction re-activates the category screen. It is also the retry
// path from the offline screen and after an error.
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

// ScrollAction scrolls the detail viewport
type ScrollAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a ScrollAction) Type() string { return "scroll" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// CopyAction copies to the system clipboard: the key of the category
// at Index on the grid, or the open list on the detail screen.
type CopyAction struct {
	Index  int
	Detail bool
}

func (a CopyAction) Type() string { return "copy" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
