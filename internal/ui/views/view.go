package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bookshelf/internal/controller"
)

// chromeLines is everything around the grid: container padding, the
// title, the input line, the spacer and the footer.
const chromeLines = 6

// GridRows returns how many grid rows fit in a terminal of height lines
func GridRows(height int) int {
	rows := height - chromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

// DetailView is the render state of the best-seller screen
type DetailView struct {
	Title         string
	Loading       bool
	Err           error
	Content       string // viewport output
	ScrollPercent float64
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	List             controller.ViewState
	Selected         int
	RowOffset        int
	ViewportRows     int
	Columns          int
	PlaceholderCells int

	Spinner       string
	InputMode     string // "search" while typing a query
	Prompt        string
	TextInput     string
	StatusMessage string
	HelpView      string

	Alert  error
	Detail *DetailView
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	grid        *GridRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		grid:        NewGridRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.List.Offline && state.Detail == nil {
		return r.RenderOffline(state.Width, state.Height, state.List.NetworkRestored)
	}

	var body string
	if state.Detail != nil {
		body = r.renderDetail(state)
	} else {
		body = r.renderCategories(state)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(body)

	if state.Alert != nil {
		popup := r.popupRender.RenderAlert("Something went wrong", state.Alert.Error())
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, state.Width)
	}
	return finalContent
}

func (r *Renderer) renderCategories(state ViewState) string {
	content := &strings.Builder{}
	list := state.List

	// Title with loading indicator and filter
	logo := r.styles.Title.Render("bookshelf") + r.styles.Dim.Render("  NYT best sellers")
	var indicators []string
	switch {
	case list.Refreshing:
		indicators = append(indicators, r.styles.StatusLoading.Render(state.Spinner+" Refreshing"))
	case list.State == controller.StateLoading:
		indicators = append(indicators, r.styles.StatusLoading.Render(state.Spinner+" Loading"))
	case list.State == controller.StateError:
		indicators = append(indicators, r.styles.StatusError.Render("✗ Load failed"))
	}
	if list.Searching && list.Query != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Search: %s] %d/%d", list.Query, len(list.Items), list.Total)))
	}
	content.WriteString(r.titleLine(logo, strings.Join(indicators, "  "), state.Width))
	content.WriteString("\n")

	// Input line
	if state.InputMode == "search" {
		content.WriteString(r.styles.Prompt.Render(state.Prompt))
		content.WriteString(state.TextInput)
	}
	content.WriteString("\n")

	// Grid
	rows := state.ViewportRows
	if rows < 1 {
		rows = GridRows(state.Height)
	}
	width := state.Width - 4
	if width <= 0 {
		width = 76
	}
	columns := state.Columns
	if columns < 1 {
		columns = 1
	}
	cellWidth := CellWidth(width, columns)

	var lines []string
	switch {
	case list.PlaceholderVisible:
		lines = r.grid.RenderSkeleton(state.PlaceholderCells, columns, cellWidth, rows)
	case len(list.Items) == 0:
		lines = []string{r.emptyMessage(list)}
	default:
		lines = r.grid.RenderRows(list.Items, state.Selected, state.RowOffset, rows, columns, cellWidth, list.Query)
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	content.WriteString(strings.Join(lines, "\n"))
	content.WriteString("\n\n")

	// Footer
	content.WriteString(r.footer(state, columns, rows))
	return content.String()
}

func (r *Renderer) emptyMessage(list controller.ViewState) string {
	switch {
	case list.State == controller.StateError:
		return r.styles.StatusError.Render("Could not load categories. Press r to retry.")
	case list.Searching && list.Total > 0:
		return r.styles.Dim.Render(fmt.Sprintf("No categories match %q", list.Query))
	default:
		return r.styles.Dim.Render("No best-seller categories are available right now.")
	}
}

func (r *Renderer) footer(state ViewState, columns, rows int) string {
	var parts []string
	if state.StatusMessage != "" {
		parts = append(parts, r.styles.Status.Render(state.StatusMessage))
	}

	totalRows := (len(state.List.Items) + columns - 1) / columns
	if totalRows > rows {
		last := state.RowOffset + rows
		if last > totalRows {
			last = totalRows
		}
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("rows %d-%d of %d", state.RowOffset+1, last, totalRows)))
	}

	if state.HelpView != "" {
		parts = append(parts, state.HelpView)
	} else {
		parts = append(parts, r.styles.Help.Render("Press ? for help"))
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) renderDetail(state ViewState) string {
	d := state.Detail
	content := &strings.Builder{}

	logo := r.styles.Title.Render("bookshelf") + r.styles.Dim.Render(" › ") + r.styles.Highlight.Render(d.Title)
	right := ""
	if d.Loading {
		right = r.styles.StatusLoading.Render(state.Spinner + " Loading")
	}
	content.WriteString(r.titleLine(logo, right, state.Width))
	content.WriteString("\n\n")

	switch {
	case d.Err != nil:
		content.WriteString(r.styles.StatusError.Render("Could not load this list: " + d.Err.Error()))
	case d.Loading && d.Content == "":
		content.WriteString(r.styles.Dim.Render("Fetching the current list..."))
	default:
		content.WriteString(d.Content)
	}
	content.WriteString("\n\n")

	footer := r.styles.Help.Render("esc back • p pager • ↑/↓ scroll")
	if d.Content != "" {
		footer += r.styles.Scroll.Render(fmt.Sprintf("  %3.0f%%", d.ScrollPercent*100))
	}
	content.WriteString(footer)
	return content.String()
}

// titleLine right-aligns right next to left within the container width
func (r *Renderer) titleLine(left, right string, termWidth int) string {
	if right == "" {
		return left
	}
	if termWidth <= 0 {
		termWidth = 80
	}
	available := termWidth - 4 // main container padding
	padding := available - lipgloss.Width(left) - lipgloss.Width(right)
	if padding > 0 {
		return left + strings.Repeat(" ", padding) + right
	}
	return left + "  " + right
}

// DetailViewportHeight returns the lines available to the detail viewport
func DetailViewportHeight(height int) int {
	h := height - chromeLines - 1
	if h < 3 {
		h = 3
	}
	return h
}
