package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	alertTextWidth = 52 // AlertBox width minus horizontal padding
	alertMaxLines  = 6
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert renders a dismissible error box. Long messages are
// wrapped and cut after alertMaxLines lines.
func (pr *PopupRenderer) RenderAlert(title, message string) string {
	lines := strings.Split(wordwrap.String(message, alertTextWidth), "\n")
	if len(lines) > alertMaxLines {
		lines = append(lines[:alertMaxLines-1], "…")
	}

	body := pr.styles.AlertTitle.Render(title) + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		pr.styles.Dim.Render("enter/esc dismiss • r retry")
	return pr.styles.AlertBox.Render(body)
}

// RenderPopupOverlay centers popup over a greyed out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, height, width int) string {
	if width <= 0 {
		width = lipgloss.Width(mainContent)
	}
	if height <= 0 {
		height = lipgloss.Height(mainContent)
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)
	x := (width - popupW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(popupLines)) / 2
	if y < 0 {
		y = 0
	}

	// Replace whole lines under the popup; keep the rest of the screen
	for i, line := range popupLines {
		row := y + i
		if row >= len(base) {
			base = append(base, "")
		}
		base[row] = strings.Repeat(" ", x) + line
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		plain := ansiRE.ReplaceAllString(line, "")
		if plain == "" {
			lines[i] = ""
			continue
		}
		lines[i] = grey.Render(plain)
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes color and style codes
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
