package views

import (
	"github.com/charmbracelet/lipgloss"
)

// RenderOffline renders the full-screen offline notice. restored is true
// once the network is back but nothing has been retried yet.
func (r *Renderer) RenderOffline(width, height int, restored bool) string {
	title := r.styles.StatusWarning.Bold(true).Render("You're offline")
	body := "Best-seller categories need a network connection."
	hint := r.styles.Dim.Render("r retry • q quit")
	if restored {
		body = "The connection is back."
		hint = r.styles.StatusSuccess.Render("press r to load categories")
	}

	box := r.styles.OfflineBox.Render(title + "\n\n" + body + "\n\n" + hint)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
