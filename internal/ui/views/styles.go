package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Prompt        lipgloss.Style
	AlertBox      lipgloss.Style
	AlertTitle    lipgloss.Style
	OfflineBox    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Cell          lipgloss.Style
	CellSelected  lipgloss.Style
	Skeleton      lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2).
			Width(56),
		AlertTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		OfflineBox: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 4).
			Align(lipgloss.Center),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
		Scroll: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cell:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CellSelected:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("231")).Bold(true),
		Skeleton:      lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
