package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// RenderHelpContent generates the full key reference shown in the pager
func RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(k, desc string) string {
		return "  " + keyStyle.Render(fmt.Sprintf("%-12s", k)) + " " + descStyle.Render(desc) + "\n"
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("bookshelf help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Categories"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓, j/k", "Move between rows"))
	help.WriteString(row("←/→, h/l", "Move between columns"))
	help.WriteString(row("PgUp/PgDn", "Page up/down"))
	help.WriteString(row("gg/G", "Go to first/last category"))
	help.WriteString(row("Enter", "Open the current best-seller list"))
	help.WriteString(row("r", "Refresh categories"))
	help.WriteString(row("y", "Copy the category key"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	help.WriteString(row("/", "Search categories"))
	help.WriteString(row("Enter", "Keep the filter and leave the search box"))
	help.WriteString(row("Esc", "Dismiss search and clear the query"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Best-seller list"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓, j/k", "Scroll"))
	help.WriteString(row("p", "Open the list in the pager"))
	help.WriteString(row("y", "Copy the list as markdown"))
	help.WriteString(row("Esc", "Back to categories"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Offline"))
	help.WriteString("\n")
	help.WriteString(row("r", "Retry once the network is back"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("?", "Show this help"))
	help.WriteString(strings.TrimSuffix(row("q", "Quit"), "\n"))

	return help.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager hands the terminal to ov until the user quits it
func (h *PagerOps) ShowInPager(content string) error {
	if h == nil || h.program == nil {
		return errNoProgram
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
