package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bookshelf/internal/domain"
)

const cellGap = "  "

// GridRenderer lays categories out row-major in fixed-width cells
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// CellWidth returns the width of one cell for the given total width
func CellWidth(width, columns int) int {
	if columns < 1 {
		columns = 1
	}
	w := (width - runewidth.StringWidth(cellGap)*(columns-1)) / columns
	if w < 8 {
		w = 8
	}
	return w
}

// RenderRows renders rows [rowOffset, rowOffset+rows) of the grid
func (r *GridRenderer) RenderRows(items []domain.Category, selected, rowOffset, rows, columns, cellWidth int, query string) []string {
	var lines []string
	for row := rowOffset; row < rowOffset+rows; row++ {
		start := row * columns
		if start >= len(items) {
			break
		}
		cells := make([]string, 0, columns)
		for i := start; i < start+columns && i < len(items); i++ {
			cells = append(cells, r.renderCell(items[i], i == selected, cellWidth, query))
		}
		lines = append(lines, strings.Join(cells, cellGap))
	}
	return lines
}

// RenderSkeleton renders count placeholder cells
func (r *GridRenderer) RenderSkeleton(count, columns, cellWidth, maxRows int) []string {
	var lines []string
	for i := 0; i < count; i += columns {
		if len(lines) == maxRows {
			break
		}
		n := columns
		if count-i < n {
			n = count - i
		}
		cells := make([]string, n)
		for j := range cells {
			// vary the bar length so the skeleton reads as text
			barWidth := cellWidth - 2 - ((i+j)*3)%(cellWidth/3+1)
			if barWidth < 1 {
				barWidth = 1
			}
			bar := strings.Repeat("░", barWidth)
			cells[j] = r.styles.Skeleton.Render(runewidth.FillRight("  "+bar, cellWidth))
		}
		lines = append(lines, strings.Join(cells, cellGap))
	}
	return lines
}

func (r *GridRenderer) renderCell(c domain.Category, isSelected bool, width int, query string) string {
	marker := "  "
	style := r.styles.Cell
	if isSelected {
		marker = "▸ "
		style = r.styles.CellSelected
	}

	name := runewidth.Truncate(c.DisplayName, width-runewidth.StringWidth(marker), "…")
	padding := width - runewidth.StringWidth(marker) - runewidth.StringWidth(name)
	if padding < 0 {
		padding = 0
	}

	return style.Render(marker) +
		highlightMatch(name, query, style.Foreground(lipgloss.Color("226")), style) +
		style.Render(strings.Repeat(" ", padding))
}

// highlightMatch highlights the first match of query within text. Matches
// whose case folding changes the byte length are left unhighlighted.
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	if query == "" {
		return normalStyle.Render(text)
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
