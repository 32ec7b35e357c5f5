package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/controller"
	"bookshelf/internal/domain"
)

func cats(names ...string) []domain.Category {
	out := make([]domain.Category, len(names))
	for i, n := range names {
		out[i] = domain.Category{Key: strings.ToLower(n), DisplayName: n}
	}
	return out
}

func TestSkeletonCellCount(t *testing.T) {
	g := NewGridRenderer(NewStyles())

	lines := g.RenderSkeleton(25, 2, 20, 100)
	assert.Len(t, lines, 13)

	total := 0
	for _, l := range lines {
		total += strings.Count(StripANSI(l), "  ░") // each cell starts with two spaces then the bar
	}
	assert.Equal(t, 25, total)

	assert.Len(t, g.RenderSkeleton(25, 2, 20, 4), 4)
	assert.Empty(t, g.RenderSkeleton(0, 2, 20, 4))
}

func TestRenderRowsWindow(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	items := cats("A", "B", "C", "D", "E")

	lines := g.RenderRows(items, 2, 1, 5, 2, 10, "")
	require.Len(t, lines, 2)
	assert.Contains(t, StripANSI(lines[0]), "▸ C")
	assert.Contains(t, StripANSI(lines[0]), "D")
	assert.Contains(t, StripANSI(lines[1]), "E")
}

func TestCellsHaveEqualWidth(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	items := cats("Combined Print and E-Book Nonfiction With A Very Long Name", "Travel")

	lines := g.RenderRows(items, 0, 0, 1, 2, 20, "")
	require.Len(t, lines, 1)
	assert.Equal(t, 20*2+len(cellGap), lipgloss.Width(lines[0]))
	assert.Contains(t, StripANSI(lines[0]), "…")
}

func TestCellWidth(t *testing.T) {
	assert.Equal(t, 47, CellWidth(96, 2))
	assert.Equal(t, 96, CellWidth(96, 1))
	assert.Equal(t, 8, CellWidth(10, 4))
	assert.Equal(t, 96, CellWidth(96, 0))
}

func TestHighlightMatchKeepsText(t *testing.T) {
	s := NewStyles()
	out := highlightMatch("Hardcover Fiction", "FIC", s.Highlight, s.Cell)
	assert.Equal(t, "Hardcover Fiction", StripANSI(out))

	// folding that changes length is rendered plain
	out = highlightMatch("Straße", "STRASSE", s.Highlight, s.Cell)
	assert.Equal(t, "Straße", StripANSI(out))
}

func TestRenderPlaceholderThenList(t *testing.T) {
	r := NewRenderer()

	out := StripANSI(r.Render(ViewState{
		Width: 80, Height: 24, Columns: 2, PlaceholderCells: 6,
		List: controller.ViewState{State: controller.StateLoading, PlaceholderVisible: true},
	}))
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "Loading")

	out = StripANSI(r.Render(ViewState{
		Width: 80, Height: 24, Columns: 2, PlaceholderCells: 6,
		List: controller.ViewState{State: controller.StateLoaded, Items: cats("Science"), Total: 1},
	}))
	assert.NotContains(t, out, "░")
	assert.Contains(t, out, "▸ Science")
}

func TestRenderOffline(t *testing.T) {
	r := NewRenderer()
	out := StripANSI(r.Render(ViewState{
		Width: 80, Height: 24,
		List: controller.ViewState{State: controller.StateOffline, Offline: true, Items: cats("Science"), Total: 1},
	}))
	assert.Contains(t, out, "You're offline")
	assert.NotContains(t, out, "Science")

	out = StripANSI(r.RenderOffline(0, 0, true))
	assert.Contains(t, out, "The connection is back")
}

func TestRenderAlertOverlay(t *testing.T) {
	r := NewRenderer()
	out := StripANSI(r.Render(ViewState{
		Width: 100, Height: 30, Columns: 2,
		List:  controller.ViewState{State: controller.StateError, Items: cats("Science"), Total: 1},
		Alert: errors.New("nyt: rate limited"),
	}))
	assert.Contains(t, out, "Something went wrong")
	assert.Contains(t, out, "nyt: rate limited")
	assert.Contains(t, out, "Science")
}

func TestDetailMarkdown(t *testing.T) {
	md := DetailMarkdown(domain.BestSellerList{
		Category:      domain.Category{DisplayName: "Hardcover Fiction", Updated: "WEEKLY"},
		PublishedDate: time.Date(2016, 3, 20, 0, 0, 0, 0, time.UTC),
		Books: []domain.Book{
			{Rank: 1, Title: "THE NIGHTINGALE", Author: "Kristin Hannah", Publisher: "St. Martin's", WeeksOnList: 1, ISBN13: "9780312577223"},
			{Rank: 2, Title: "NEW ONE", Author: "Someone"},
		},
	})

	assert.Contains(t, md, "# Hardcover Fiction")
	assert.Contains(t, md, "_Published March 20, 2016 · updated weekly_")
	assert.Contains(t, md, "## 1. THE NIGHTINGALE")
	assert.Contains(t, md, "**by Kristin Hannah** · St. Martin's · 1 week on list")
	assert.Contains(t, md, "`ISBN 9780312577223`")
	assert.Contains(t, md, "**by Someone** · new this week")

	empty := DetailMarkdown(domain.BestSellerList{Category: domain.Category{DisplayName: "Travel"}})
	assert.Contains(t, empty, "No books on this list right now.")
}

func TestDetailRendererRendersMarkdown(t *testing.T) {
	d := NewDetailRenderer("notty")
	out, err := d.Render("# Travel\n\nA list.\n", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "A list.")
}

func TestGridRows(t *testing.T) {
	assert.Equal(t, 24, GridRows(30))
	assert.Equal(t, 1, GridRows(3))
}

func TestRenderAlertWrapsLongMessages(t *testing.T) {
	p := NewPopupRenderer(NewStyles())

	msg := strings.Repeat("upstream said no ", 40)
	out := StripANSI(p.RenderAlert("Something went wrong", msg))

	assert.Contains(t, out, "…")
	assert.LessOrEqual(t, lipgloss.Width(out), 58)
	assert.Contains(t, out, "enter/esc dismiss")
}
