package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"bookshelf/internal/domain"
)

// DetailRenderer turns a best-seller list into styled terminal text
// through glamour. Renderers are cached per wrap width.
type DetailRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewDetailRenderer creates a renderer using a glamour standard style
// name such as "dark", "light" or "notty".
func NewDetailRenderer(style string) *DetailRenderer {
	if style == "" {
		style = "dark"
	}
	return &DetailRenderer{style: style}
}

// Render renders markdown wrapped at width
func (d *DetailRenderer) Render(markdown string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	if d.renderer == nil || d.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(d.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		d.renderer = r
		d.width = width
	}
	return d.renderer.Render(markdown)
}

// DetailMarkdown formats a best-seller list as markdown
func DetailMarkdown(list domain.BestSellerList) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", list.Category.DisplayName)

	var meta []string
	if !list.PublishedDate.IsZero() {
		meta = append(meta, "Published "+list.PublishedDate.Format("January 2, 2006"))
	}
	if list.Category.Updated != "" {
		meta = append(meta, "updated "+strings.ToLower(list.Category.Updated))
	}
	if len(meta) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(meta, " · "))
	}

	if len(list.Books) == 0 {
		b.WriteString("No books on this list right now.\n")
		return b.String()
	}

	for _, book := range list.Books {
		fmt.Fprintf(&b, "## %d. %s\n\n", book.Rank, book.Title)

		details := []string{"**by " + book.Author + "**"}
		if book.Publisher != "" {
			details = append(details, book.Publisher)
		}
		switch {
		case book.WeeksOnList == 1:
			details = append(details, "1 week on list")
		case book.WeeksOnList > 1:
			details = append(details, fmt.Sprintf("%d weeks on list", book.WeeksOnList))
		default:
			details = append(details, "new this week")
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(details, " · "))

		if book.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", book.Description)
		}
		if book.ISBN13 != "" {
			fmt.Fprintf(&b, "`ISBN %s`\n\n", book.ISBN13)
		}
	}
	return b.String()
}
