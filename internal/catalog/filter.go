package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"bookshelf/internal/domain"
)

// Filter returns the categories whose DisplayName contains query,
// compared under Unicode case folding. Relative order is preserved and
// an empty query returns items unchanged. The input is never modified.
func Filter(items []domain.Category, query string) []domain.Category {
	if query == "" {
		return items
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matched := make([]domain.Category, 0, len(items))
	for _, c := range items {
		if strings.Contains(fold.String(c.DisplayName), needle) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Matches reports whether a single category passes Filter for query
func Matches(c domain.Category, query string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(c.DisplayName), fold.String(query))
}
