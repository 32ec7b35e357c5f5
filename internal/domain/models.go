package domain

import "time"

// Category is one best-seller list as published by the data source.
// Values are immutable once fetched; identity is Key.
type Category struct {
	Key         string // list_name_encoded, used to address the list
	DisplayName string // name shown in the grid and matched by search
	ListName    string
	Updated     string // publication cadence, e.g. "WEEKLY"

	OldestPublished time.Time
	NewestPublished time.Time
}

// Book is one entry of a category's current best-seller list
type Book struct {
	Rank        int
	Title       string
	Author      string
	Description string
	Publisher   string
	ISBN13      string
	WeeksOnList int
}

// BestSellerList is the current list for a single category
type BestSellerList struct {
	Category      Category
	PublishedDate time.Time
	Books         []Book
}
