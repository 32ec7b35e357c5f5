package ui

import (
	"bookshelf/internal/domain"
	"bookshelf/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// activateMsg asks the model to activate the category screen
type activateMsg struct{}

// dispatchMsg signals that controller work is waiting in the queue
type dispatchMsg struct{}

// bestSellersMsg carries the result of a best-seller list fetch
type bestSellersMsg struct {
	key  string
	list domain.BestSellerList
	err  error
}

// debounceMsg fires once the search box has been idle long enough
type debounceMsg struct {
	gen   int
	query string
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
