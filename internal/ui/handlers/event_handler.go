package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/eventbus"
)

// DefaultStatusTTL is how long a status message stays in the footer
const DefaultStatusTTL = 3 * time.Second

// ClearStatusMsg expires the status message it was scheduled for
type ClearStatusMsg struct {
	seq int
}

// StatusLine holds the footer status message. Each Set schedules its
// own expiry; an expiry for an older message leaves a newer one alone.
type StatusLine struct {
	text string
	seq  int
}

// Set shows text and returns the command that clears it after ttl
func (s *StatusLine) Set(text string, ttl time.Duration) tea.Cmd {
	s.seq++
	s.text = text
	seq := s.seq
	return tea.Tick(ttl, func(time.Time) tea.Msg { return ClearStatusMsg{seq: seq} })
}

// Clear applies an expiry
func (s *StatusLine) Clear(msg ClearStatusMsg) {
	if msg.seq == s.seq {
		s.text = ""
	}
}

// Text returns the current message
func (s *StatusLine) Text() string {
	return s.text
}

// EventHandler handles domain events and updates the status line
type EventHandler struct {
	status *StatusLine
	ttl    time.Duration
}

// NewEventHandler creates a new event handler
func NewEventHandler(status *StatusLine, ttl time.Duration) *EventHandler {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &EventHandler{status: status, ttl: ttl}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.CategoriesFetchCompletedEvent:
		// failures are reported by the alert
		if e.Err != nil {
			return nil
		}
		return h.status.Set(fmt.Sprintf("Loaded %d categories in %s", e.Count, e.Duration.Round(time.Millisecond)), h.ttl)

	case eventbus.BestSellersFetchCompletedEvent:
		if e.Err != nil {
			return nil
		}
		return h.status.Set(fmt.Sprintf("Loaded %d books", e.Count), h.ttl)

	case eventbus.ReachabilityChangedEvent:
		if e.Reachable {
			return h.status.Set("Connection restored", h.ttl)
		}
		return h.status.Set("Connection lost", h.ttl)

	case eventbus.ConfigSavedEvent:
		return h.status.Set("Config saved to "+e.Path, h.ttl)
	}

	return nil
}
