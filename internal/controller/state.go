package controller

import (
	"errors"

	"bookshelf/internal/domain"
)

// ErrIndexOutOfRange is returned when an index does not address the
// currently displayed set, usually a stale index from an earlier layout.
var ErrIndexOutOfRange = errors.New("index out of range")

// LoadState is the controller's single authoritative load phase
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateLoaded
	StateOffline
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateOffline:
		return "offline"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is everything the renderer needs for one frame. It is
// computed on demand and never stored.
type ViewState struct {
	Items     []domain.Category // filtered while searching, full otherwise
	Total     int               // size of the full collection
	State     LoadState
	Err       error // reason when State is StateError
	Query     string
	Searching bool

	PlaceholderVisible bool
	Offline            bool
	Refreshing         bool // fetch in flight behind an already populated list
	NetworkRestored    bool // offline, but the monitor has since reported reachable
}
