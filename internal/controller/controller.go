// Package controller owns the category list's view state. It reconciles
// fetch results, reachability transitions and the search query into the
// single state the renderer draws.
//
// A Controller is not safe for concurrent use. All methods run on the
// owner's goroutine; asynchronous results reach it through the
// Dispatcher passed to New.
package controller

import (
	"context"
	"fmt"
	"log"

	"bookshelf/internal/catalog"
	"bookshelf/internal/domain"
)

// DataSource fetches the category collection. done is called exactly
// once, from any goroutine, with a non-nil collection or a non-nil error.
type DataSource interface {
	FetchCategories(ctx context.Context, done func([]domain.Category, error))
}

// Reachability reports connectivity. OnChange handlers fire on every
// transition; the returned function removes the handler.
type Reachability interface {
	Reachable() bool
	OnChange(fn func(reachable bool)) (unsubscribe func())
}

// Listener is told about every state change. Renderers may coalesce.
type Listener func(ViewState)

// Option configures a Controller
type Option func(*Controller)

// WithListener registers the change listener
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// Controller is the source of truth for the category screen
type Controller struct {
	source      DataSource
	reach       Reachability
	dispatch    Dispatcher
	listener    Listener
	unsubscribe func()

	state LoadState
	err   error

	all       []domain.Category
	filtered  []domain.Category
	query     string
	searching bool

	attempt      uint64 // number of the most recent fetch
	inFlight     bool
	lastReported bool // last reachability value delivered by the monitor
}

// New creates a controller in StateIdle with an empty collection and
// registers its one reachability subscription.
func New(source DataSource, reach Reachability, dispatch Dispatcher, opts ...Option) *Controller {
	c := &Controller{
		source:       source,
		reach:        reach,
		dispatch:     dispatch,
		all:          []domain.Category{},
		filtered:     []domain.Category{},
		lastReported: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.unsubscribe = reach.OnChange(func(reachable bool) {
		dispatch.Post(func() { c.OnReachabilityChanged(reachable) })
	})

	return c
}

// Close drops the reachability subscription
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Activate is the screen's entry point and the only retry path. It
// checks reachability and either starts a fetch or moves to Offline.
// While a fetch is in flight it never starts another one. ctx bounds
// the fetch this call starts.
func (c *Controller) Activate(ctx context.Context) {
	reachable := c.reach.Reachable()
	c.lastReported = reachable

	if !reachable {
		log.Printf("Controller: activate while unreachable")
		c.setState(StateOffline, nil)
		c.notify()
		return
	}

	if c.inFlight {
		// coalesce onto the pending fetch
		if c.state != StateLoading {
			c.setState(StateLoading, nil)
			c.notify()
		}
		return
	}

	c.attempt++
	c.inFlight = true
	attempt := c.attempt
	c.setState(StateLoading, nil)
	c.notify()

	log.Printf("Controller: starting fetch attempt %d", attempt)
	c.source.FetchCategories(ctx, func(items []domain.Category, err error) {
		c.dispatch.Post(func() { c.OnFetchCompleted(attempt, items, err) })
	})
}

// OnFetchCompleted applies the result of fetch attempt. Results for
// superseded or already completed attempts are ignored. While Offline
// a success still replaces the stored collection but the state stays
// Offline until the next Activate.
func (c *Controller) OnFetchCompleted(attempt uint64, items []domain.Category, err error) {
	if attempt != c.attempt || !c.inFlight {
		log.Printf("Controller: ignoring completion of attempt %d (current %d, in flight %v)", attempt, c.attempt, c.inFlight)
		return
	}
	c.inFlight = false

	if err != nil {
		log.Printf("Controller: fetch attempt %d failed: %v", attempt, err)
		if c.state != StateOffline {
			c.setState(StateError, err)
		}
		c.notify()
		return
	}

	if items == nil {
		items = []domain.Category{}
	}
	c.all = items
	c.refilter()
	log.Printf("Controller: fetch attempt %d returned %d categories", attempt, len(items))

	if c.state != StateOffline {
		c.setState(StateLoaded, nil)
	}
	c.notify()
}

// OnReachabilityChanged handles a monitor transition. Losing the
// network forces Offline from any state. Regaining it changes nothing
// until the next Activate.
func (c *Controller) OnReachabilityChanged(reachable bool) {
	c.lastReported = reachable

	if reachable {
		log.Printf("Controller: network reachable again")
		c.notify()
		return
	}

	c.setState(StateOffline, nil)
	c.notify()
}

// OnQueryChanged replaces the query and recomputes the displayed set
func (c *Controller) OnQueryChanged(text string) {
	if text == c.query {
		return
	}
	c.query = text
	c.refilter()
	c.notify()
}

// BeginSearch enters search mode. The displayed set becomes the
// filtered set, which equals the full set until a query is typed.
func (c *Controller) BeginSearch() {
	if c.searching {
		return
	}
	c.searching = true
	c.notify()
}

// DismissSearch leaves search mode and clears the query
func (c *Controller) DismissSearch() {
	if !c.searching && c.query == "" {
		return
	}
	c.searching = false
	c.query = ""
	c.refilter()
	c.notify()
}

// ItemCount returns the size of the displayed set
func (c *Controller) ItemCount() int {
	return len(c.displayed())
}

// Item returns the category at index i of the displayed set
func (c *Controller) Item(i int) (domain.Category, error) {
	items := c.displayed()
	if i < 0 || i >= len(items) {
		return domain.Category{}, fmt.Errorf("%w: index %d, %d items displayed", ErrIndexOutOfRange, i, len(items))
	}
	return items[i], nil
}

// Selected resolves a user selection against the displayed set, for
// handing to the navigation collaborator.
func (c *Controller) Selected(i int) (domain.Category, error) {
	cat, err := c.Item(i)
	if err != nil {
		log.Printf("Controller: rejected selection: %v", err)
		return domain.Category{}, err
	}
	log.Printf("Controller: selected %q", cat.Key)
	return cat, nil
}

// State returns the current load state
func (c *Controller) State() LoadState {
	return c.state
}

// Err returns the reason for StateError, nil otherwise
func (c *Controller) Err() error {
	return c.err
}

// Query returns the current query
func (c *Controller) Query() string {
	return c.query
}

// Searching reports whether the filtered set is displayed
func (c *Controller) Searching() bool {
	return c.searching || c.query != ""
}

// PlaceholderVisible reports whether skeleton cells should be shown:
// only before the first data arrives, never over a populated list.
func (c *Controller) PlaceholderVisible() bool {
	return len(c.all) == 0 && (c.state == StateIdle || c.state == StateLoading)
}

// ViewState derives the render-ready state
func (c *Controller) ViewState() ViewState {
	offline := c.state == StateOffline
	return ViewState{
		Items:              c.displayed(),
		Total:              len(c.all),
		State:              c.state,
		Err:                c.err,
		Query:              c.query,
		Searching:          c.Searching(),
		PlaceholderVisible: c.PlaceholderVisible(),
		Offline:            offline,
		Refreshing:         c.inFlight && len(c.all) > 0 && c.state == StateLoading,
		NetworkRestored:    offline && c.lastReported,
	}
}

func (c *Controller) displayed() []domain.Category {
	if c.Searching() {
		return c.filtered
	}
	return c.all
}

func (c *Controller) refilter() {
	c.filtered = catalog.Filter(c.all, c.query)
}

func (c *Controller) setState(s LoadState, err error) {
	if s != c.state {
		log.Printf("Controller: %s -> %s", c.state, s)
	}
	c.state = s
	c.err = err
}

func (c *Controller) notify() {
	if c.listener != nil {
		c.listener(c.ViewState())
	}
}
