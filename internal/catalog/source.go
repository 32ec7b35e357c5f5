package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"bookshelf/internal/domain"
)

// ErrFetchPanicked is reported to the callback when the fetcher panics
var ErrFetchPanicked = errors.New("category fetch panicked")

// Fetcher performs one blocking category fetch
type Fetcher interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context) ([]domain.Category, error)

func (f FetcherFunc) Categories(ctx context.Context) ([]domain.Category, error) {
	return f(ctx)
}

// AsyncSource runs a Fetcher in the background and reports through a
// single-fire callback. The callback gets exactly one of a non-nil
// collection or a non-nil error, never both and never neither.
type AsyncSource struct {
	fetcher Fetcher
	timeout time.Duration
}

// NewAsyncSource wraps fetcher. A positive timeout bounds each fetch.
func NewAsyncSource(fetcher Fetcher, timeout time.Duration) *AsyncSource {
	return &AsyncSource{
		fetcher: fetcher,
		timeout: timeout,
	}
}

// FetchCategories starts a fetch and returns immediately
func (s *AsyncSource) FetchCategories(ctx context.Context, done func([]domain.Category, error)) {
	go func() {
		items, err := s.run(ctx)
		done(items, err)
	}()
}

func (s *AsyncSource) run(ctx context.Context) (items []domain.Category, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Category fetch panic: %v\nStack: %s", r, debug.Stack())
			items, err = nil, fmt.Errorf("%w: %v", ErrFetchPanicked, r)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	items, err = s.fetcher.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Category{}
	}
	return items, nil
}
