// Package nyt is a client for the New York Times Books API
// (https://developer.nytimes.com/docs/books-product/1/overview).
package nyt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"bookshelf/internal/domain"
	"bookshelf/internal/eventbus"
)

var (
	ErrUnauthorized     = errors.New("nyt: api key rejected")
	ErrRateLimited      = errors.New("nyt: rate limited")
	ErrUnexpectedStatus = errors.New("nyt: unexpected response status")
)

const dateLayout = "2006-01-02"

// Client fetches list names and current lists. Concurrent identical
// requests share one round trip. The shared request is bounded by the
// client timeout, not by any one caller's context; a caller whose
// context ends stops waiting without failing the others.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	bus     eventbus.EventBus
	group   singleflight.Group
}

// NewClient creates a client. bus may be nil.
func NewClient(baseURL, apiKey string, timeout time.Duration, bus eventbus.EventBus) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
		bus: bus,
	}
}

type envelope[T any] struct {
	Status     string `json:"status"`
	NumResults int    `json:"num_results"`
	Results    T      `json:"results"`
	Fault      *struct {
		FaultString string `json:"faultstring"`
	} `json:"fault,omitempty"`
}

type listName struct {
	ListName            string `json:"list_name"`
	DisplayName         string `json:"display_name"`
	ListNameEncoded     string `json:"list_name_encoded"`
	OldestPublishedDate string `json:"oldest_published_date"`
	NewestPublishedDate string `json:"newest_published_date"`
	Updated             string `json:"updated"`
}

type currentList struct {
	ListName        string `json:"list_name"`
	ListNameEncoded string `json:"list_name_encoded"`
	DisplayName     string `json:"display_name"`
	Updated         string `json:"updated"`
	PublishedDate   string `json:"published_date"`
	Books           []book `json:"books"`
}

type book struct {
	Rank          int    `json:"rank"`
	WeeksOnList   int    `json:"weeks_on_list"`
	Publisher     string `json:"publisher"`
	Description   string `json:"description"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PrimaryISBN13 string `json:"primary_isbn13"`
}

// Categories fetches every best-seller list name
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	v, err, shared := c.shared(ctx, "names", func(ctx context.Context) (interface{}, error) {
		c.publish(eventbus.CategoriesFetchStartedEvent{})
		start := time.Now()

		var env envelope[[]listName]
		err := c.get(ctx, "/lists/names.json", &env)

		var cats []domain.Category
		if err == nil {
			cats = make([]domain.Category, 0, len(env.Results))
			for _, r := range env.Results {
				cats = append(cats, r.category())
			}
		}

		c.publish(eventbus.CategoriesFetchCompletedEvent{
			Count:    len(cats),
			Err:      err,
			Duration: time.Since(start),
		})
		return cats, err
	})
	if shared {
		log.Printf("NYT: list names request shared with a concurrent caller")
	}
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

// BestSellers fetches the current list for the category with key
func (c *Client) BestSellers(ctx context.Context, key string) (domain.BestSellerList, error) {
	v, err, _ := c.shared(ctx, "list:"+key, func(ctx context.Context) (interface{}, error) {
		var env envelope[currentList]
		err := c.get(ctx, "/lists/current/"+url.PathEscape(key)+".json", &env)

		var list domain.BestSellerList
		if err == nil {
			list = env.Results.list()
		}

		c.publish(eventbus.BestSellersFetchCompletedEvent{
			ListKey: key,
			Count:   len(list.Books),
			Err:     err,
		})
		return list, err
	})
	if err != nil {
		return domain.BestSellerList{}, err
	}
	return v.(domain.BestSellerList), nil
}

// shared runs fn once per key for all concurrent callers and waits for
// the result or for ctx to end
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error, bool) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case r := <-ch:
		return r.Val, r.Err, r.Shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to build request url: %w", err)
	}
	q := u.Query()
	q.Set("api-key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if s, ok := out.(interface{ status() (string, string) }); ok {
		status, fault := s.status()
		if status != "OK" {
			return fmt.Errorf("%w: status %q %s", ErrUnexpectedStatus, status, fault)
		}
	}
	return nil
}

func (e *envelope[T]) status() (string, string) {
	fault := ""
	if e.Fault != nil {
		fault = e.Fault.FaultString
	}
	return e.Status, fault
}

func (c *Client) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func (r listName) category() domain.Category {
	return domain.Category{
		Key:             r.ListNameEncoded,
		DisplayName:     r.DisplayName,
		ListName:        r.ListName,
		Updated:         r.Updated,
		OldestPublished: parseDate(r.OldestPublishedDate),
		NewestPublished: parseDate(r.NewestPublishedDate),
	}
}

func (r currentList) list() domain.BestSellerList {
	books := make([]domain.Book, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, domain.Book{
			Rank:        b.Rank,
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			Publisher:   b.Publisher,
			ISBN13:      b.PrimaryISBN13,
			WeeksOnList: b.WeeksOnList,
		})
	}
	return domain.BestSellerList{
		Category: domain.Category{
			Key:         r.ListNameEncoded,
			DisplayName: r.DisplayName,
			ListName:    r.ListName,
			Updated:     r.Updated,
		},
		PublishedDate: parseDate(r.PublishedDate),
		Books:         books,
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		log.Printf("NYT: ignoring malformed date %q", s)
		return time.Time{}
	}
	return t
}
