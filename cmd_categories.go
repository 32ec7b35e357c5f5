package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
	"bookshelf/internal/controller"
	"bookshelf/internal/domain"
	"bookshelf/internal/eventbus"
	"bookshelf/internal/nyt"
)

var errOffline = errors.New("network unreachable")

type categoryJSON struct {
	Key             string `json:"key"`
	DisplayName     string `json:"display_name"`
	ListName        string `json:"list_name"`
	Updated         string `json:"updated"`
	OldestPublished string `json:"oldest_published,omitempty"`
	NewestPublished string `json:"newest_published,omitempty"`
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	var query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the best-seller categories",
		Example: `
bookshelf categories
bookshelf categories --query fiction
bookshelf categories --json | jq '.[].key'
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.Context(), opts, query, asJSON, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "only categories whose name contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// runCategories drives the category controller once without a UI
func runCategories(ctx context.Context, opts *rootOptions, query string, asJSON bool, out, stderr io.Writer) error {
	bus := eventbus.New()
	defer bus.Close()

	cfg, _, err := loadConfig(opts, bus)
	if err != nil {
		return err
	}
	defer setupLogging(cfg, stderr)()

	reach, _, err := newReachability(ctx, cfg, bus, opts.offline)
	if err != nil {
		return err
	}

	client := nyt.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout.Std(), bus)
	queue := controller.NewQueue()
	ctrl := controller.New(catalog.NewAsyncSource(client, cfg.API.Timeout.Std()), reach, queue)
	defer ctrl.Close()

	if query != "" {
		ctrl.BeginSearch()
		ctrl.OnQueryChanged(query)
	}

	ctrl.Activate(ctx)
	for ctrl.State() == controller.StateLoading {
		select {
		case <-queue.Ready():
			queue.Drain()
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	switch ctrl.State() {
	case controller.StateOffline:
		return fmt.Errorf("cannot fetch categories: %w", errOffline)
	case controller.StateError:
		return fmt.Errorf("cannot fetch categories: %w", ctrl.Err())
	}

	items := ctrl.ViewState().Items
	if asJSON {
		return writeCategoriesJSON(out, items)
	}
	return writeCategoriesTable(out, items)
}

func writeCategoriesJSON(w io.Writer, items []domain.Category) error {
	out := make([]categoryJSON, 0, len(items))
	for _, c := range items {
		j := categoryJSON{
			Key:         c.Key,
			DisplayName: c.DisplayName,
			ListName:    c.ListName,
			Updated:     c.Updated,
		}
		if !c.OldestPublished.IsZero() {
			j.OldestPublished = c.OldestPublished.Format("2006-01-02")
		}
		if !c.NewestPublished.IsZero() {
			j.NewestPublished = c.NewestPublished.Format("2006-01-02")
		}
		out = append(out, j)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCategoriesTable(w io.Writer, items []domain.Category) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Category"), bold.Sprint("Key"), bold.Sprint("Updated"))
	for _, c := range items {
		tbl.AddRow(c.DisplayName, c.Key, faint.Sprint(strings.ToLower(c.Updated)))
	}

	_, err := fmt.Fprintln(w, tbl)
	return err
}
