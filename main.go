package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/controller"
	"bookshelf/internal/eventbus"
	"bookshelf/internal/logging"
	"bookshelf/internal/nyt"
	"bookshelf/internal/reachability"
	"bookshelf/internal/ui"
)

var version = "dev"

type rootOptions struct {
	configPath string
	apiKey     string
	offline    bool
}

func main() {
	// Nothing reaches the terminal until the config says where logs go
	log.SetOutput(io.Discard)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Browse the New York Times best-seller lists",
		Long: "bookshelf shows every New York Times best-seller category in a searchable grid.\n" +
			"Open a category to read its current list. Run without arguments for the TUI.",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(io.Discard)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "NYT Books API key (overrides the config file and "+config.APIKeyEnv+")")
	cmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "behave as if the network were unreachable")

	cmd.AddCommand(newCategoriesCmd(opts), newConfigCmd(opts))
	return cmd
}

// loadConfig loads the config file and applies flag overrides
func loadConfig(opts *rootOptions, bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigService(opts.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.apiKey != "" {
		cfg.API.Key = opts.apiKey
	}
	return cfg, svc, nil
}

// setupLogging routes the standard logger to the configured file. The
// returned func closes the file and discards anything logged afterwards.
func setupLogging(cfg *config.Config, stderr io.Writer) func() {
	closer, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
	}
	return func() {
		log.SetOutput(io.Discard)
		closer.Close()
	}
}

// writeDefaultConfig creates the config file on first run. Flag and
// environment overrides are not persisted.
func writeDefaultConfig(svc config.ConfigService) error {
	if _, err := os.Stat(svc.Path()); !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	log.Printf("Creating default config at %s", svc.Path())
	return svc.Save(config.DefaultConfig())
}

// newReachability returns the monitor for the configured API host
func newReachability(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, offline bool) (controller.Reachability, *reachability.Prober, error) {
	if offline {
		return reachability.Static(false), nil, nil
	}

	addr, err := cfg.ProbeAddress()
	if err != nil {
		return nil, nil, err
	}
	prober := reachability.NewProber(bus, addr, cfg.Reachability.Interval.Std(), cfg.Reachability.DialTimeout.Std())
	prober.Check(ctx)
	return prober, prober, nil
}

func runTUI(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	cfg, svc, err := loadConfig(opts, bus)
	if err != nil {
		return err
	}

	defer setupLogging(cfg, stderr)()
	log.Printf("Starting bookshelf %s with config %s", version, svc.Path())

	if err := writeDefaultConfig(svc); err != nil {
		log.Printf("Could not write default config: %v", err)
	}

	if cfg.API.Key == "" {
		log.Printf("No API key configured; set %s or run `bookshelf config init --api-key`", config.APIKeyEnv)
	}

	client := nyt.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.API.Timeout.Std(), bus)
	source := catalog.NewAsyncSource(client, cfg.API.Timeout.Std())

	reach, prober, err := newReachability(ctx, cfg, bus, opts.offline)
	if err != nil {
		return err
	}
	if prober != nil {
		prober.Start(ctx)
	}

	model := ui.NewModel(ctx, cfg, ui.Deps{
		Categories:   source,
		Reachability: reach,
		Books:        client,
		Bus:          bus,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward events the footer reports
	for _, et := range []eventbus.EventType{
		eventbus.EventCategoriesFetchCompleted,
		eventbus.EventBestSellersFetchCompleted,
		eventbus.EventReachabilityChanged,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
	}
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Printf("Error: %s: %v", event.Message, event.Err)
		}
	})

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
