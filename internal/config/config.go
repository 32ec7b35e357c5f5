package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"bookshelf/internal/eventbus"
)

// APIKeyEnv overrides api.key when set
const APIKeyEnv = "BOOKSHELF_NYT_API_KEY"

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version      int                  `toml:"version"`
	API          APISettings          `toml:"api"`
	Reachability ReachabilitySettings `toml:"reachability"`
	UI           UISettings           `toml:"ui"`
	Log          LogSettings          `toml:"log"`
}

// APISettings configures the best-seller data source
type APISettings struct {
	BaseURL string   `toml:"base_url"`
	Key     string   `toml:"key"`
	Timeout Duration `toml:"timeout"`
}

// ReachabilitySettings configures the connectivity prober
type ReachabilitySettings struct {
	ProbeAddress string   `toml:"probe_address"` // host:port, empty = derived from api.base_url
	Interval     Duration `toml:"interval"`
	DialTimeout  Duration `toml:"dial_timeout"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Columns          int      `toml:"columns"`
	PlaceholderCells int      `toml:"placeholder_cells"`
	SearchDebounce   Duration `toml:"search_debounce"`
}

// LogSettings configures the rotating log file
type LogSettings struct {
	Enabled    bool   `toml:"enabled"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Duration is a time.Duration stored as a string ("5s", "250ms") in TOML
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Path() string
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/bookshelf/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "bookshelf", "config.toml")
}

// NewConfigService creates a config service for path. An empty path
// selects DefaultPath. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
		cfg.ApplyEnv()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing
// from the file keep their default values; the API key environment
// override is applied last.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the API key may be present, keep the file private
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv applies environment overrides
func (c *Config) ApplyEnv() {
	if key := os.Getenv(APIKeyEnv); key != "" {
		c.API.Key = key
	}
}

// Validate checks the values that would otherwise fail at runtime
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url must be set")
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("config: api.base_url: %w", err)
	}
	if c.API.Timeout <= 0 {
		return errors.New("config: api.timeout must be positive")
	}
	if c.Reachability.Interval <= 0 {
		return errors.New("config: reachability.interval must be positive")
	}
	if c.Reachability.DialTimeout <= 0 {
		return errors.New("config: reachability.dial_timeout must be positive")
	}
	if c.UI.Columns <= 0 {
		return errors.New("config: ui.columns must be positive")
	}
	if c.UI.PlaceholderCells < 0 {
		return errors.New("config: ui.placeholder_cells must not be negative")
	}
	if c.UI.SearchDebounce < 0 {
		return errors.New("config: ui.search_debounce must not be negative")
	}
	return nil
}

// ProbeAddress returns the host:port the reachability prober dials.
// When probe_address is empty it is derived from api.base_url.
func (c *Config) ProbeAddress() (string, error) {
	if c.Reachability.ProbeAddress != "" {
		return c.Reachability.ProbeAddress, nil
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse api.base_url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("api.base_url %q has no host", c.API.BaseURL)
	}

	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// LogFile returns the log path, defaulting to the user cache directory
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "bookshelf", "bookshelf.log")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL: "https://api.nytimes.com/svc/books/v3",
			Timeout: Duration(10 * time.Second),
		},
		Reachability: ReachabilitySettings{
			Interval:    Duration(5 * time.Second),
			DialTimeout: Duration(2 * time.Second),
		},
		UI: UISettings{
			Columns:          2,
			PlaceholderCells: 25,
		},
		Log: LogSettings{
			Enabled:    true,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}
