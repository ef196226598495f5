package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardex/internal/theme"
)

// Config represents the application configuration
type Config struct {
	Database     string `toml:"database"`      // Path or URL of the card database
	BasePath     string `toml:"base_path"`     // Base for relative image references
	Locale       string `toml:"locale"`        // BCP 47 tag used to sort results
	SearchFields string `toml:"search_fields"` // "all" or "name"
	FetchTimeout string `toml:"fetch_timeout"` // Go duration, e.g. "10s"
	Listen       string `toml:"listen"`        // Address for the web front-end
	DarkMode     string `toml:"dark_mode"`     // "enabled" or "disabled"

	PlaceholderImage string `toml:"placeholder_image,omitempty"` // Shown when card art is missing
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		Database:     "database.json",
		Locale:       "en",
		SearchFields: "all",
		FetchTimeout: "10s",
		Listen:       "127.0.0.1:8080",
		DarkMode:     theme.Disabled,
	}
}

// Timeout parses FetchTimeout, returning zero when it is unset or invalid.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.FetchTimeout))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the directory for generated artifacts such as ANSI art
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "cardex")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardex", "config.toml")
}

// Load loads the config file at path, creating it with defaults if it
// doesn't exist. An empty path means GetConfigFilePath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// ThemeStore persists the dark mode flag in the config file.
type ThemeStore struct {
	mu   sync.Mutex
	path string
}

// NewThemeStore returns a theme.Store backed by the config file at path.
func NewThemeStore(path string) *ThemeStore {
	if path == "" {
		path = GetConfigFilePath()
	}
	return &ThemeStore{path: path}
}

var _ theme.Store = (*ThemeStore)(nil)

// Get reads dark_mode from the config file.
func (s *ThemeStore) Get() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := Load(s.path)
	if err != nil {
		return false, err
	}
	return theme.Decode(cfg.DarkMode), nil
}

// Set rewrites dark_mode in the config file, keeping the other keys.
func (s *ThemeStore) Set(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	cfg.DarkMode = theme.Encode(dark)
	return cfg.Save(s.path)
}
