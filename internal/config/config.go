package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Version    int            `toml:"version"`
	API        APISettings    `toml:"api"`
	Search     SearchSettings `toml:"search"`
	UISettings UISettings     `toml:"ui"`
}

// APISettings configures the remote HR API client
type APISettings struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SearchSettings tunes the debounced autocomplete fields
type SearchSettings struct {
	DebounceMs  int `toml:"debounce_ms"`
	MinQueryLen int `toml:"min_query_len"`
	Limit       int `toml:"limit"`
	CacheSize   int `toml:"cache_size"`
}

// Debounce returns the quiet period as a duration
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Timeout returns the API request timeout as a duration
func (s APISettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowAvatars    bool   `toml:"show_avatars"`
	DateFormat     string `toml:"date_format"`
	ToastSeconds   int    `toml:"toast_seconds"`
	MetricsAddress string `toml:"metrics_address"` // empty disables the /metrics listener
}

// Service handles configuration management
type Service interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(cfg *Config, path string) error
}

// service is the concrete implementation
type service struct {
	filePath string
}

// NewService creates a new config service rooted in the user config dir
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "staffdeck")
	os.MkdirAll(appDir, 0755)

	return &service{filePath: filepath.Join(appDir, "config.toml")}
}

// Load loads the configuration from file
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to file
func (s *service) Save(cfg *Config) error {
	return s.SaveToPath(cfg, s.filePath)
}

// LoadFromPath loads configuration from a specific path
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (s *service) SaveToPath(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// normalize backfills zero values with defaults so a sparse config file
// never disables debouncing or the length gate
func (c *Config) normalize() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = def.Search.DebounceMs
	}
	if c.Search.MinQueryLen <= 0 {
		c.Search.MinQueryLen = def.Search.MinQueryLen
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = def.Search.Limit
	}
	if c.Search.CacheSize <= 0 {
		c.Search.CacheSize = def.Search.CacheSize
	}
	if c.UISettings.ToastSeconds <= 0 {
		c.UISettings.ToastSeconds = def.UISettings.ToastSeconds
	}
	if c.UISettings.DateFormat == "" {
		c.UISettings.DateFormat = def.UISettings.DateFormat
	}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:        "https://api.staffdeck.example.com",
			TimeoutSeconds: 15,
		},
		Search: SearchSettings{
			DebounceMs:  300,
			MinQueryLen: 2,
			Limit:       20,
			CacheSize:   128,
		},
		UISettings: UISettings{
			ShowAvatars:  true,
			DateFormat:   "2006-01-02",
			ToastSeconds: 4,
		},
	}
}
