package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// SamplePlaylistID pre-fills the landing input
const SamplePlaylistID = "PLBVGsLomF3V2Inm9oj01WYrG8xqhUBy7a"

// DefaultPageSize is the maxResults sent with every playlist-items request
const DefaultPageSize = 50

// Config holds all application configuration
type Config struct {
	YouTube YouTubeConfig `mapstructure:"youtube"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// YouTubeConfig holds Data API settings
type YouTubeConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`  // empty = Google's public endpoint
	PageSize int    `mapstructure:"page_size"` // maxResults per request
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultPlaylist string `mapstructure:"default_playlist"`
}

// CacheConfig holds history store configuration
type CacheConfig struct {
	Dir          string `mapstructure:"dir"` // empty = memory only
	HistoryLimit int    `mapstructure:"history_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			PageSize: DefaultPageSize,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DefaultPlaylist: SamplePlaylistID,
		},
		Cache: CacheConfig{
			Dir:          defaultCachePath(),
			HistoryLimit: 20,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "soundqueue", "soundqueue.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "soundqueue", "soundqueue.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "soundqueue")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "soundqueue")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "soundqueue", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "soundqueue", "cache")
	}
}

// newViper builds a viper instance searching the given directories
func newViper(dirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// SOUNDQUEUE_YOUTUBE_API_KEY etc.
	v.SetEnvPrefix("SOUNDQUEUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare variable used by most YouTube tooling is honoured as a fallback
	_ = v.BindEnv("youtube.api_key", "SOUNDQUEUE_YOUTUBE_API_KEY", "YOUTUBE_API_KEY")

	// AutomaticEnv only applies to keys viper knows about
	defaults := DefaultConfig()
	v.SetDefault("youtube.endpoint", defaults.YouTube.Endpoint)
	v.SetDefault("youtube.page_size", defaults.YouTube.PageSize)
	v.SetDefault("player.command", defaults.Player.Command)
	v.SetDefault("player.args", defaults.Player.Args)
	v.SetDefault("ui.default_playlist", defaults.UI.DefaultPlaylist)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("cache.history_limit", defaults.Cache.HistoryLimit)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)
	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadFrom(defaultConfigPath(), ".")
}

func loadFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(dirs...)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.YouTube.PageSize <= 0 || cfg.YouTube.PageSize > DefaultPageSize {
		cfg.YouTube.PageSize = DefaultPageSize
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return saveTo(defaultConfigPath(), cfg)
}

func saveTo(configPath string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("youtube.api_key", cfg.YouTube.APIKey)
	v.Set("youtube.endpoint", cfg.YouTube.Endpoint)
	v.Set("youtube.page_size", cfg.YouTube.PageSize)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("ui.default_playlist", cfg.UI.DefaultPlaylist)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.history_limit", cfg.Cache.HistoryLimit)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is available
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.YouTube.APIKey) != ""
}

// ClearCache removes the history database
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
