package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Digger   DiggerConfig   `toml:"digger"`
	Search   SearchConfig   `toml:"search"`
	Preview  PreviewConfig  `toml:"preview"`
	Data     DataConfig     `toml:"data"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// DiggerConfig controls the MixesDB scraper and its listing loader.
type DiggerConfig struct {
	BaseURL        string `toml:"base_url"`
	UserAgent      string `toml:"user_agent"`
	MaxMixes       int    `toml:"max_mixes"`
	SettleDelayMS  int    `toml:"settle_delay_ms"`
	RequestTimeout int    `toml:"request_timeout_s"`
}

// SearchConfig controls the store search sweep.
type SearchConfig struct {
	RateLimit       float64  `toml:"rate_limit"`
	ResultsPerStore int      `toml:"results_per_store"`
	Stores          []string `toml:"stores"`
	UserAgent       string   `toml:"user_agent"`
	RequestTimeout  int      `toml:"request_timeout_s"`
}

// PreviewConfig controls the playback preview controller.
type PreviewConfig struct {
	HoverDelayMS   int `toml:"hover_delay_ms"`
	SeekStepS      int `toml:"seek_step_s"`
	PollIntervalMS int `toml:"poll_interval_ms"`
	PollTimeoutMS  int `toml:"poll_timeout_ms"`
	SkipGuardMS    int `toml:"skip_guard_ms"`
}

// DataConfig contains output directory settings for run artifacts.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidInput, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
