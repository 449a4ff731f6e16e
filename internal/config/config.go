// ABOUTME: Configuration loading and parsing for the urimux CLIs
// ABOUTME: YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete urimux tool configuration.
type Config struct {
	Participant ParticipantConfig `yaml:"participant"`
	Discovery   DiscoveryConfig   `yaml:"discovery"`
	Journal     JournalConfig     `yaml:"journal"`
	Sim         SimConfig         `yaml:"sim"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ParticipantConfig identifies this participant and its projection key.
type ParticipantConfig struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	HideUIContextKey string `yaml:"hide_ui_context_key"`
}

// DiscoveryConfig holds manifest discovery settings.
type DiscoveryConfig struct {
	ManifestDir string `yaml:"manifest_dir"`
}

// JournalConfig holds coordination journal settings. An empty path disables
// journaling.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// SimConfig holds simulator timing configuration.
type SimConfig struct {
	SettleTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	SettleTimeoutRaw string `yaml:"settle_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. If the environment variable is not set, it is
// replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure
// encountered.
func (c *Config) Validate() error {
	if c.Participant.ID == "" {
		return fmt.Errorf("participant.id is required")
	}
	if c.Participant.HideUIContextKey == "" {
		return fmt.Errorf("participant.hide_ui_context_key is required")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values.
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Sim.SettleTimeoutRaw != "" {
		cfg.Sim.SettleTimeout, err = time.ParseDuration(cfg.Sim.SettleTimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing settle_timeout %q: %w", cfg.Sim.SettleTimeoutRaw, err)
		}
	}
	if cfg.Sim.SettleTimeout == 0 {
		cfg.Sim.SettleTimeout = 2 * time.Second
	}

	return nil
}

// SetupLogger builds a slog.Logger from the logging configuration.
func SetupLogger(cfg LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
