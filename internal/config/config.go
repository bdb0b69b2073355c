package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the console configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Treasury TreasuryConfig `yaml:"treasury"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig configures the SEEDx REST collaborator.
type APIConfig struct {
	BaseURL       string `yaml:"base_url"`
	Token         string `yaml:"token"`
	FetchTimeout  string `yaml:"fetch_timeout"`
	SubmitTimeout string `yaml:"submit_timeout"`
}

// TreasuryConfig configures how the treasury balance is resolved.
type TreasuryConfig struct {
	FallbackPolicy  string `yaml:"fallback_policy"` // allow, deny, always
	FallbackBalance string `yaml:"fallback_balance"`
	Currency        string `yaml:"currency"`
}

// LedgerConfig configures the local receipt journal.
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:       DefaultBaseURL,
			FetchTimeout:  FetchTimeout.String(),
			SubmitTimeout: SubmitTimeout.String(),
		},
		Treasury: TreasuryConfig{
			FallbackPolicy:  FallbackAllow,
			FallbackBalance: FallbackTreasuryBalance,
			Currency:        DefaultCurrency,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SEEDX_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("SEEDX_API_URL")); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("SEEDX_API_TOKEN")); v != "" {
		c.API.Token = v
	}
	if v := strings.TrimSpace(getenv("SEEDX_FALLBACK_POLICY")); v != "" {
		c.Treasury.FallbackPolicy = v
	}
	if v := strings.TrimSpace(getenv("SEEDX_LEDGER")); v != "" {
		c.Ledger.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

// Validate checks enumerated values and durations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url must be set")
	}
	switch c.Treasury.FallbackPolicy {
	case FallbackAllow, FallbackDeny, FallbackAlways:
	default:
		return fmt.Errorf("treasury.fallback_policy %q must be one of %s, %s, %s",
			c.Treasury.FallbackPolicy, FallbackAllow, FallbackDeny, FallbackAlways)
	}
	if _, err := parseDuration(c.API.FetchTimeout, FetchTimeout); err != nil {
		return fmt.Errorf("api.fetch_timeout: %w", err)
	}
	if _, err := parseDuration(c.API.SubmitTimeout, SubmitTimeout); err != nil {
		return fmt.Errorf("api.submit_timeout: %w", err)
	}
	return nil
}

// FetchTimeoutDuration returns the parsed fetch timeout, falling back to FetchTimeout.
func (c Config) FetchTimeoutDuration() time.Duration {
	d, _ := parseDuration(c.API.FetchTimeout, FetchTimeout)
	return d
}

// SubmitTimeoutDuration returns the parsed submit timeout, falling back to SubmitTimeout.
func (c Config) SubmitTimeoutDuration() time.Duration {
	d, _ := parseDuration(c.API.SubmitTimeout, SubmitTimeout)
	return d
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, err
	}
	if d <= 0 {
		return def, fmt.Errorf("duration %q must be positive", raw)
	}
	return d, nil
}

// DefaultPath returns the config file location under the XDG config dir.
func DefaultPath() string {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, AppName, ConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", AppName, ConfigFileName)
	}
	return filepath.Join(home, ".config", AppName, ConfigFileName)
}
