// internal/appconfig/appconfig.go

// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spiralogic/halo/internal/harness"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for model calls.
	defaultRequestTimeout = 120 * time.Second
	// defaultCountPerDomain is used when the config omits the case count.
	defaultCountPerDomain = 10
	// defaultResultsDir is where run artifacts are written.
	defaultResultsDir = "haloData/runs"
)

// Config represents the top-level application configuration.
type Config struct {
	Seed           string             `json:"seed"`
	Domains        []string           `json:"domains"`
	CountPerDomain int                `json:"countPerDomain"`
	Gates          harness.GateConfig `json:"gates"`
	Model          ModelHost          `json:"model"`
	Verification   Verification       `json:"verification"`
	TimeoutSeconds int                `json:"timeout,omitempty"`
	ResultsDir     string             `json:"resultsDir,omitempty"`
	LogFile        string             `json:"logFile,omitempty"`
	Debug          bool               `json:"debug"`
	ConfigPath     string             `json:"-"`
}

// ModelHost describes the language model endpoint under evaluation.
type ModelHost struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Type         string `json:"type"`
	Model        string `json:"model"`
	APIKey       string `json:"apiKey,omitempty"`
	SystemPrompt string `json:"systemprompt,omitempty"`
}

// Verification configures the optional bibliographic lookup used by the
// citation validator. Disabled by default; grading works fully offline.
type Verification struct {
	Enabled       bool   `json:"enabled"`
	BaseURL       string `json:"baseUrl,omitempty"`
	CacheTTLHours int    `json:"cacheTtlHours,omitempty"`
}

// RequestTimeout returns the timeout for model calls, falling back to the default.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "halo.log"
}

// ResultsDirPath returns the directory run artifacts are written to.
func (c Config) ResultsDirPath() string {
	if dir := strings.TrimSpace(c.ResultsDir); dir != "" {
		return dir
	}
	return defaultResultsDir
}

// Count returns the per-domain case count, applying the default if unset.
func (c Config) Count() int {
	if c.CountPerDomain <= 0 {
		return defaultCountPerDomain
	}
	return c.CountPerDomain
}

// VerificationTTL returns the lookup-cache TTL.
func (c Config) VerificationTTL() time.Duration {
	if c.Verification.CacheTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Verification.CacheTTLHours) * time.Hour
}

// DomainTags resolves the configured domain list. An empty list means every
// known domain.
func (c Config) DomainTags() ([]harness.Domain, error) {
	if len(c.Domains) == 0 {
		return harness.AllDomains(), nil
	}
	domains := make([]harness.Domain, 0, len(c.Domains))
	for _, raw := range c.Domains {
		d, err := harness.ParseDomain(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, nil
}

// Load reads the application configuration from the specified path and
// validates it against the embedded schema.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := validateSchema(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	if strings.TrimSpace(config.Seed) == "" {
		return Config{}, errors.New("config must set a seed: runs are reproducible by contract")
	}
	if config.Model.Type == "" {
		return Config{}, errors.New("config must set model.type")
	}
	config.ConfigPath = path
	return config, nil
}
