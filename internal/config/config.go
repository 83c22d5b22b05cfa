// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	HTTP     HTTP
	App      App
	Resolver Resolver
	Transfer Transfer
}

// App holds application-wide configuration.
type App struct {
	LogLevel string `env:"VIDPEEK_APP_LOG_LEVEL" envDefault:"info"`
}

// HTTP holds HTTP server configuration.
type HTTP struct {
	Port            string        `env:"VIDPEEK_HTTP_PORT"             envDefault:":8080"`
	HandlerTimeout  time.Duration `env:"VIDPEEK_HTTP_HANDLER_TIMEOUT"  envDefault:"20s"`
	ShutdownTimeout time.Duration `env:"VIDPEEK_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Resolver holds metadata resolver configuration.
type Resolver struct {
	// HostMarkers is a comma-separated list of substrings, one of which a URL must contain.
	HostMarkers string        `env:"VIDPEEK_RESOLVER_HOST_MARKERS" envDefault:"youtube.com,youtu.be"`
	Delay       time.Duration `env:"VIDPEEK_RESOLVER_DELAY"        envDefault:"300ms"`
	// FixtureFile overrides the embedded metadata fixture when set.
	FixtureFile string `env:"VIDPEEK_RESOLVER_FIXTURE_FILE" envDefault:""`

	// Markers is the parsed list of host markers
	Markers []string `env:"-"`
}

// Transfer holds simulated transfer configuration.
type Transfer struct {
	Delay time.Duration `env:"VIDPEEK_TRANSFER_DELAY" envDefault:"2s"`
	// SettleDelay is the extra pause the caller takes after a synchronous transfer.
	SettleDelay      time.Duration `env:"VIDPEEK_TRANSFER_SETTLE_DELAY"      envDefault:"1500ms"`
	MaxWait          time.Duration `env:"VIDPEEK_TRANSFER_MAX_WAIT"          envDefault:"10s"`
	ProgressInterval time.Duration `env:"VIDPEEK_TRANSFER_PROGRESS_INTERVAL" envDefault:"200ms"`
	TTL              time.Duration `env:"VIDPEEK_TRANSFER_TTL"               envDefault:"1h"`
	CleanupInterval  time.Duration `env:"VIDPEEK_TRANSFER_CLEANUP_INTERVAL"  envDefault:"5m"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{}

	err := env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	err = cfg.Resolver.SetAbsPaths()
	if err != nil {
		return nil, fmt.Errorf("set resolver absolute paths: %w", err)
	}

	cfg.Resolver.parseMarkers()

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return cfg, nil
}

// Validate reports configuration values that cannot work together.
func (c *Config) Validate() error {
	if len(c.Resolver.Markers) == 0 {
		return fmt.Errorf("resolver: at least one host marker is required")
	}

	if c.Resolver.Delay < 0 {
		return fmt.Errorf("resolver: negative delay %s", c.Resolver.Delay)
	}

	if c.Transfer.Delay < 0 || c.Transfer.SettleDelay < 0 {
		return fmt.Errorf("transfer: negative delay")
	}

	if c.Transfer.MaxWait < c.Transfer.Delay {
		return fmt.Errorf("transfer: max wait %s is shorter than delay %s", c.Transfer.MaxWait, c.Transfer.Delay)
	}

	return nil
}

// SetAbsPaths converts the fixture file path to an absolute path.
func (r *Resolver) SetAbsPaths() error {
	if r.FixtureFile == "" {
		return nil
	}

	var err error
	if r.FixtureFile, err = filepath.Abs(r.FixtureFile); err != nil {
		return fmt.Errorf("fixture file: %w", err)
	}

	return nil
}

// parseMarkers parses the comma-separated host marker list.
func (r *Resolver) parseMarkers() {
	r.Markers = nil

	for marker := range strings.SplitSeq(r.HostMarkers, ",") {
		marker = strings.ToLower(strings.TrimSpace(marker))
		if marker != "" {
			r.Markers = append(r.Markers, marker)
		}
	}
}
