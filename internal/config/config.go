// Package config resolves the gateway's runtime configuration from
// environment variables and command-line flags.
//
// The credential and backend URL are required: serving a half-configured
// registry is worse than failing at startup, so Validate errors are fatal
// in main.
package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Environment variable names.
const (
	EnvAPIKey      = "HELIOS9_API_KEY"
	EnvAPIURL      = "HELIOS9_API_URL"
	EnvWorkspaceID = "HELIOS9_WORKSPACE_ID"
)

// Config is the resolved runtime configuration.
type Config struct {
	// APIKey is the single opaque credential. An "h9s_" prefix marks a
	// service-style key; anything else is treated as a generic key.
	APIKey string
	// APIURL is the backend base URL, without a trailing slash.
	APIURL string
	// WorkspaceID scopes service-key identities. Optional for generic
	// keys, whose workspace comes from credential verification.
	WorkspaceID string
	// Timeout applies per outbound backend call.
	Timeout time.Duration
	// RateLimit / RateBurst bound outbound request rate.
	RateLimit float64
	RateBurst int
}

// Load resolves configuration from the environment, then applies flag
// overrides from args (everything after the subcommand).
func Load(args []string) (Config, error) {
	cfg := Config{
		APIKey:      os.Getenv(EnvAPIKey),
		APIURL:      os.Getenv(EnvAPIURL),
		WorkspaceID: os.Getenv(EnvWorkspaceID),
		Timeout:     15 * time.Second,
		RateLimit:   20,
		RateBurst:   40,
	}

	fs := flag.NewFlagSet("helios9", flag.ContinueOnError)
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "backend API key (overrides "+EnvAPIKey+")")
	fs.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "backend base URL (overrides "+EnvAPIURL+")")
	fs.StringVar(&cfg.WorkspaceID, "workspace", cfg.WorkspaceID, "workspace id for service keys (overrides "+EnvWorkspaceID+")")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request backend timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parsing flags: %w", err)
	}

	for len(cfg.APIURL) > 0 && cfg.APIURL[len(cfg.APIURL)-1] == '/' {
		cfg.APIURL = cfg.APIURL[:len(cfg.APIURL)-1]
	}
	return cfg, nil
}

// Validate reports the first fatal configuration problem.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("missing API key: set %s or pass -api-key", EnvAPIKey)
	}
	if c.APIURL == "" {
		return fmt.Errorf("missing backend URL: set %s or pass -api-url", EnvAPIURL)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend URL %q", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
