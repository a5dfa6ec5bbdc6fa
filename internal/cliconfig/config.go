// Package cliconfig loads walletsink configuration with the precedence
// defaults < config file < environment < flags.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/solstream/walletsink/internal/domain"
)

// Config holds the full configuration for the forwarder. Values are fixed at
// startup; nothing mutates them at runtime.
type Config struct {
	// NATSURL is the message bus address.
	NATSURL string

	// Subject is the subscription subject carrying account-update records.
	Subject string

	// ClickHouseURL is the sink's HTTP endpoint.
	ClickHouseURL string

	// Username and Password authenticate against the sink.
	Username string
	Password string

	// Database and Table name the insert target.
	Database string
	Table    string

	// BatchSize is the row count that triggers a synchronous flush.
	BatchSize int

	// FlushInterval is the timer trigger period.
	FlushInterval time.Duration

	// HTTPTimeout bounds each flush request.
	HTTPTimeout time.Duration

	// FilterAddresses restricts forwarding to the given base58 account keys.
	// Empty means forward everything.
	FilterAddresses []string

	// MetricsAddr is the Prometheus listen address. Empty disables metrics.
	MetricsAddr string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		NATSURL:       "nats://127.0.0.1:4222",
		Subject:       "WALLET.updates",
		ClickHouseURL: "http://127.0.0.1:8123",
		Username:      "default",
		Password:      "",
		Database:      "default",
		Table:         "wallet_account_updates",
		BatchSize:     200,
		FlushInterval: 500 * time.Millisecond,
		HTTPTimeout:   10 * time.Second,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if c.NATSURL == "" {
		return fmt.Errorf("%w: nats-url is required", domain.ErrInvalidConfig)
	}
	if c.Subject == "" {
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidConfig)
	}
	if c.ClickHouseURL == "" {
		return fmt.Errorf("%w: clickhouse-url is required", domain.ErrInvalidConfig)
	}
	if c.Database == "" || c.Table == "" {
		return fmt.Errorf("%w: database and table are required", domain.ErrInvalidConfig)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", domain.ErrInvalidConfig)
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("%w: flush interval must be positive", domain.ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", domain.ErrInvalidConfig)
	}

	// Ensure no trailing slash
	c.ClickHouseURL = strings.TrimSuffix(c.ClickHouseURL, "/")

	for _, addr := range c.FilterAddresses {
		if err := domain.ValidateAddress(addr); err != nil {
			return fmt.Errorf("%w: filter %v", domain.ErrInvalidConfig, err)
		}
	}

	return nil
}

// Logger returns the process logger used before the library logger exists.
func Logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setStringSlice sets a slice value if non-empty and flag not changed.
func (s *configSetter) setStringSlice(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// splitList splits a comma-separated environment value into trimmed entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
