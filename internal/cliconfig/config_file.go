package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	NATSURL         string   `toml:"nats_url"`
	Subject         string   `toml:"subject"`
	ClickHouseURL   string   `toml:"clickhouse_url"`
	Username        string   `toml:"clickhouse_user"`
	Password        string   `toml:"clickhouse_password"`
	Database        string   `toml:"database"`
	Table           string   `toml:"table"`
	BatchSize       int      `toml:"batch_size"`
	FlushInterval   string   `toml:"flush_interval"`
	HTTPTimeout     string   `toml:"http_timeout"`
	FilterAddresses []string `toml:"filter_addresses"`
	MetricsAddr     string   `toml:"metrics_addr"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.walletsink/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".walletsink", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("nats-url", fc.NATSURL, &cfg.NATSURL)
	s.setString("subject", fc.Subject, &cfg.Subject)
	s.setString("clickhouse-url", fc.ClickHouseURL, &cfg.ClickHouseURL)
	s.setString("user", fc.Username, &cfg.Username)
	s.setString("password", fc.Password, &cfg.Password)
	s.setString("database", fc.Database, &cfg.Database)
	s.setString("table", fc.Table, &cfg.Table)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)

	if err := s.setDuration("flush-interval", fc.FlushInterval, &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setStringSlice("filter-address", fc.FilterAddresses, &cfg.FilterAddresses)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
