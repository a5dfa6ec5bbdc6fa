package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (WALLETSINK_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("nats-url", os.Getenv("WALLETSINK_NATS_URL"), &cfg.NATSURL)
	s.setString("subject", os.Getenv("WALLETSINK_SUBJECT"), &cfg.Subject)
	s.setString("clickhouse-url", os.Getenv("WALLETSINK_CLICKHOUSE_URL"), &cfg.ClickHouseURL)
	s.setString("user", os.Getenv("WALLETSINK_USER"), &cfg.Username)
	s.setString("password", os.Getenv("WALLETSINK_PASSWORD"), &cfg.Password)
	s.setString("database", os.Getenv("WALLETSINK_DATABASE"), &cfg.Database)
	s.setString("table", os.Getenv("WALLETSINK_TABLE"), &cfg.Table)
	s.setString("metrics-addr", os.Getenv("WALLETSINK_METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setIntFromString("batch-size", os.Getenv("WALLETSINK_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}
	if err := s.setDuration("flush-interval", os.Getenv("WALLETSINK_FLUSH_INTERVAL"), &cfg.FlushInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("WALLETSINK_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setStringSlice("filter-address", splitList(os.Getenv("WALLETSINK_FILTER_ADDRESSES")), &cfg.FilterAddresses)

	return nil
}
