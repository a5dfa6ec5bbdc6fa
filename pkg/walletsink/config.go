package walletsink

import (
	"fmt"
	"time"

	"github.com/solstream/walletsink/internal/domain"
)

// Config holds the configuration for a walletsink instance.
// Zero-value fields are filled by SetDefaults; everything is immutable after
// New.
type Config struct {
	// NATSURL is the message bus address.
	NATSURL string

	// Subject is the subscription subject carrying account-update records.
	Subject string

	// ClickHouseURL is the sink's HTTP endpoint.
	ClickHouseURL string

	// Username and Password authenticate against the sink with basic auth.
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

	// FilterAddresses restricts forwarding to records whose address field
	// matches one of the given base58 account keys. Empty forwards all.
	FilterAddresses []string

	// MetricsAddr is the Prometheus listen address. Empty disables the
	// metrics listener; collectors are still registered and available via
	// WithMetricsRegistry.
	MetricsAddr string
}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.NATSURL == "" {
		c.NATSURL = "nats://127.0.0.1:4222"
	}
	if c.Subject == "" {
		c.Subject = "WALLET.updates"
	}
	if c.ClickHouseURL == "" {
		c.ClickHouseURL = "http://127.0.0.1:8123"
	}
	if c.Username == "" {
		c.Username = "default"
	}
	if c.Database == "" {
		c.Database = "default"
	}
	if c.Table == "" {
		c.Table = "wallet_account_updates"
	}
	if c.BatchSize == 0 {
		c.BatchSize = 200
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = 500 * time.Millisecond
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 10 * time.Second
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", domain.ErrInvalidConfig)
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("%w: flush interval must be positive", domain.ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", domain.ErrInvalidConfig)
	}
	for _, addr := range c.FilterAddresses {
		if err := domain.ValidateAddress(addr); err != nil {
			return fmt.Errorf("%w: filter %v", domain.ErrInvalidConfig, err)
		}
	}
	return nil
}
