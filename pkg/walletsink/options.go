package walletsink

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/solstream/walletsink/internal/ports"
	"github.com/solstream/walletsink/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// MessageSource delivers raw payloads from the event bus. The default is a
// NATS subscription; tests and embedders can substitute their own.
type MessageSource = ports.MessageSource

// RowSender bulk-inserts a batch of rows into the analytical store. The
// default posts to the ClickHouse HTTP interface.
type RowSender = ports.RowSender

// Option configures optional behavior of Walletsink.
type Option func(*options)

// options holds the optional configuration for a Walletsink instance.
type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	source     ports.MessageSource
	sender     ports.RowSender
	registry   *prometheus.Registry
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger:   log.NewNoopLogger(),
		registry: prometheus.NewRegistry(),
	}
}

// WithHTTPClient sets a custom HTTP client for the sink connection.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource substitutes the message source. When set, Config.NATSURL and
// Config.Subject are ignored and no bus connection is made.
func WithSource(source MessageSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithSender substitutes the row sender. When set, the ClickHouse fields of
// Config are ignored.
func WithSender(sender RowSender) Option {
	return func(o *options) {
		o.sender = sender
	}
}

// WithMetricsRegistry sets the Prometheus registry the pipeline collectors
// are registered with. If not provided, a private registry is used.
func WithMetricsRegistry(registry *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}
