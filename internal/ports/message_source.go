package ports

// MessageSource delivers raw payloads from a named channel on the event bus.
// Implementations own the bus connection and the subscription handle.
type MessageSource interface {
	// Messages returns the channel of inbound payloads. Payloads arrive in
	// bus delivery order. The channel is closed when the subscription is
	// permanently closed; the consumer treats that as fatal.
	Messages() <-chan []byte

	// Close tears down the subscription and the underlying connection.
	Close() error
}
