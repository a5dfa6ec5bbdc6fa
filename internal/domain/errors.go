package domain

import "errors"

// Domain errors represent error conditions in the walletsink domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("walletsink: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("walletsink: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("walletsink: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("walletsink: invalid configuration")

	// ErrSourceClosed is returned by the ingest loop when the upstream
	// subscription is permanently closed. Rows buffered at that moment are
	// lost; the process is expected to exit.
	ErrSourceClosed = errors.New("walletsink: message source closed")
)
