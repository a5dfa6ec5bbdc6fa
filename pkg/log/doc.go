// Package log provides the structured logging abstraction used across
// walletsink. The [Logger] interface decouples the pipeline from any
// particular logging library; [ZerologAdapter] is the production
// implementation and [NoopLogger] the silent one for tests and embedders
// that bring their own logging.
package log
