// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (NATS subscription, ClickHouse HTTP client, zerolog).
//
// # Port Interfaces
//
//   - [MessageSource]: delivers raw payloads from the event bus
//   - [RowSender]: bulk-inserts a batch of rows into the analytical store
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//   - [Logger]: structured logging abstraction
package ports
