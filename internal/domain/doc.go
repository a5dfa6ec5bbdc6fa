// Package domain contains the core entities and value objects for walletsink.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (NATS, HTTP, logging) and contains
// only the data shapes and invariants of the forwarding pipeline.
//
// # Entities
//
//   - [Batch]: the ordered set of pending rows awaiting one bulk insert
//   - [AccountUpdate]: the canonical row format for a wallet account update
//   - [AccountUpdateV1], [AccountUpdateV2], [AccountUpdateV3]: historical
//     wire shapes of the upstream notification, normalized via [Normalize]
//
// Rows are opaque once inside a Batch: the pipeline forwards them verbatim
// and never re-validates their content.
package domain
