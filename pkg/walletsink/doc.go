// Package walletsink provides an embeddable NATS-to-ClickHouse forwarder for
// wallet account-update events.
//
// Walletsink subscribes to a subject carrying one JSON record per message,
// accumulates records into bounded batches, and flushes each batch as a
// single JSONEachRow bulk insert over the ClickHouse HTTP interface. It can
// be used as a standalone CLI application or embedded as a library in other
// Go programs.
//
// # Basic Usage
//
//	cfg := walletsink.Config{
//	    NATSURL:       "nats://127.0.0.1:4222",
//	    Subject:       "WALLET.updates",
//	    ClickHouseURL: "http://127.0.0.1:8123",
//	    Database:      "default",
//	    Table:         "wallet_account_updates",
//	}
//
//	sink, err := walletsink.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := sink.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := sink.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Delivery contract
//
// Forwarding is at-least-once with best-effort batching. A flush that fails
// (non-2xx response, timeout, transport error) is logged and its batch is
// dropped; there is no retry queue and no dead-letter store. Records
// buffered when the subscription is permanently closed are lost.
//
// # Dependency Injection
//
// Tests and embedders can substitute the message source, the sink, the HTTP
// client, and the logger via [WithSource], [WithSender], [WithHTTPClient],
// and [WithLogger].
package walletsink
