package app

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/solstream/walletsink/internal/batch"
	"github.com/solstream/walletsink/internal/domain"
	"github.com/solstream/walletsink/internal/metrics"
	"github.com/solstream/walletsink/internal/ports"
)

// IngestorConfig contains configuration for the ingest loop.
type IngestorConfig struct {
	// BatchSize is the row count that triggers a synchronous flush.
	BatchSize int

	// FlushInterval is the timer trigger period.
	FlushInterval time.Duration
}

// FilterFunc decides whether a record with the given address is forwarded.
// A nil FilterFunc forwards everything.
type FilterFunc func(address string) bool

// Ingestor owns the single event loop that turns the inbound stream into a
// sequence of bounded batches. Exactly one of {message arrival, timer tick}
// is handled at a time; a flush is awaited synchronously inside the loop, so
// the batch is never touched concurrently.
type Ingestor struct {
	config  IngestorConfig
	source  ports.MessageSource
	sender  ports.RowSender
	logger  ports.Logger
	batcher *batch.Batcher
	filter  FilterFunc
	metrics *metrics.Metrics
}

// NewIngestor creates an ingestor with the given dependencies.
// filter may be nil to forward all records.
func NewIngestor(
	config IngestorConfig,
	source ports.MessageSource,
	sender ports.RowSender,
	logger ports.Logger,
	filter FilterFunc,
	m *metrics.Metrics,
) *Ingestor {
	if m == nil {
		m = metrics.NewUnregistered()
	}
	return &Ingestor{
		config:  config,
		source:  source,
		sender:  sender,
		logger:  logger,
		batcher: batch.NewBatcher(config.BatchSize),
		filter:  filter,
		metrics: m,
	}
}

// Run executes the ingest loop until the context is canceled or the source
// is permanently closed. On cancellation the pending batch gets one final
// flush attempt. On source closure buffered rows are lost and
// domain.ErrSourceClosed is returned.
//
// The ticker coalesces missed intervals: if a flush stalls the loop past one
// or more ticks, at most one tick is pending afterwards, so a slow sink
// bounds flush frequency instead of producing a catch-up burst.
func (i *Ingestor) Run(ctx context.Context) error {
	ticker := time.NewTicker(i.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if i.batcher.HasPending() {
				i.flush(context.WithoutCancel(ctx))
			}
			return ctx.Err()

		case payload, ok := <-i.source.Messages():
			if !ok {
				i.logger.Error("subscription closed, exiting",
					ports.Int("rows_lost", i.batcher.Batch().Size()))
				return domain.ErrSourceClosed
			}
			i.accept(ctx, payload)

		case <-ticker.C:
			if i.batcher.HasPending() {
				i.flush(ctx)
			}
		}
	}
}

// accept validates one payload and appends it to the batch, flushing
// synchronously when the row threshold is reached.
func (i *Ingestor) accept(ctx context.Context, payload []byte) {
	i.metrics.Received.Inc()

	if !utf8.Valid(payload) {
		i.metrics.DroppedInvalid.Inc()
		i.logger.Warn("dropping non-UTF-8 payload",
			ports.Int("bytes", len(payload)))
		return
	}

	if i.filter != nil && !i.filter(domain.ExtractAddress(payload)) {
		i.metrics.Filtered.Inc()
		return
	}

	if i.batcher.Add(string(payload)) {
		i.flush(ctx)
	}
}

// flush hands the current batch to the sender and clears it regardless of
// the outcome. A failed flush loses the batch; that is the delivery
// contract, not an accident.
func (i *Ingestor) flush(ctx context.Context) {
	b := i.batcher.Batch()
	if b.Empty() {
		return
	}

	start := time.Now()
	err := i.sender.Send(ctx, b)
	duration := time.Since(start)

	i.metrics.RowsFlushed.Add(float64(b.Size()))
	i.metrics.FlushDuration.Observe(duration.Seconds())

	if err != nil {
		i.metrics.Flushes.WithLabelValues("error").Inc()
		i.logger.Error("flush failed, dropping batch",
			ports.Err(err),
			ports.Int("rows", b.Size()),
			ports.Int("bytes", b.TotalBytes),
		)
	} else {
		i.metrics.Flushes.WithLabelValues("ok").Inc()
		i.logger.Debug("flushed batch",
			ports.Int("rows", b.Size()),
			ports.Int("bytes", b.TotalBytes),
			ports.Duration("duration", duration),
		)
	}

	i.batcher.Reset()
}
