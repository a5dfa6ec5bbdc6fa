// Package batch accumulates rows until a batch is ready to be flushed.
package batch

import (
	"github.com/solstream/walletsink/internal/domain"
)

// Batcher manages the batching of rows for flushing. It tracks the row-count
// threshold; the time trigger lives in the ingest loop's ticker.
//
// A Batcher is not safe for concurrent use; it is owned by the ingest loop.
type Batcher struct {
	batch   *domain.Batch
	maxRows int
}

// NewBatcher creates a new batcher that signals a flush after maxRows rows.
func NewBatcher(maxRows int) *Batcher {
	return &Batcher{
		batch:   domain.NewBatch(maxRows),
		maxRows: maxRows,
	}
}

// Add appends a row to the current batch.
// Returns true if the batch reached the row threshold and should be flushed
// before accepting further rows.
func (b *Batcher) Add(row string) bool {
	b.batch.Add(row)
	return b.maxRows > 0 && b.batch.Size() >= b.maxRows
}

// HasPending returns true if there are rows waiting to be flushed.
func (b *Batcher) HasPending() bool {
	return !b.batch.Empty()
}

// Batch returns the current batch.
func (b *Batcher) Batch() *domain.Batch {
	return b.batch
}

// Reset clears the batch. Called after every flush attempt, whether or not
// it succeeded.
func (b *Batcher) Reset() {
	b.batch.Reset()
}
