package domain

// Batch is an ordered buffer of JSON rows awaiting a single bulk insert.
// Rows are appended in arrival order and the whole buffer is consumed and
// cleared atomically by one flush attempt. A Batch is owned by exactly one
// goroutine (the ingest loop) and is never shared across flushes.
type Batch struct {
	// Rows contains one self-contained JSON object per entry, verbatim as
	// received from the bus.
	Rows []string

	// TotalBytes is the sum of all row lengths, excluding separators.
	TotalBytes int
}

// NewBatch creates an empty batch with capacity for the given row count.
func NewBatch(capacity int) *Batch {
	if capacity < 0 {
		capacity = 0
	}
	return &Batch{Rows: make([]string, 0, capacity)}
}

// Add appends a row to the batch, preserving arrival order.
func (b *Batch) Add(row string) {
	b.Rows = append(b.Rows, row)
	b.TotalBytes += len(row)
}

// Size returns the number of rows in the batch.
func (b *Batch) Size() int {
	return len(b.Rows)
}

// Empty returns true if the batch has no rows.
func (b *Batch) Empty() bool {
	return len(b.Rows) == 0
}

// Reset clears the batch for reuse, keeping the underlying capacity.
func (b *Batch) Reset() {
	b.Rows = b.Rows[:0]
	b.TotalBytes = 0
}
