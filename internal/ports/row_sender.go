package ports

import (
	"context"

	"github.com/solstream/walletsink/internal/domain"
)

// RowSender transmits one batch of rows to the analytical store as a single
// bulk insert. Implementations handle wire encoding, transport, and
// authentication.
type RowSender interface {
	// Send transmits the batch. Returns nil on success, an error describing
	// the sink's response otherwise. The caller clears the batch regardless
	// of the outcome; Send must not retain the batch.
	Send(ctx context.Context, batch *domain.Batch) error
}
