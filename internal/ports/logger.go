package ports

import "github.com/solstream/walletsink/pkg/log"

// Logger is the structured logging port. Aliased from pkg/log so application
// code can take its logger and field constructors from one import.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for the application layer.
var (
	String   = log.String
	Int      = log.Int
	Uint64   = log.Uint64
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
