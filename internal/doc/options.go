package doc

import (
	"log/slog"

	"github.com/dshills/richdoc/internal/logging"
)

// Option configures a Document during creation.
type Option func(*Document)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithReadOnly creates a read-only document.
// Mutations are rejected and replays return ErrReadOnly.
func WithReadOnly() Option {
	return func(d *Document) {
		d.readOnly = true
	}
}

func discardLogger() *slog.Logger {
	return logging.Discard()
}
