package doc

import "errors"

// Errors returned by Document operations.
var (
	// ErrReadOnly indicates a replay was attempted on a read-only document.
	ErrReadOnly = errors.New("document is read-only")

	// ErrNoRoot indicates a document literal without a root component.
	ErrNoRoot = errors.New("document has no root component")
)
