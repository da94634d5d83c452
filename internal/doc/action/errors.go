package action

import "errors"

// Errors returned while decoding the wire format.
var (
	// ErrInvalidJSON indicates the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrUnknownAction indicates an action record with an unknown type tag.
	ErrUnknownAction = errors.New("unknown action type")

	// ErrInvalidLiteral indicates a slot or component literal is malformed.
	ErrInvalidLiteral = errors.New("invalid literal")
)
