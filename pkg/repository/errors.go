package repository

import "errors"

// Common repository errors.
var (
	// ErrMissingField is returned for a stanza lacking a mandatory field.
	ErrMissingField = errors.New("missing mandatory field")

	// ErrInvalidStanza is returned for a stanza whose fields cannot be parsed.
	ErrInvalidStanza = errors.New("invalid stanza")
)
