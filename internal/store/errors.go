package store

import "errors"

// Sentinel errors that handlers translate into HTTP status codes.
// Anything else coming out of the store is an unexpected failure and
// surfaces as a generic 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
