package domain

import "errors"

// Sentinel errors shared across entities. Repositories translate driver
// errors into these; controllers map them to HTTP status codes.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
