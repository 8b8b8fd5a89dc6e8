package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when the backend has no product with the
	// requested id.
	ErrNotFound = errors.New("product not found")

	// ErrBackend is returned when the backend answers with an unexpected
	// status code.
	ErrBackend = errors.New("backend request failed")
)
