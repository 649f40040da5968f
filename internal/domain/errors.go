package domain

import "errors"

// Domain errors represent search service failures the UI recognises.
// These are distinct from transport errors, which propagate unwrapped.
var (
	// ErrIndexNotFound indicates the target index does not exist.
	// Returned by delete and search against a missing index.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexExists indicates index creation targeted an existing index.
	ErrIndexExists = errors.New("index already exists")
)
