package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured or unreachable. The pipeline cannot run without it.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrDataStoreUnavailable indicates the data store could not be
	// opened at startup (missing database file, unreadable path).
	ErrDataStoreUnavailable = errors.New("data store unavailable")

	// ErrCorpusUnavailable indicates the document corpus could not be
	// loaded at startup (missing directory, unreadable files).
	ErrCorpusUnavailable = errors.New("corpus unavailable")
)
