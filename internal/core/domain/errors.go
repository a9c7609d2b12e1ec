package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, such as
	// chunking parameters where the overlap reaches the chunk size.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingFailed indicates the embedding service was
	// unreachable or returned an error. Fatal to index builds and
	// retrieval; never retried internally.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrGenerationFailed indicates the language model was unreachable
	// or returned an error. The pipeline surfaces this as a distinct
	// kind so callers can render "answer unavailable" instead of
	// crashing.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrModelMismatch indicates a query was embedded with a different
	// model than the one the index was built with. Mixing embedding
	// spaces produces meaningless similarities, so it is rejected.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrIndexCorrupt indicates a persisted index could not be
	// decoded. Loaders treat corrupt indexes as absent.
	ErrIndexCorrupt = errors.New("index corrupt")
)
