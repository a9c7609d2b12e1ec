// Package domain defines the core business entities for docqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded span of document text plus its source identifier
//   - DocumentIndex: A persisted collection of chunk embeddings for one source
//   - ChatTurn: A question/answer pair with source attribution
//   - Session: A named, newest-first log of chat turns
//   - ShareSnapshot: A frozen, token-addressed copy of a session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
