package domain

// Chunk represents a retrievable unit of document text.
// Documents are split into overlapping chunks before embedding.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// SourceID names the document this chunk was cut from.
	// It matches the Name of the DocumentIndex that owns the chunk.
	SourceID string

	// Text is the chunk content.
	Text string

	// Position is the ordinal position within the source document.
	// Retrieval ties are broken by Position, keeping ranking stable.
	Position int
}

// IndexEntry pairs a chunk with its embedding vector.
type IndexEntry struct {
	// Embedding is the vector representation of the chunk text.
	Embedding []float32

	// Chunk is the embedded chunk.
	Chunk Chunk
}

// DocumentIndex is a named, persistent vector index over one source
// document. Identity is the Name; rebuilding a name fully replaces
// any prior index of that name.
type DocumentIndex struct {
	// Name is the document/source identifier.
	Name string

	// Model is the embedding model the entries were built with.
	// Queries embedded with a different model are rejected.
	Model string

	// Entries hold the embedded chunks in insertion order.
	Entries []IndexEntry
}

// Len returns the number of embedded chunks in the index.
func (d *DocumentIndex) Len() int {
	return len(d.Entries)
}

// Answer is the result of asking a question against an index.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the distinct source identifiers of the chunks the
	// answer was grounded on. Deduplicated, order unspecified.
	Sources []string
}
