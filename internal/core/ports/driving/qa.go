package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// QAService is the retrieval-augmented question answering entry point.
type QAService interface {
	// Ask answers a question against the index named indexName. An
	// empty indexName selects the default index (any cached index, or
	// the first persisted one). When no index exists at all, Ask
	// returns a fixed "no document indexed" answer with no sources;
	// that is a normal outcome, not an error.
	Ask(ctx context.Context, query, indexName string) (*domain.Answer, error)

	// Ingest splits, embeds and indexes text under name. Blank text is
	// a no-op.
	Ingest(ctx context.Context, name, text string) error

	// IngestFile extracts text from the file at path and ingests it
	// under a sanitised form of its base name. It returns the index
	// name used.
	IngestFile(ctx context.Context, path string) (string, error)
}
