package driven

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// IndexRepository persists document indexes by name.
//
// Each index is stored as two artifacts: a binary vector artifact and
// a metadata artifact. Both are required for a successful load;
// partial presence is reported as domain.ErrNotFound.
type IndexRepository interface {
	// Save persists the index under its name, replacing any prior
	// index of the same name.
	Save(ctx context.Context, index *domain.DocumentIndex) error

	// Load reads the index stored under name. Returns
	// domain.ErrNotFound when the artifacts are missing or incomplete
	// and domain.ErrIndexCorrupt when they cannot be decoded.
	Load(ctx context.Context, name string) (*domain.DocumentIndex, error)

	// List returns the names of all fully persisted indexes in a
	// stable order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the artifacts for name. Removing an absent index
	// is not an error.
	Delete(ctx context.Context, name string) error
}

// IndexCache holds loaded indexes in memory.
//
// The cache is an explicit dependency injected into the index service
// rather than process-global state. Implementations bound their size;
// an evicted index is reloaded from the repository on the next get.
type IndexCache interface {
	// Get returns the cached index for name, if present.
	Get(name string) (*domain.DocumentIndex, bool)

	// Put installs an index, replacing any entry of the same name.
	Put(index *domain.DocumentIndex)

	// Any returns an arbitrary cached index when the cache is
	// non-empty. No ordering guarantee.
	Any() (*domain.DocumentIndex, bool)

	// Invalidate removes the entry for name, if present.
	Invalidate(name string)

	// Len returns the number of cached indexes.
	Len() int
}
