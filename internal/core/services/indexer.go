package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/chunker"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// IndexService owns the vector-index lifecycle: it builds indexes from
// document text, persists them through the repository and serves them
// from an injected in-memory cache.
type IndexService struct {
	splitter *chunker.Splitter
	embedder driven.EmbeddingService
	repo     driven.IndexRepository
	cache    driven.IndexCache

	// failed marks names whose persisted artifacts could not be
	// decoded this process lifetime. A failed load is not attempted
	// again until an explicit rebuild.
	mu     sync.Mutex
	failed map[string]struct{}
}

// NewIndexService creates an index service.
func NewIndexService(
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	repo driven.IndexRepository,
	cache driven.IndexCache,
) *IndexService {
	return &IndexService{
		splitter: splitter,
		embedder: embedder,
		repo:     repo,
		cache:    cache,
		failed:   make(map[string]struct{}),
	}
}

// Build chunks text, embeds each chunk and installs a fresh index
// under name, fully replacing any prior index of the same name.
// Blank text is a no-op: nothing is persisted or cached and the
// returned index is nil.
//
// Embedding and persistence failures propagate; a failed build leaves
// no cache entry behind.
func (s *IndexService) Build(ctx context.Context, name, text string) (*domain.DocumentIndex, error) {
	if strings.TrimSpace(text) == "" {
		logger.Debug("Build %q: blank text, skipping", name)
		return nil, nil
	}

	logger.Section("Index Build")
	chunks := s.splitter.Split(text, name)
	logger.Debug("Split %q into %d chunks", name, len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("build %q: %w: %w", name, domain.ErrEmbeddingFailed, err)
	}

	index := &domain.DocumentIndex{
		Name:    name,
		Model:   s.embedder.ModelName(),
		Entries: make([]domain.IndexEntry, len(chunks)),
	}
	for i := range chunks {
		index.Entries[i] = domain.IndexEntry{
			Embedding: embeddings[i],
			Chunk:     chunks[i],
		}
	}

	if err := s.repo.Save(ctx, index); err != nil {
		return nil, fmt.Errorf("persisting index %q: %w", name, err)
	}

	s.mu.Lock()
	delete(s.failed, name)
	s.mu.Unlock()

	s.cache.Put(index)
	logger.Info("Indexed %q: %d chunks, model %s", name, index.Len(), index.Model)
	return index, nil
}

// Get returns the index stored under name, loading and caching it on
// first access. Missing or unreadable indexes degrade silently to
// absent (nil, nil).
//
// An empty name selects the default index: any cached index if the
// cache is non-empty, otherwise the first persisted index by stable
// enumeration. This is an accepted simplification for the common
// single-document-per-session usage, not multi-document correctness.
func (s *IndexService) Get(ctx context.Context, name string) (*domain.DocumentIndex, error) {
	if name == "" {
		return s.getDefault(ctx)
	}

	if index, ok := s.cache.Get(name); ok {
		return index, nil
	}

	s.mu.Lock()
	_, dead := s.failed[name]
	s.mu.Unlock()
	if dead {
		logger.Debug("Index %q marked unreadable, not retrying load", name)
		return nil, nil
	}

	index, err := s.repo.Load(ctx, name)
	if err != nil {
		logger.Warn("Loading index %q: %v", name, err)
		// Only corrupt artifacts are never retried; a merely missing
		// index may appear in storage later.
		if errors.Is(err, domain.ErrIndexCorrupt) {
			s.mu.Lock()
			s.failed[name] = struct{}{}
			s.mu.Unlock()
		}
		return nil, nil
	}

	s.cache.Put(index)
	return index, nil
}

// getDefault picks an arbitrary cached index, falling back to the
// first loadable persisted one.
func (s *IndexService) getDefault(ctx context.Context) (*domain.DocumentIndex, error) {
	if index, ok := s.cache.Any(); ok {
		return index, nil
	}

	names, err := s.repo.List(ctx)
	if err != nil {
		logger.Warn("Listing persisted indexes: %v", err)
		return nil, nil
	}

	for _, name := range names {
		if index, err := s.Get(ctx, name); err == nil && index != nil {
			return index, nil
		}
	}
	return nil, nil
}

// List returns the names of all persisted indexes.
func (s *IndexService) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

// Remove deletes the persisted artifacts for name and drops it from
// the cache. Removing an absent index is not an error.
func (s *IndexService) Remove(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("removing index %q: %w", name, err)
	}
	s.cache.Invalidate(name)
	s.mu.Lock()
	delete(s.failed, name)
	s.mu.Unlock()
	return nil
}
