package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// DefaultTopK is the number of chunks retrieved per question when the
// caller does not specify one.
const DefaultTopK = 4

// Retriever ranks an index's chunks by similarity to a query.
type Retriever struct {
	embedder driven.EmbeddingService
}

// NewRetriever creates a retriever backed by the given embedding
// service. It must be the same service the queried indexes were built
// with; the retriever rejects a mismatched model rather than comparing
// vectors from different embedding spaces.
func NewRetriever(embedder driven.EmbeddingService) *Retriever {
	return &Retriever{embedder: embedder}
}

// Retrieve returns the top k chunks of index ranked by cosine
// similarity to query, ties broken by insertion order. It returns at
// most k chunks, and fewer only when the index holds fewer. An empty
// index yields an empty result. k <= 0 selects DefaultTopK.
func (r *Retriever) Retrieve(ctx context.Context, index *domain.DocumentIndex, query string, k int) ([]domain.Chunk, error) {
	if index == nil || index.Len() == 0 {
		return nil, nil
	}

	if index.Model != "" && index.Model != r.embedder.ModelName() {
		return nil, fmt.Errorf("index %q built with model %q, querying with %q: %w",
			index.Name, index.Model, r.embedder.ModelName(), domain.ErrModelMismatch)
	}

	if k <= 0 {
		k = DefaultTopK
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w: %w", domain.ErrEmbeddingFailed, err)
	}

	type scored struct {
		entry domain.IndexEntry
		score float64
	}
	ranked := make([]scored, index.Len())
	for i, entry := range index.Entries {
		ranked[i] = scored{entry: entry, score: cosineSimilarity(queryVec, entry.Embedding)}
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	chunks := make([]domain.Chunk, k)
	for i := 0; i < k; i++ {
		chunks[i] = ranked[i].entry.Chunk
		logger.Debug("Hit %d: source=%s position=%d score=%.4f",
			i+1, chunks[i].SourceID, chunks[i].Position, ranked[i].score)
	}
	return chunks, nil
}

// cosineSimilarity computes the cosine of the angle between two
// vectors. Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
