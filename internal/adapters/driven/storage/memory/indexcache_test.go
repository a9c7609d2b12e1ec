package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func cachedIndex(name string) *domain.DocumentIndex {
	return &domain.DocumentIndex{Name: name, Model: "mock-embed"}
}

func TestCacheGetPut(t *testing.T) {
	cache := NewIndexCache(4)

	_, ok := cache.Get("doc")
	assert.False(t, ok)

	cache.Put(cachedIndex("doc"))
	index, ok := cache.Get("doc")
	require.True(t, ok)
	assert.Equal(t, "doc", index.Name)
	assert.Equal(t, 1, cache.Len())
}

func TestCachePutReplacesSameName(t *testing.T) {
	cache := NewIndexCache(4)

	cache.Put(cachedIndex("doc"))
	replacement := &domain.DocumentIndex{Name: "doc", Model: "all-minilm"}
	cache.Put(replacement)

	index, ok := cache.Get("doc")
	require.True(t, ok)
	assert.Equal(t, "all-minilm", index.Model)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewIndexCache(2)

	cache.Put(cachedIndex("a"))
	cache.Put(cachedIndex("b"))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put(cachedIndex("c"))
	assert.Equal(t, 2, cache.Len())

	_, ok = cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
	_, ok = cache.Get("c")
	assert.True(t, ok)
}

func TestCacheAny(t *testing.T) {
	cache := NewIndexCache(2)

	_, ok := cache.Any()
	assert.False(t, ok)

	cache.Put(cachedIndex("doc"))
	index, ok := cache.Any()
	require.True(t, ok)
	assert.Equal(t, "doc", index.Name)
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewIndexCache(2)

	cache.Put(cachedIndex("doc"))
	cache.Invalidate("doc")

	_, ok := cache.Get("doc")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())

	// Invalidating an absent name is a no-op.
	cache.Invalidate("ghost")
}

func TestCacheDefaultCapacity(t *testing.T) {
	cache := NewIndexCache(0)

	for i := 0; i < DefaultCacheCapacity+2; i++ {
		cache.Put(cachedIndex(string(rune('a' + i))))
	}
	assert.Equal(t, DefaultCacheCapacity, cache.Len())
}
