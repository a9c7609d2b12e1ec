// Package memory provides in-memory implementations of the storage
// ports: a bounded LRU index cache used by the running pipeline, and
// session/share stores used by tests and ephemeral runs.
package memory

import (
	"container/list"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure IndexCache implements the interface.
var _ driven.IndexCache = (*IndexCache)(nil)

// DefaultCacheCapacity is the default number of indexes kept in memory.
const DefaultCacheCapacity = 8

// IndexCache is a bounded, least-recently-used cache of loaded
// document indexes. An evicted index is simply reloaded from the
// repository on its next get, so eviction never loses data.
//
// The cache guards its state with a mutex: concurrent builders and
// readers stay memory-safe, but the last writer for a name wins.
type IndexCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type cacheEntry struct {
	name  string
	index *domain.DocumentIndex
}

// NewIndexCache creates a cache holding at most capacity indexes.
// capacity <= 0 selects DefaultCacheCapacity.
func NewIndexCache(capacity int) *IndexCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &IndexCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached index for name and marks it recently used.
func (c *IndexCache) Get(name string) (*domain.DocumentIndex, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).index, true
}

// Put installs an index, replacing any entry of the same name and
// evicting the least recently used entry when over capacity.
func (c *IndexCache) Put(index *domain.DocumentIndex) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[index.Name]; ok {
		elem.Value.(*cacheEntry).index = index
		c.order.MoveToFront(elem)
		return
	}

	c.entries[index.Name] = c.order.PushFront(&cacheEntry{name: index.Name, index: index})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).name)
	}
}

// Any returns an arbitrary cached index when the cache is non-empty.
func (c *IndexCache) Any() (*domain.DocumentIndex, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	front := c.order.Front()
	if front == nil {
		return nil, false
	}
	return front.Value.(*cacheEntry).index, true
}

// Invalidate removes the entry for name, if present.
func (c *IndexCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[name]; ok {
		c.order.Remove(elem)
		delete(c.entries, name)
	}
}

// Len returns the number of cached indexes.
func (c *IndexCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
