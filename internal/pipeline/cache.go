package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/couchcryptid/region-sentiment/internal/observability"
)

// CachedRunner wraps a Runner with an in-memory LRU of reports keyed by the
// normalized query term. Cached reports are served as-is, so record file
// changes are only seen for terms not yet cached.
type CachedRunner struct {
	inner   Runner
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedRunner creates a cache decorator around a runner. A size of 0
// disables caching and every call reaches the inner runner.
func NewCachedRunner(inner Runner, size int, metrics *observability.Metrics) *CachedRunner {
	r := &CachedRunner{inner: inner, metrics: metrics}
	if size > 0 {
		r.cache = newLRUCache(size)
	}
	return r
}

func (r *CachedRunner) Run(ctx context.Context, term string) (domain.Report, error) {
	if r.cache == nil {
		return r.inner.Run(ctx, term)
	}

	key := cacheKey(term)
	if report, ok := r.cache.get(key); ok {
		r.metrics.ReportCache.WithLabelValues("hit").Inc()
		return report, nil
	}
	r.metrics.ReportCache.WithLabelValues("miss").Inc()

	report, err := r.inner.Run(ctx, term)
	if err != nil {
		// Failed runs, including publish failures, are retried on the next call.
		return report, err
	}
	r.cache.put(key, report)
	return report, nil
}

func cacheKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// lruCache is a simple thread-safe LRU cache for reports.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Report
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Report{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
