package knowledge

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes a Retriever's results for a short TTL. Errors are not
// cached.
type Cache struct {
	next    Retriever
	entries *expirable.LRU[string, []Passage]
}

var _ Retriever = (*Cache)(nil)

// NewCache wraps next. Non-positive size or ttl use the defaults.
func NewCache(next Retriever, size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		next:    next,
		entries: expirable.NewLRU[string, []Passage](size, nil, ttl),
	}
}

// Location delegates to the wrapped retriever.
func (c *Cache) Location() string {
	return c.next.Location()
}

// Retrieve serves from cache or falls through to the wrapped retriever.
// Callers get their own copy of the slice.
func (c *Cache) Retrieve(ctx context.Context, query string, limit int) ([]Passage, error) {
	key := strconv.Itoa(limit) + "|" + query
	if hit, ok := c.entries.Get(key); ok {
		return append([]Passage(nil), hit...), nil
	}

	out, err := c.next.Retrieve(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, append([]Passage(nil), out...))
	return out, nil
}

// Len reports the number of cached queries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
