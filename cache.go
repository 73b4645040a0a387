package sitekit

import (
	"context"
	"sync"
	"time"

	"github.com/kulius/sitekit/content"
)

// PostCache is an in-memory snapshot of the enumerated posts with TTL. A
// snapshot is either the complete enumeration or nothing.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.PostSummary
	byID    map[string]content.PostSummary
	fetched time.Time
	ttl     time.Duration
	source  content.Collection
	metrics *Metrics
}

// NewPostCache creates a PostCache backed by the given collection.
func NewPostCache(src content.Collection, ttl time.Duration, m *Metrics) *PostCache {
	return &PostCache{source: src, ttl: ttl, metrics: m}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh enumeration.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.byID = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := content.Enumerate(ctx, c.source)
	if err != nil {
		c.metrics.collectionRefreshed(0, err)
		return err
	}
	byID := make(map[string]content.PostSummary, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	if posts == nil {
		posts = []content.PostSummary{}
	}
	c.posts = posts
	c.byID = byID
	c.fetched = time.Now()
	c.metrics.collectionRefreshed(len(posts), nil)
	return nil
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]content.PostSummary, map[string]content.PostSummary, error) {
	c.mu.RLock()
	if c.valid() {
		posts, byID := c.posts, c.byID
		c.mu.RUnlock()
		return posts, byID, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.byID, nil
}

// Posts returns every published post, sorted by id.
func (c *PostCache) Posts(ctx context.Context) ([]content.PostSummary, error) {
	posts, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// Post returns a single published post by id.
func (c *PostCache) Post(ctx context.Context, id string) (content.PostSummary, error) {
	_, byID, err := c.ensureLoaded(ctx)
	if err != nil {
		return content.PostSummary{}, err
	}
	p, ok := byID[id]
	if !ok {
		return content.PostSummary{}, content.ErrNotFound
	}
	return p, nil
}
