// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"
)

var log = commonlog.GetLogger("asmls.settings")

// Fetcher retrieves the settings of a document from the client.
type Fetcher func(ctx context.Context, uri string) (File, error)

// Cache resolves and caches per-document settings.
//
// Concurrent requests for the same document share a single fetch. A fetch
// that was started before Clear or Delete never populates the cache, so a
// request always observes settings resolved after the most recent
// invalidation.
type Cache struct {
	fetch    Fetcher       // Client settings source. If nil, always the defaults.
	defaults File          // Settings used when a fetch fails.
	timeout  time.Duration // Bound on a single fetch, 0 for unbounded.

	lock       sync.Mutex
	resolved   map[string]File
	epoch      uint64            // Bumped by Clear.
	generation map[string]uint64 // Bumped by Delete, per document.
	group      singleflight.Group
}

// NewCache creates a settings cache.
func NewCache(defaults File, fetch Fetcher, timeout time.Duration) *Cache {
	return &Cache{
		fetch:      fetch,
		defaults:   defaults,
		timeout:    timeout,
		resolved:   make(map[string]File),
		generation: make(map[string]uint64),
	}
}

// Resolve starts resolving the settings of a document, and returns a channel
// which receives the settings exactly once.
func (c *Cache) Resolve(uri string) <-chan File {
	out := make(chan File, 1)

	if c.fetch == nil {
		out <- c.defaults
		return out
	}

	c.lock.Lock()
	fs, ok := c.resolved[uri]
	epoch, generation := c.epoch, c.generation[uri]
	c.lock.Unlock()

	if ok {
		out <- fs
		return out
	}

	key := fmt.Sprintf("%d:%d:%s", epoch, generation, uri)
	ch := c.group.DoChan(key, func() (any, error) {
		ctx := context.Background()
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		fs, err := c.fetch(ctx, uri)
		if err != nil {
			return c.defaults, err
		}

		c.lock.Lock()
		if c.epoch == epoch && c.generation[uri] == generation {
			c.resolved[uri] = fs
		}
		c.lock.Unlock()

		return fs, nil
	})

	go func() {
		res := <-ch
		if res.Err != nil {
			log.Warningf("settings for %v: %v", uri, res.Err)
			out <- c.defaults
			return
		}
		out <- res.Val.(File)
	}()

	return out
}

// Get resolves the settings of a document, waiting at most until ctx is done.
// If the settings cannot be resolved in time, the defaults are returned.
func (c *Cache) Get(ctx context.Context, uri string) File {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	select {
	case fs := <-c.Resolve(uri):
		return fs
	case <-ctx.Done():
		log.Warningf("settings for %v: %v", uri, ctx.Err())
		return c.defaults
	}
}

// Delete evicts the settings of a single document. Fetches in flight for
// other documents are unaffected.
func (c *Cache) Delete(uri string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.resolved, uri)
	c.generation[uri]++
}

// Clear evicts all cached settings.
func (c *Cache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()

	clear(c.resolved)
	clear(c.generation)
	c.epoch++
}

// Len returns the number of documents with cached settings.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.resolved)
}
