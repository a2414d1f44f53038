package memory

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"quiz-host-service/internal/app"
	"golang.org/x/sync/singleflight"
)

// DocumentCache caches whole collections with a TTL in front of a slower
// app.DocumentStore (e.g. Postgres). Writes go straight through and
// invalidate the cached copy.
type DocumentCache struct {
	next  app.DocumentStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedDocument
	gen   map[string]uint64
}

type cachedDocument struct {
	data      json.RawMessage
	expiresAt time.Time
}

func NewDocumentCache(next app.DocumentStore, ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		next:  next,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedDocument),
		gen:   make(map[string]uint64),
	}
}

func (c *DocumentCache) Load(ctx context.Context, collection string, dst any) error {
	data, err := c.raw(ctx, collection)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func (c *DocumentCache) Save(ctx context.Context, collection string, v any) error {
	c.mu.Lock()
	delete(c.cache, collection)
	c.gen[collection]++
	c.mu.Unlock()

	err := c.next.Save(ctx, collection, v)

	c.mu.Lock()
	delete(c.cache, collection)
	c.gen[collection]++
	c.mu.Unlock()
	return err
}

func (c *DocumentCache) raw(ctx context.Context, collection string) (json.RawMessage, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[collection]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.data, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(collection, func() (interface{}, error) {
		c.mu.RLock()
		if entry, ok := c.cache[collection]; ok && entry.expiresAt.After(c.clock()) {
			c.mu.RUnlock()
			return entry.data, nil
		}
		gen := c.gen[collection]
		c.mu.RUnlock()

		var data json.RawMessage
		if err := c.next.Load(ctx, collection, &data); err != nil {
			return json.RawMessage(nil), err
		}
		expiresAt := c.clock().Add(c.ttlWithJitter())

		c.mu.Lock()
		// a write landed while loading; don't cache what may be stale
		if c.gen[collection] == gen {
			c.cache[collection] = cachedDocument{data: data, expiresAt: expiresAt}
		}
		c.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *DocumentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
