package wheel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpinWheel_Go/internal/domain"
)

// CacheStats reports snapshot cache effectiveness
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// cachedWheelEntry wraps a wheel snapshot with version metadata for cache invalidation
type cachedWheelEntry struct {
	Version  string
	Wheel    domain.Wheel
	CachedAt time.Time
}

// wheelCache holds read-only wheel snapshots for probability previews.
// Each wheel has a generation that Invalidate bumps; a snapshot read before the
// bump is never stored after it.
type wheelCache struct {
	lru    *expirable.LRU[uuid.UUID, *cachedWheelEntry]
	hits   atomic.Uint64
	misses atomic.Uint64

	mu   sync.Mutex
	gens map[uuid.UUID]uint64
}

// newWheelCache creates a cache holding at most size snapshots for ttl each
func newWheelCache(size int, ttl time.Duration) *wheelCache {
	if size <= 0 {
		size = 1
	}
	return &wheelCache{
		lru:  expirable.NewLRU[uuid.UUID, *cachedWheelEntry](size, nil, ttl),
		gens: make(map[uuid.UUID]uint64),
	}
}

// Get returns a copy of the cached wheel. Entries from an older schema are dropped.
func (c *wheelCache) Get(id uuid.UUID) (*domain.Wheel, bool) {
	entry, found := c.lru.Get(id)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(id)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	w := copyWheel(&entry.Wheel)
	return w, true
}

// Generation returns the wheel's current invalidation count.
// Read it before loading the snapshot that will be passed to SetIfCurrent.
func (c *wheelCache) Generation(id uuid.UUID) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id]
}

// SetIfCurrent stores a snapshot of w only if the wheel has not been invalidated
// since gen was read. It reports whether the snapshot was stored.
func (c *wheelCache) SetIfCurrent(w *domain.Wheel, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[w.ID] != gen {
		return false
	}
	c.add(w)
	return true
}

// Invalidate removes a wheel's snapshot and bumps its generation
func (c *wheelCache) Invalidate(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	c.lru.Remove(id)
}

func (c *wheelCache) add(w *domain.Wheel) {
	c.lru.Add(w.ID, &cachedWheelEntry{
		Version:  CacheSchemaVersion,
		Wheel:    *copyWheel(w),
		CachedAt: time.Now(),
	})
}

// Stats returns hit/miss counters and current size
func (c *wheelCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}

// copyWheel deep-copies the parts of a wheel callers may mutate
func copyWheel(w *domain.Wheel) *domain.Wheel {
	out := *w
	out.Participants = make([]domain.Participant, len(w.Participants))
	copy(out.Participants, w.Participants)
	if w.Rigging != nil {
		rig := *w.Rigging
		out.Rigging = &rig
	}
	return &out
}
