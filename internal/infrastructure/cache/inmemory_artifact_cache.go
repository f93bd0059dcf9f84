package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

type artifact struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

func (a artifact) expired(now time.Time) bool {
	return !a.expiresAt.IsZero() && now.After(a.expiresAt)
}

// InMemoryArtifactCache keeps compiled documents in a map. It suits a
// single server instance and the CLI.
type InMemoryArtifactCache struct {
	mu        sync.RWMutex
	entries   map[string]artifact
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryArtifactCache creates the cache and starts a goroutine that
// sweeps expired entries every sweepInterval (5 minutes when zero).
func NewInMemoryArtifactCache(sweepInterval time.Duration) *InMemoryArtifactCache {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	c := &InMemoryArtifactCache{
		entries:  make(map[string]artifact),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(sweepInterval)

	return c
}

// Get returns a copy of the cached bytes
func (c *InMemoryArtifactCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.entries[key]
	if !ok || a.expired(c.now()) {
		return nil, false, nil
	}
	return append([]byte(nil), a.data...), true, nil
}

// Set stores a copy of data. A non-positive ttl keeps the entry until Close.
func (c *InMemoryArtifactCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a := artifact{data: append([]byte(nil), data...)}
	if ttl > 0 {
		a.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = a
	return nil
}

// Close stops the sweeper and drops every entry. Safe to call multiple times.
func (c *InMemoryArtifactCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
		c.mu.Lock()
		c.entries = make(map[string]artifact)
		c.mu.Unlock()
	})
	return nil
}

func (c *InMemoryArtifactCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryArtifactCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, a := range c.entries {
		if a.expired(now) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries, expired ones included until swept
func (c *InMemoryArtifactCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ shared.ArtifactCache = (*InMemoryArtifactCache)(nil)
