package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryArtifactCache_SetGet(t *testing.T) {
	c := NewInMemoryArtifactCache(0)
	defer c.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte("%PDF-1.3")
	require.NoError(t, c.Set(ctx, "snap:narrative", payload, time.Hour))
	payload[0] = 'X'

	got, ok, err := c.Get(ctx, "snap:narrative")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("%PDF-1.3"), got)

	got[0] = 'Y'
	again, _, _ := c.Get(ctx, "snap:narrative")
	assert.Equal(t, []byte("%PDF-1.3"), again)
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryArtifactCache_Expiry(t *testing.T) {
	c := NewInMemoryArtifactCache(time.Hour)
	defer c.Close()
	ctx := context.Background()

	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("b"), 0))

	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "forever")
	assert.True(t, ok)

	assert.Equal(t, 2, c.Size())
	c.cleanup()
	assert.Equal(t, 1, c.Size())
}

func TestInMemoryArtifactCache_CancelledContext(t *testing.T) {
	c := NewInMemoryArtifactCache(0)
	defer c.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), time.Minute), context.Canceled)
	_, _, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryArtifactCache_Concurrent(t *testing.T) {
	c := NewInMemoryArtifactCache(time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			_ = c.Set(ctx, key, []byte{byte(i)}, time.Minute)
			_, _, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, c.Size())
}

func TestInMemoryArtifactCache_Close(t *testing.T) {
	c := NewInMemoryArtifactCache(0)
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Zero(t, c.Size())
}
