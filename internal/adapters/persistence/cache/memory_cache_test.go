package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "v"))

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v1"))
	require.NoError(t, c.Set(ctx, "k", "v2"))

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v2", got)
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	clock := time.Now()
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Set(ctx, "k", "v"))

	clock = clock.Add(defaultTTL - time.Second)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	// the expired entry is dropped, not just hidden
	c.mu.RLock()
	_, present := c.data["k"]
	c.mu.RUnlock()
	assert.False(t, present)
}
