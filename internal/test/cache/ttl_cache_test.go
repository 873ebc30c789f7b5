package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/cache"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := cache.New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
}

func TestTTLCache_Expiry(t *testing.T) {
	c := cache.New[string, string](20*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("token", "identity")

	got, ok := c.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "identity", got)

	time.Sleep(40 * time.Millisecond)

	// Expired entries are invisible even before the sweep removes them.
	_, ok = c.Get("token")
	assert.False(t, ok)
}

func TestTTLCache_BackgroundEviction(t *testing.T) {
	c := cache.New[string, int](10*time.Millisecond, 20*time.Millisecond)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)

	assert.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestTTLCache_Delete(t *testing.T) {
	c := cache.New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	c.Delete("a")
}

func TestTTLCache_SetRefreshesTTL(t *testing.T) {
	c := cache.New[string, int](50*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(30 * time.Millisecond)
	c.Set("a", 2)
	time.Sleep(30 * time.Millisecond)

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
}
