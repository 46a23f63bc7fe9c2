package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHit(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCacheMiss(t *testing.T) {
	c := NewCache[int](time.Minute)

	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache[string](time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set("k", "v")

	_, ok := c.Get("k")
	require.True(t, ok)

	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheEvictsExpiredEntries(t *testing.T) {
	c := NewCache[string](time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", "v1")
	now = now.Add(2 * time.Minute)

	// An expired Get drops the entry instead of leaving it behind.
	_, ok := c.Get("a")
	require.False(t, ok)
	assert.NotContains(t, c.entries, "a")

	// Set sweeps out entries that expired in the meantime.
	c.Set("b", "v2")
	c.Set("c", "v3")
	now = now.Add(2 * time.Minute)
	c.Set("d", "v4")
	assert.Len(t, c.entries, 1)
	assert.Contains(t, c.entries, "d")
}

func TestPointKey(t *testing.T) {
	a := PointKey(27.71720, 85.32400, 1000)
	b := PointKey(27.71720, 85.32400, 1000)
	assert.Equal(t, a, b)

	// Different radius means a different key.
	c := PointKey(27.71720, 85.32400, 1500)
	assert.NotEqual(t, a, c)

	// Qualifiers separate amenity sets.
	d := PointKey(27.71720, 85.32400, 1000, "hospital", "school")
	assert.NotEqual(t, a, d)
}
