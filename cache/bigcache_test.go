package cache

import (
	"testing"
	"time"

	"github.com/wyfcoding/inversion/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, minLength int) *ResultCache {
	t.Helper()
	c, err := NewResultCache(config.CacheConfig{Enabled: true, TTL: time.Minute, MaxSizeMB: 8, MinLength: minLength})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestResultCacheRoundTrip(t *testing.T) {
	c := newTestCache(t, 0)
	seq := []int{4, 1, 8, 5, 6, 2, 7, 3}

	_, ok := c.Get(seq)
	assert.False(t, ok)

	require.NoError(t, c.Set(seq, 15))
	got, ok := c.Get(seq)
	require.True(t, ok)
	assert.Equal(t, uint64(15), got)
	assert.Equal(t, 1, c.Len())

	// 同一组数字换个顺序是不同的键。
	_, ok = c.Get([]int{1, 4, 8, 5, 6, 2, 7, 3})
	assert.False(t, ok)

}

func TestResultCacheMinLength(t *testing.T) {
	c := newTestCache(t, 4)
	short := []int{2, 1}

	require.NoError(t, c.Set(short, 1))
	_, ok := c.Get(short)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Cacheable(3))
	assert.True(t, c.Cacheable(4))
}

func TestNilResultCache(t *testing.T) {
	var c *ResultCache
	_, ok := c.Get([]int{1})
	assert.False(t, ok)
	assert.NoError(t, c.Set([]int{1}, 0))
	assert.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}

func TestFingerprintDependsOnLength(t *testing.T) {
	k1, _ := fingerprint([]int{})
	k2, _ := fingerprint([]int{0})
	assert.NotEqual(t, k1, k2)
}
