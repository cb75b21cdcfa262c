package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissOnEmptyCache(t *testing.T) {
	t.Parallel()

	c := New[string](time.Hour)
	_, ok := c.Get("browse:KR:Animal")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	c := New[int](time.Hour)
	c.Set("taxon:Panthera tigris", 15955)

	got, ok := c.Get("taxon:Panthera tigris")
	require.True(t, ok)
	assert.Equal(t, 15955, got)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	c := NewWithClock[string](time.Hour, clock)
	c.Set("assessments:KR", "cached")

	clock.Advance(59 * time.Minute)
	_, ok := c.Get("assessments:KR")
	assert.True(t, ok, "entry should still be valid inside the TTL window")

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("assessments:KR")
	assert.False(t, ok, "entry should have expired")
	assert.Equal(t, 0, c.Len(), "expired entry should be collected on read")
}

func TestNoExpirationEntriesSurviveClockAdvance(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	c := NewWithClock[string](time.Hour, clock)
	c.SetWithTTL("taxon:Ailuropoda melanoleuca", "MAMMALIA", NoExpiration)

	clock.Advance(1000 * time.Hour)
	got, ok := c.Get("taxon:Ailuropoda melanoleuca")
	require.True(t, ok)
	assert.Equal(t, "MAMMALIA", got)
}

func TestLastWriterWins(t *testing.T) {
	t.Parallel()

	c := New[string](time.Hour)
	c.Set("k", "first")
	c.Set("k", "second")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestOverwriteResetsTTL(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	c := NewWithClock[string](time.Hour, clock)
	c.Set("k", "v1")

	clock.Advance(50 * time.Minute)
	c.Set("k", "v2")

	clock.Advance(50 * time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok, "refreshed entry should be valid for a full TTL")
	assert.Equal(t, "v2", got)
}

func TestDeleteAndFlush(t *testing.T) {
	t.Parallel()

	c := New[int](time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Flush()
	assert.Equal(t, 0, c.Len())
}
