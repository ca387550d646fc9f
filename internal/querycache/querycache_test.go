package querycache

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGetInvalidate(t *testing.T) {
	cache := New()
	key := Key("room", "room-1")

	cache.Set(key, "detail")
	value, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "detail", value)

	cache.Invalidate(key)
	_, ok = cache.Get(key)
	assert.False(t, ok, "invalidated entries are stale")

	// Refetching makes it fresh again.
	cache.Set(key, "detail-v2")
	value, ok = cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, "detail-v2", value)
}

func TestInvalidateIsIdempotent(t *testing.T) {
	cache := New()
	cache.Set(Key("room", "room-1"), "detail")
	cache.Set(Key("chat", "room-1"), "messages")

	cache.Invalidate(Key("room", "room-1"))
	first := cache.StaleKeys()
	cache.Invalidate(Key("room", "room-1"))
	second := cache.StaleKeys()

	sort.Strings(first)
	sort.Strings(second)
	assert.Equal(t, first, second, "double invalidation must not change the stale set")
	assert.Equal(t, []string{"room/room-1"}, second)
}

func TestInvalidateUnknownKeyIsHarmless(t *testing.T) {
	cache := New()
	cache.Invalidate(Key("match", "room-1", "match-1"))
	assert.Empty(t, cache.StaleKeys())
}

func TestSubscribeReceivesInvalidations(t *testing.T) {
	cache := New()

	var seen []string
	unsubscribe := cache.Subscribe(func(key string) { seen = append(seen, key) })

	cache.Invalidate("a")
	cache.Invalidate("b")
	unsubscribe()
	cache.Invalidate("c")

	assert.Equal(t, []string{"a", "b"}, seen)
}
