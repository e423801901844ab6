package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Reserve(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 2, time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Reserve("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Reserve("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.Reserve("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	ok, _ = rl.Reserve("10.0.0.2")
	assert.True(t, ok, "buckets are per ip")

	now = now.Add(time.Second)
	ok, _ = rl.Reserve("10.0.0.1")
	assert.True(t, ok, "a token refills after one second")
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Reserve("10.0.0.1")
	assert.Len(t, rl.visitors, 1)

	now = now.Add(2 * time.Minute)
	rl.Reserve("10.0.0.2")
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_SweepsAtMostOncePerTTL(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	rl := NewRateLimiter(1, 1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Reserve("10.0.0.1")

	now = start.Add(30 * time.Second)
	rl.Reserve("10.0.0.2")

	now = start.Add(70 * time.Second)
	rl.Reserve("10.0.0.3")
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")

	now = start.Add(100 * time.Second)
	rl.Reserve("10.0.0.4")
	assert.Contains(t, rl.visitors, "10.0.0.2", "no sweep until a ttl has passed since the last one")
	assert.Len(t, rl.visitors, 3)
}
