package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskpilot/internal/models"
)

func TestCacheGetSet(t *testing.T) {
	c := New()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", models.Payload{"value": 1.0}, 5*time.Minute)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1.0, got["value"])
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	c.Set("k", models.Payload{"value": 1.0}, 5*time.Minute)

	now = now.Add(5*time.Minute - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry should still be fresh just inside the TTL")

	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire once the TTL elapses")
}

func TestCacheSetRestartsWindow(t *testing.T) {
	c := New()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	c.Set("k", models.Payload{"v": "old"}, time.Minute)
	now = now.Add(50 * time.Second)
	c.Set("k", models.Payload{"v": "new"}, time.Minute)

	now = now.Add(30 * time.Second)
	got, ok := c.Get("k")
	require.True(t, ok, "rewrite should restart the expiry window")
	assert.Equal(t, "new", got["v"])
}

func TestCacheClear(t *testing.T) {
	c := New()
	c.Set("a", models.Payload{}, time.Minute)
	c.Set("b", models.Payload{}, time.Minute)
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestKeyDerivation(t *testing.T) {
	symbols := []string{"AAPL", "MSFT"}
	weights := []float64{0.6, 0.4}

	k1 := Key("risk", symbols, weights)
	k2 := Key("risk", []string{"AAPL", "MSFT"}, []float64{0.6, 0.4})
	assert.Equal(t, k1, k2, "identical portfolios must share a key")

	k3 := Key("risk", []string{"MSFT", "AAPL"}, weights)
	assert.NotEqual(t, k1, k3, "symbol order is part of the key")

	k4 := Key("risk", symbols, []float64{0.6000001, 0.3999999})
	assert.NotEqual(t, k1, k4, "weights are keyed at full precision")

	k5 := Key("stress", symbols, weights)
	assert.NotEqual(t, k1, k5, "endpoint is part of the key")

	assert.Equal(t, "health|AAPL|0.25|100000|true", Key("health", "AAPL", 0.25, 100000, true))
}
