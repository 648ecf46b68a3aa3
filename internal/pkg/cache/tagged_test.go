package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(ttl time.Duration) (*Tagged[string], *clock) {
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTagged[string](ttl)
	c.now = clk.now
	return c, clk
}

func TestTagged_GetSet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v", "assets")
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	assert.Equal(t, 1, c.Size())
}

func TestTagged_Expiry(t *testing.T) {
	c, clk := newTestCache(time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	clk.t = clk.t.Add(30 * time.Second)
	c.Set("b", "3")

	clk.t = clk.t.Add(40 * time.Second)
	_, ok := c.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 0, c.CleanExpired())
	clk.t = clk.t.Add(time.Minute)
	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 0, c.Size())
}

func TestTagged_InvalidateTags(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("assets:list", "x", "assets", "locations", "expenses")
	c.Set("dashboard:1", "y", "dashboard")
	c.Set("other", "z")

	assert.Equal(t, 1, c.InvalidateTags("expenses"))
	_, ok := c.Get("assets:list")
	assert.False(t, ok)

	_, ok = c.Get("dashboard:1")
	assert.True(t, ok)

	assert.Equal(t, 1, c.InvalidateTags("dashboard", "unknown"))
	assert.Equal(t, 1, c.Size())
}

func TestTagged_OverwriteDropsOldTags(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("k", "v1", "assets")
	c.Set("k", "v2", "dashboard")

	assert.Equal(t, 0, c.InvalidateTags("assets"))
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestTagged_ZeroTTLDisables(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestManager_CleanAll(t *testing.T) {
	c, clk := newTestCache(time.Second)
	c.Set("k", "v")
	clk.t = clk.t.Add(2 * time.Second)

	m := NewManager()
	m.Register(c)
	assert.Equal(t, 1, m.CleanAll())

	m.StartCleanup(time.Hour)
	m.Stop()
}

func TestManager_StopTwice(t *testing.T) {
	m := NewManager()
	m.StartCleanup(time.Hour)
	m.Stop()
	assert.NotPanics(t, m.Stop)

	idle := NewManager()
	idle.Stop()
	assert.NotPanics(t, idle.Stop)
}
