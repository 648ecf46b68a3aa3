package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	tags      []string
	expiresAt time.Time
}

// Tagged is a TTL cache whose entries can be dropped by tag.
type Tagged[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry[T]
	byTag map[string]map[string]struct{}
	now   func() time.Time
}

func NewTagged[T any](ttl time.Duration) *Tagged[T] {
	return &Tagged[T]{
		ttl:   ttl,
		items: make(map[string]entry[T]),
		byTag: make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

func (c *Tagged[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.removeLocked(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive TTL disables caching.
func (c *Tagged[T]) Set(key string, value T, tags ...string) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(key)
	c.items[key] = entry[T]{value: value, tags: tags, expiresAt: c.now().Add(c.ttl)}
	for _, tag := range tags {
		keys, ok := c.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// InvalidateTags drops every entry carrying at least one of tags.
func (c *Tagged[T]) InvalidateTags(tags ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, tag := range tags {
		for key := range c.byTag[tag] {
			if _, ok := c.items[key]; ok {
				c.removeLocked(key)
				removed++
			}
		}
		delete(c.byTag, tag)
	}
	return removed
}

func (c *Tagged[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.items {
		if !now.Before(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

func (c *Tagged[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Tagged[T]) removeLocked(key string) {
	e, ok := c.items[key]
	if !ok {
		return
	}
	delete(c.items, key)
	for _, tag := range e.tags {
		if keys, ok := c.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
}
