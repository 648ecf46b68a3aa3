package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TagInvalidator is implemented by caches that can drop entries by tag.
type TagInvalidator interface {
	InvalidateTags(tags ...string) int
}

// Broadcaster pushes a message to connected browsers.
type Broadcaster interface {
	Broadcast(message any) int
}

// Publisher forwards events to other instances.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

const publishTimeout = 5 * time.Second

// Invalidator fans cache invalidations out to local caches, browsers and other instances.
type Invalidator struct {
	instanceID string
	log        *zap.Logger

	mu        sync.RWMutex
	caches    []TagInvalidator
	hub       Broadcaster
	publisher Publisher
}

func NewInvalidator(instanceID string, hub Broadcaster, log *zap.Logger) *Invalidator {
	return &Invalidator{instanceID: instanceID, hub: hub, log: log}
}

func (i *Invalidator) InstanceID() string { return i.instanceID }

func (i *Invalidator) Register(c TagInvalidator) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.caches = append(i.caches, c)
}

func (i *Invalidator) SetPublisher(p Publisher) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.publisher = p
}

// Invalidate applies tags locally and publishes them to other instances.
// Publishing failures are logged; the local state is already consistent.
func (i *Invalidator) Invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	i.apply(tags)

	i.mu.RLock()
	publisher := i.publisher
	i.mu.RUnlock()
	if publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := publisher.Publish(pubCtx, NewInvalidation(i.instanceID, tags)); err != nil {
		i.log.Warn("publish invalidation failed", zap.Error(err), zap.Strings("tags", tags))
	}
}

// HandleRemote applies an event received from another instance. Own events are ignored.
func (i *Invalidator) HandleRemote(e *Event) error {
	if e == nil || e.Origin == i.instanceID || e.Type != TypeInvalidate {
		return nil
	}
	i.apply(e.Tags)
	return nil
}

func (i *Invalidator) apply(tags []string) {
	i.mu.RLock()
	caches := append([]TagInvalidator(nil), i.caches...)
	hub := i.hub
	i.mu.RUnlock()

	removed := 0
	for _, c := range caches {
		removed += c.InvalidateTags(tags...)
	}

	sent := 0
	if hub != nil {
		sent = hub.Broadcast(ClientMessage{Type: TypeInvalidate, Tags: tags})
	}
	i.log.Debug("cache invalidated", zap.Strings("tags", tags), zap.Int("removed", removed), zap.Int("notified", sent))
}
