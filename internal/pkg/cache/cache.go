package cache

import (
	"sync"
	"time"
)

// Cleaner is implemented by stores with expiring entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans every registered store.
type Manager struct {
	mu          sync.Mutex
	stores      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
	started     bool
	stopOnce    sync.Once
}

func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores = append(m.stores, c)
}

// CleanAll runs one cleanup pass and returns the number of removed entries.
func (m *Manager) CleanAll() int {
	m.mu.Lock()
	stores := append([]Cleaner(nil), m.stores...)
	m.mu.Unlock()

	total := 0
	for _, s := range stores {
		total += s.CleanExpired()
	}
	return total
}

func (m *Manager) StartCleanup(interval time.Duration) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.cleanupDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.CleanAll()
			case <-m.stopCleanup:
				return
			}
		}
	}()
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		close(m.stopCleanup)
		if started {
			<-m.cleanupDone
		}
	})
}
