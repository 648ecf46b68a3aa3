package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Result describes the outcome of one Allow call.
type Result struct {
	Limited   bool
	Remaining int
	ResetAt   time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window counter keyed by an arbitrary string (usually prefix:ip).
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(opts ...Option) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow counts one hit against key. The first hit of a window always passes.
func (l *Limiter) Allow(key string, limit int, period time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !w.resetAt.After(now) {
		w = &window{count: 1, resetAt: now.Add(period)}
		l.windows[key] = w
		return Result{Remaining: max(limit-1, 0), ResetAt: w.resetAt}
	}

	if w.count >= limit {
		return Result{Limited: true, ResetAt: w.resetAt}
	}

	w.count++
	return Result{Remaining: limit - w.count, ResetAt: w.resetAt}
}

// CleanExpired drops windows whose reset time has passed.
func (l *Limiter) CleanExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.windows {
		if !w.resetAt.After(now) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// ClientIP returns the first X-Forwarded-For entry, else X-Real-IP, else "unknown".
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return "unknown"
}

func Key(prefix string, r *http.Request) string {
	return prefix + ":" + ClientIP(r)
}
