package middleware

import (
	"sync"
	"time"
)

const localPruneThreshold = 10000

type window struct {
	start time.Time
	count int64
}

// localCounter is the in-process fallback for RateLimiter.
type localCounter struct {
	mu      sync.Mutex
	windows map[string]*window
}

func newLocalCounter() *localCounter {
	return &localCounter{windows: make(map[string]*window)}
}

func (l *localCounter) hit(key string, size time.Duration, now time.Time) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.windows) > localPruneThreshold {
		for k, w := range l.windows {
			if now.Sub(w.start) > size {
				delete(l.windows, k)
			}
		}
	}

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) > size {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count
}
