package orchestrator

import (
	"context"
	"sync"

	"github.com/scambait/scambait/pkg/httputil"
)

// DefaultMaxConcurrentTurns caps simultaneous turn processing across all
// sessions. Turns beyond the cap queue rather than drop.
const DefaultMaxConcurrentTurns = 30

// Limiter enforces two levels of concurrency control: a global semaphore
// over all in-flight turns, and a per-session mutex so two turns for the
// same conversation never interleave their read-modify-write on the store.
type Limiter struct {
	global *httputil.Semaphore

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewLimiter builds a limiter with the given global capacity; values <= 0
// fall back to DefaultMaxConcurrentTurns.
func NewLimiter(capacity int) *Limiter {
	if capacity <= 0 {
		capacity = DefaultMaxConcurrentTurns
	}
	return &Limiter{
		global: httputil.NewSemaphore(capacity),
		locks:  make(map[string]*sessionLock),
	}
}

// Acquire blocks until a global slot and the session's lock are both held,
// or the context expires. The returned release function must be called
// exactly once.
func (l *Limiter) Acquire(ctx context.Context, sessionID string) (func(), error) {
	if err := l.global.Acquire(ctx); err != nil {
		return nil, err
	}

	sl := l.checkout(sessionID)
	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()
		l.checkin(sessionID)
		l.global.Release()
	}, nil
}

// checkout fetches or creates the session's lock and bumps its refcount.
func (l *Limiter) checkout(sessionID string) *sessionLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	sl, ok := l.locks[sessionID]
	if !ok {
		sl = &sessionLock{}
		l.locks[sessionID] = sl
	}
	sl.refs++
	return sl
}

// checkin drops the refcount and reclaims the entry at zero, so the lock map
// doesn't grow with every session ever seen.
func (l *Limiter) checkin(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sl, ok := l.locks[sessionID]
	if !ok {
		return
	}
	sl.refs--
	if sl.refs <= 0 {
		delete(l.locks, sessionID)
	}
}

// Stats exposes global semaphore metrics for the stats endpoint.
func (l *Limiter) Stats() httputil.SemaphoreStats {
	return l.global.Stats()
}

// TrackedSessions returns how many sessions currently hold or wait on a lock.
func (l *Limiter) TrackedSessions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
