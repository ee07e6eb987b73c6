// Package ratelimit provides the in-memory limiters shared by every handler:
// a sliding-window request counter and a lockout-based login limiter. State
// lives for the process lifetime only; identifiers are never evicted, which
// is acceptable for short-lived deployments but would leak in a long-running
// process.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter counts requests per identifier within a trailing window.
// One instance is shared across all handlers; window and max are supplied
// per call site.
type Limiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func New() *Limiter {
	return &Limiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Allow records a request for id and reports whether it stays within max
// requests per window. The request is counted even when rejected.
func (l *Limiter) Allow(id string, window time.Duration, max int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	kept := l.hits[id][:0]
	for _, t := range l.hits[id] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	l.hits[id] = kept

	return len(kept) <= max
}

// LoginLimiter tracks consecutive failed login attempts per identifier and
// locks the identifier out for a fixed window once the threshold is reached.
type LoginLimiter struct {
	mu          sync.Mutex
	records     map[string]*loginRecord
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

type loginRecord struct {
	attempts     int
	lockoutUntil time.Time
}

func NewLoginLimiter(maxAttempts int, lockout time.Duration) *LoginLimiter {
	return &LoginLimiter{
		records:     make(map[string]*loginRecord),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Check reports whether id may attempt a login. When locked out it also
// returns the remaining lockout time rounded up to whole minutes.
func (l *LoginLimiter) Check(id string) (allowed bool, remainingMinutes int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[id]
	if !ok {
		return true, 0
	}

	now := l.now()
	if rec.lockoutUntil.After(now) {
		remaining := rec.lockoutUntil.Sub(now)
		minutes := int((remaining + time.Minute - 1) / time.Minute)
		return false, minutes
	}

	// Lockout expired: start a fresh attempt count.
	if rec.attempts >= l.maxAttempts {
		rec.attempts = 0
	}
	return true, 0
}

// RecordFailure counts a failed attempt and returns how many attempts remain
// before lockout. Reaching the threshold starts the lockout window.
func (l *LoginLimiter) RecordFailure(id string) (remainingAttempts int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[id]
	if !ok {
		rec = &loginRecord{}
		l.records[id] = rec
	}

	rec.attempts++
	if rec.attempts >= l.maxAttempts {
		rec.lockoutUntil = l.now().Add(l.lockout)
	}

	remaining := l.maxAttempts - rec.attempts
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Reset clears the record for id after a successful login.
func (l *LoginLimiter) Reset(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.records, id)
}
