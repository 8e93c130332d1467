package auth

import (
	"sync"
	"time"
)

type attemptState struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// Limiter counts failed logins per client and locks a client out after
// maxAttempts failures inside window.
type Limiter struct {
	maxAttempts  int
	window       time.Duration
	lockDuration time.Duration
	now          func() time.Time

	lock     sync.Mutex
	attempts map[string]*attemptState
}

// NewLimiter creates a login limiter. A non-positive maxAttempts disables it.
func NewLimiter(maxAttempts int, window, lockDuration time.Duration) *Limiter {
	return &Limiter{
		maxAttempts:  maxAttempts,
		window:       window,
		lockDuration: lockDuration,
		now:          time.Now,
		attempts:     make(map[string]*attemptState),
	}
}

// Locked returns how long key stays locked out, zero when it may try again.
func (l *Limiter) Locked(key string) time.Duration {
	l.lock.Lock()
	defer l.lock.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return 0
	}
	now := l.now()
	if !now.Before(state.lockedUntil) {
		return 0
	}
	return state.lockedUntil.Sub(now)
}

// Fail records a failed attempt and returns the attempts left before lockout.
func (l *Limiter) Fail(key string) int {
	if l.maxAttempts <= 0 {
		return 1
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	now := l.now()
	state, ok := l.attempts[key]
	if !ok || now.Sub(state.firstAttempt) > l.window {
		state = &attemptState{firstAttempt: now}
		l.attempts[key] = state
	}

	state.count++
	if state.count >= l.maxAttempts {
		state.lockedUntil = now.Add(l.lockDuration)
		state.count = l.maxAttempts
	}

	return l.maxAttempts - state.count
}

// Reset forgets the failures of key.
func (l *Limiter) Reset(key string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	delete(l.attempts, key)
}
