package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// Breaker protects a flaky dependency. It opens after maxFailures
// consecutive failures, stays open for cooldown, then lets up to
// probeLimit probe requests through before deciding to close or reopen.
type Breaker struct {
	mu sync.Mutex

	maxFailures int
	cooldown    time.Duration
	probeLimit  int

	state     BreakerState
	failures  int
	openedAt  time.Time
	probes    int
	probeWins int

	clock func() time.Time
}

func NewBreaker(maxFailures int, cooldown time.Duration, probeLimit int) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &Breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		probeLimit:  probeLimit,
		state:       BreakerClosed,
		clock:       time.Now,
	}
}

// Allow reports whether a request may proceed. Callers must follow up
// with RecordSuccess or RecordFailure when Allow returns nil.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.clock().Sub(b.openedAt) < b.cooldown {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.probes = 0
		b.probeWins = 0
	}

	if b.state == BreakerHalfOpen {
		if b.probes >= b.probeLimit {
			return ErrBreakerOpen
		}
		b.probes++
	}

	return nil
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.probeWins++
		if b.probeWins >= b.probeLimit {
			b.state = BreakerClosed
			b.failures = 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.maxFailures {
			b.trip()
		}
	case BreakerHalfOpen:
		b.trip()
	case BreakerOpen:
		b.openedAt = b.clock()
	}
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.clock().Sub(b.openedAt) >= b.cooldown {
		return BreakerHalfOpen
	}

	return b.state
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.clock()
	b.probes = 0
	b.probeWins = 0
}
