// Package resilience holds the small building blocks the outbound clients
// lean on when a dependency misbehaves.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker trips after a run of consecutive failures, then admits a
// bounded number of probe requests once the cooldown elapses.
type CircuitBreaker struct {
	mu sync.Mutex

	failLimit  int
	cooldown   time.Duration
	probeLimit int

	state          CircuitState
	failStreak     int
	lastOpen       time.Time
	probesInFlight int
	probeWins      int

	clock func() time.Time
}

func NewCircuitBreaker(failLimit int, cooldown time.Duration, probeLimit int) *CircuitBreaker {
	if failLimit < 1 {
		failLimit = 1
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	if probeLimit < 1 {
		probeLimit = 1
	}

	return &CircuitBreaker{
		failLimit:  failLimit,
		cooldown:   cooldown,
		probeLimit: probeLimit,
		state:      CircuitStateClosed,
		clock:      time.Now,
	}
}

// Allow reports whether a request may proceed. In the half-open state it
// also reserves one of the probe slots.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.clock().Sub(b.lastOpen) < b.cooldown {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.probesInFlight >= b.probeLimit {
			return ErrCircuitOpen
		}
		b.probesInFlight++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failStreak = 0
	case CircuitStateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.probeWins++
		if b.probeWins >= b.probeLimit && b.probesInFlight == 0 {
			b.enterClosed()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failStreak++
		if b.failStreak >= b.failLimit {
			b.enterOpen()
		}
	case CircuitStateHalfOpen:
		if b.probesInFlight > 0 {
			b.probesInFlight--
		}
		b.enterOpen()
	case CircuitStateOpen:
		// A failure while open restarts the cooldown.
		b.lastOpen = b.clock()
	}
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.clock().Sub(b.lastOpen) >= b.cooldown {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) enterClosed() {
	b.state = CircuitStateClosed
	b.failStreak = 0
	b.probesInFlight = 0
	b.probeWins = 0
	b.lastOpen = time.Time{}
}

func (b *CircuitBreaker) enterOpen() {
	b.state = CircuitStateOpen
	b.lastOpen = b.clock()
	b.probesInFlight = 0
	b.probeWins = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.probesInFlight = 0
	b.probeWins = 0
}
