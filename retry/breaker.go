package retry

import (
	"context"
	"sync"
	"time"

	"github.com/strata-repo/fault"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows all requests through.
	StateClosed State = iota
	// StateOpen rejects all requests.
	StateOpen
	// StateHalfOpen allows limited requests to test recovery.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpen is returned when the circuit breaker rejects a request. It is an
// unavailable fault, so callers classify and retry it like any other
// transient backend failure.
var ErrOpen = fault.New(fault.KindUnavailable, "circuit breaker open")

// Breaker sheds load from a repository backend that keeps failing with
// transient faults. Permanent faults pass through without tripping it: a
// backend that rejects bad input is up.
type Breaker struct {
	name         string
	maxFailures  int
	timeout      time.Duration
	halfOpenSucc int // Successes needed in half-open to close

	mu           sync.RWMutex
	state        State
	failures     int
	lastFailTime time.Time
	successCount int
}

// NewBreaker creates a circuit breaker that opens after maxFailures
// consecutive transient faults and probes again after timeout.
func NewBreaker(name string, maxFailures int, timeout time.Duration) *Breaker {
	return &Breaker{
		name:         name,
		maxFailures:  maxFailures,
		timeout:      timeout,
		halfOpenSucc: 2, // Require 2 successes to close
		state:        StateClosed,
	}
}

// Execute runs fn with circuit breaker protection.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	b.afterRequest(err)

	return err
}

// beforeRequest checks if the request should be allowed.
func (b *Breaker) beforeRequest() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if time.Since(b.lastFailTime) > b.timeout {
			b.state = StateHalfOpen
			b.successCount = 0
			return nil
		}
		return ErrOpen

	default:
		return nil
	}
}

// afterRequest updates the breaker state. Only transient faults count as
// failures; a permanent fault proves the backend answered and is treated
// like a success for state purposes.
func (b *Breaker) afterRequest(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil && fault.Transient(err) {
		b.failures++
		b.lastFailTime = time.Now()

		if b.state == StateHalfOpen {
			// Failure in half-open -> reopen
			b.state = StateOpen
		} else if b.failures >= b.maxFailures {
			b.state = StateOpen
		}
		return
	}

	switch b.state {
	case StateHalfOpen:
		b.successCount++
		if b.successCount >= b.halfOpenSucc {
			b.state = StateClosed
			b.failures = 0
		}
	case StateClosed:
		b.failures = 0
	}
}

// State returns the current circuit breaker state.
func (b *Breaker) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Name returns the circuit breaker name.
func (b *Breaker) Name() string {
	return b.name
}

// Failures returns the current count of consecutive transient failures.
func (b *Breaker) Failures() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.failures
}
