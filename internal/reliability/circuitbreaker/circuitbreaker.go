// Package circuitbreaker provides fast-fail protection for flaky
// dependencies. The candidate cache uses it so a sick Redis degrades reads
// to pass-through instead of stalling every request.
package circuitbreaker

import (
	"sync"
	"sync/atomic"
	"time"
)

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// CircuitBreaker trips open after failureThreshold consecutive failures and
// probes again after timeout; successThreshold probe successes close it.
type CircuitBreaker struct {
	state            atomic.Value
	failures         atomic.Int32
	successes        atomic.Int32
	lastFailure      atomic.Value
	failureThreshold int32
	successThreshold int32
	timeout          time.Duration
	mu               sync.RWMutex
	onStateChange    func(from, to State)
}

// New creates a closed breaker.
func New(failureThreshold, successThreshold int32, timeout time.Duration) *CircuitBreaker {
	cb := &CircuitBreaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
		onStateChange:    func(_, _ State) {},
	}
	cb.state.Store(StateClosed)
	return cb
}

// OnStateChange registers a callback invoked on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// RecordSuccess resets the failure count and, in half-open, counts toward
// closing the breaker.
func (cb *CircuitBreaker) RecordSuccess() {
	switch cb.GetState() {
	case StateHalfOpen:
		cb.successes.Add(1)
		if cb.successes.Load() >= cb.successThreshold {
			cb.setState(StateClosed)
			cb.failures.Store(0)
			cb.successes.Store(0)
		}
	case StateClosed:
		cb.failures.Store(0)
	}
}

// RecordFailure counts toward tripping open; any failure during half-open
// reopens immediately.
func (cb *CircuitBreaker) RecordFailure() {
	now := time.Now()
	cb.lastFailure.Store(&now)

	switch cb.GetState() {
	case StateClosed:
		cb.failures.Add(1)
		if cb.failures.Load() >= cb.failureThreshold {
			cb.setState(StateOpen)
			cb.failures.Store(0)
			cb.successes.Store(0)
		}
	case StateHalfOpen:
		cb.setState(StateOpen)
		cb.failures.Store(0)
		cb.successes.Store(0)
	}
}

// AllowRequest reports whether a call may proceed. An open breaker past its
// timeout moves to half-open and lets one probe through.
func (cb *CircuitBreaker) AllowRequest() bool {
	switch cb.GetState() {
	case StateClosed, StateHalfOpen:
		return true
	}
	last, ok := cb.lastFailure.Load().(*time.Time)
	if !ok || last == nil {
		return false
	}
	if time.Since(*last) > cb.timeout {
		cb.setState(StateHalfOpen)
		cb.failures.Store(0)
		cb.successes.Store(0)
		return true
	}
	return false
}

// GetState returns the current state.
func (cb *CircuitBreaker) GetState() State {
	return cb.state.Load().(State)
}

func (cb *CircuitBreaker) setState(newState State) {
	oldState := cb.GetState()
	if oldState == newState {
		return
	}
	cb.state.Store(newState)
	cb.mu.RLock()
	fn := cb.onStateChange
	cb.mu.RUnlock()
	if fn != nil {
		fn(oldState, newState)
	}
}
