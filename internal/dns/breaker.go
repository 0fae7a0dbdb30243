package dns

import (
	"context"
	"errors"
	"sync"
	"time"

	"emailengine/pkg/monitoring"
)

// breakerName is the single named breaker this package guards, per §4.3.
const breakerName = "dns-providers"

// State is one of the circuit breaker's three states.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// ErrCircuitOpen is returned by Query when the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker wraps a Resolver as a single named breaker for "dns-providers",
// generalizing the teacher's sync.RWMutex-guarded DomainCacheManager
// bookkeeping pattern to a state machine instead of a cache.
type Breaker struct {
	mu sync.Mutex

	state    State
	openedAt time.Time

	consecutiveFailures int
	consecutiveSuccesses int

	// halfOpenTrialInFlight gates half_open to a single concurrent probe:
	// everyone else fails fast with ErrCircuitOpen until it completes.
	halfOpenTrialInFlight bool

	failureThreshold int
	successThreshold int
	resetTimeout     time.Duration

	resolver Resolver
}

// NewBreaker wraps resolver behind a breaker with the given thresholds.
func NewBreaker(resolver Resolver, failureThreshold, successThreshold int, resetTimeout time.Duration) *Breaker {
	return &Breaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		resetTimeout:     resetTimeout,
		resolver:         resolver,
	}
}

// State returns the breaker's current state, transitioning open->half_open
// first if resetTimeout has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpenLocked()
	return b.state
}

func (b *Breaker) maybeHalfOpenLocked() {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.resetTimeout {
		b.state = StateHalfOpen
		b.consecutiveSuccesses = 0
		monitoring.RecordCircuitBreakerState(breakerName, 1)
	}
}

// Query executes domain/rtype through the wrapped resolver, failing fast
// with ErrCircuitOpen when the breaker is open. While half_open, exactly
// one caller is admitted as the trial; any others arriving concurrently
// fail fast with ErrCircuitOpen rather than also hitting the resolver. A
// well-formed negative answer (Result.Success with no error) does not
// count as a failure.
func (b *Breaker) Query(ctx context.Context, domain string, rtype RecordType) (Result, error) {
	b.mu.Lock()
	b.maybeHalfOpenLocked()
	switch b.state {
	case StateOpen:
		b.mu.Unlock()
		return Result{}, ErrCircuitOpen
	case StateHalfOpen:
		if b.halfOpenTrialInFlight {
			b.mu.Unlock()
			return Result{}, ErrCircuitOpen
		}
		b.halfOpenTrialInFlight = true
	}
	b.mu.Unlock()

	result, err := b.resolver.Query(ctx, domain, rtype)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.halfOpenTrialInFlight = false
	if err != nil {
		b.recordFailureLocked()
	} else {
		b.recordSuccessLocked()
	}
	return result, err
}

func (b *Breaker) recordFailureLocked() {
	b.consecutiveSuccesses = 0
	switch b.state {
	case StateHalfOpen:
		b.tripLocked()
	case StateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.failureThreshold {
			b.tripLocked()
		}
	}
}

func (b *Breaker) recordSuccessLocked() {
	b.consecutiveFailures = 0
	if b.state == StateHalfOpen {
		b.consecutiveSuccesses++
		if b.consecutiveSuccesses >= b.successThreshold {
			b.state = StateClosed
			b.consecutiveSuccesses = 0
			monitoring.RecordCircuitBreakerState(breakerName, 0)
		}
	}
}

func (b *Breaker) tripLocked() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.consecutiveFailures = 0
	b.consecutiveSuccesses = 0
	monitoring.RecordCircuitBreakerState(breakerName, 2)
	monitoring.RecordCircuitBreakerTrip(breakerName)
}
