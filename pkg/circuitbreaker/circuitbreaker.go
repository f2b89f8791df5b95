package circuitbreaker

import (
	"fmt"
	"sync"
	"time"
)

// Settings configures a breaker guarding one upstream dependency.
type Settings struct {
	Name        string
	MaxFailures int
	Cooldown    time.Duration
}

// CircuitBreaker trips after consecutive failures and rejects calls until
// the cooldown elapses, then lets a single probe through.
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	failures    int
	lastFailure time.Time
	state       string
	mu          sync.RWMutex
}

// ErrOpen is returned while the breaker rejects calls.
type ErrOpen struct{ Name string }

func (e *ErrOpen) Error() string {
	return fmt.Sprintf("circuit breaker %q is open", e.Name)
}

func New(settings Settings) *CircuitBreaker {
	if settings.MaxFailures <= 0 {
		settings.MaxFailures = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	return &CircuitBreaker{
		name:        settings.Name,
		maxFailures: settings.MaxFailures,
		cooldown:    settings.Cooldown,
		state:       "closed",
	}
}

func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == "open" {
		if time.Since(cb.lastFailure) > cb.cooldown {
			cb.state = "half-open"
		} else {
			cb.mu.Unlock()
			return &ErrOpen{Name: cb.name}
		}
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.lastFailure = time.Now()
		if cb.failures >= cb.maxFailures {
			cb.state = "open"
		}
		return err
	}

	cb.state = "closed"
	cb.failures = 0
	return nil
}

// State reports the current breaker state, for readiness checks.
func (cb *CircuitBreaker) State() string {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}
