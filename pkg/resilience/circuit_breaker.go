package resilience

import (
	"log/slog"
	"sync"
	"time"

	"github.com/intervo/intervo/pkg/logging"
)

const (
	defaultFailureThreshold = 3
	defaultCooldown         = 30 * time.Second
)

// CircuitBreaker sheds calls to a provider that keeps rate limiting us.
// Only rate limit errors count toward opening; other failures are the
// retry policy's problem. Once the cooldown elapses calls flow again, and
// the very next rate limit reopens the circuit for a full cooldown.
type CircuitBreaker struct {
	threshold int
	cooldown  time.Duration
	now       func() time.Time
	logger    *slog.Logger

	mu        sync.Mutex
	failures  int
	openUntil time.Time
}

func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = defaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &CircuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		logger:    logging.NewComponentLogger(slog.Default(), "circuit_breaker"),
	}
}

// Allow reports whether a call may proceed.
func (c *CircuitBreaker) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.now().Before(c.openUntil)
}

// OnSuccess closes the circuit and forgets accumulated failures.
func (c *CircuitBreaker) OnSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failures > 0 || !c.openUntil.IsZero() {
		c.logger.Info("circuit closed")
	}
	c.failures = 0
	c.openUntil = time.Time{}
}

// OnError records a failed call. Non-rate-limit errors are ignored.
func (c *CircuitBreaker) OnError(err error) {
	if !IsRateLimit(err) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.failures >= c.threshold {
		c.openUntil = c.now().Add(c.cooldown)
		c.logger.Warn("circuit opened",
			slog.Int("failures", c.failures),
			slog.Duration("cooldown", c.cooldown))
	}
}
