package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitOpensAfterRepeatedRateLimits(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	cb.OnError(RateLimitError{Provider: "p"})
	if !cb.Allow() {
		t.Fatalf("circuit must stay closed below the threshold")
	}
	cb.OnError(RateLimitError{Provider: "p"})
	if cb.Allow() {
		t.Fatalf("circuit must open at the threshold")
	}
}

func TestCircuitIgnoresNonRateLimitErrors(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)

	cb.OnError(errors.New("connection refused"))
	if !cb.Allow() {
		t.Fatalf("ordinary failures must not open the circuit")
	}
}

func TestCircuitSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)

	cb.OnError(RateLimitError{Provider: "p"})
	cb.OnSuccess()
	cb.OnError(RateLimitError{Provider: "p"})
	if !cb.Allow() {
		t.Fatalf("success must reset the failure count")
	}
}

func TestCircuitReopensOnRateLimitAfterCooldown(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)
	clock := time.Now()
	cb.now = func() time.Time { return clock }

	cb.OnError(RateLimitError{Provider: "p"})
	if cb.Allow() {
		t.Fatalf("circuit must be open")
	}

	clock = clock.Add(2 * time.Minute)
	if !cb.Allow() {
		t.Fatalf("circuit must allow a trial call after the cooldown")
	}

	cb.OnError(RateLimitError{Provider: "p"})
	if cb.Allow() {
		t.Fatalf("a rate-limited trial call must reopen the circuit")
	}
}
