package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_TripAndRecover(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2025, 10, 1, 18, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow while closed: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after one failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open at the failure limit, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}

	// After the cooldown one probe is admitted.
	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe admitted, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after winning probe, got %s", state)
	}
}

func TestCircuitBreaker_ProbeFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(1, 5*time.Second, 1)

	now := time.Date(2025, 10, 1, 18, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe admitted, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened after failed probe, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreaker_ProbeSlotsBounded(t *testing.T) {
	b := NewCircuitBreaker(1, time.Second, 2)

	now := time.Date(2025, 10, 1, 18, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe: %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("second probe: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected third probe rejected, got %v", err)
	}
}
