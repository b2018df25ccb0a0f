package platform

import (
	"testing"
	"time"
)

func TestSimClock_AdvanceFiresDueTimers(t *testing.T) {
	clock := NewSimClock(time.Unix(0, 0))
	fired := 0

	clock.AfterFunc(10*time.Millisecond, func() { fired++ })
	clock.AfterFunc(30*time.Millisecond, func() { fired++ })

	clock.Advance(10 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected 1 timer fired, got %d", fired)
	}
	clock.Advance(25 * time.Millisecond)
	if fired != 2 {
		t.Fatalf("expected 2 timers fired, got %d", fired)
	}
}

func TestSimClock_StopPreventsFire(t *testing.T) {
	clock := NewSimClock(time.Unix(0, 0))
	fired := false

	timer := clock.AfterFunc(5*time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatalf("expected stop of armed timer to report true")
	}
	clock.Advance(10 * time.Millisecond)
	if fired {
		t.Fatalf("expected stopped timer not to fire")
	}
	if timer.Stop() {
		t.Fatalf("expected second stop to report false")
	}
}

func TestSimClock_ResetReschedules(t *testing.T) {
	clock := NewSimClock(time.Unix(0, 0))
	fired := 0

	timer := clock.AfterFunc(5*time.Millisecond, func() { fired++ })
	timer.Reset(20 * time.Millisecond)

	clock.Advance(10 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected no fire before rescheduled deadline, got %d", fired)
	}
	clock.Advance(10 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected fire at rescheduled deadline, got %d", fired)
	}
}

func TestSimClock_ChainedTimersFireInWindow(t *testing.T) {
	clock := NewSimClock(time.Unix(0, 0))
	var order []string

	clock.AfterFunc(5*time.Millisecond, func() {
		order = append(order, "first")
		clock.AfterFunc(5*time.Millisecond, func() {
			order = append(order, "second")
		})
	})

	clock.Advance(20 * time.Millisecond)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected chained timers to fire in order, got %v", order)
	}
}
