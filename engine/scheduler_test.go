package engine

import (
	"testing"
	"time"
)

// TestSchedulerFiresInOrder verifies due tasks fire in fire-time order
// regardless of scheduling order.
func TestSchedulerFiresInOrder(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)

	var order []int
	s.After(300*time.Millisecond, func() { order = append(order, 3) })
	s.After(100*time.Millisecond, func() { order = append(order, 1) })
	s.After(200*time.Millisecond, func() { order = append(order, 2) })

	mock.Advance(500 * time.Millisecond)
	fired := s.Drain()

	if fired != 3 {
		t.Errorf("Expected 3 tasks fired, got %d", fired)
	}
	for i, want := range []int{1, 2, 3} {
		if order[i] != want {
			t.Errorf("Expected task %d at position %d, got %d", want, i, order[i])
		}
	}
}

// TestSchedulerHoldsFutureTasks verifies tasks do not fire before their time.
func TestSchedulerHoldsFutureTasks(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)

	fired := false
	s.After(2*time.Second, func() { fired = true })

	mock.Advance(1999 * time.Millisecond)
	if n := s.Drain(); n != 0 {
		t.Errorf("Expected 0 tasks fired before due time, got %d", n)
	}
	if fired {
		t.Error("Expected task to be held until due time")
	}
	if s.Pending() != 1 {
		t.Errorf("Expected 1 pending task, got %d", s.Pending())
	}

	mock.Advance(1 * time.Millisecond)
	if n := s.Drain(); n != 1 {
		t.Errorf("Expected 1 task fired at due time, got %d", n)
	}
	if !fired {
		t.Error("Expected task to fire at due time")
	}
}

// TestSchedulerEqualTimesFIFO verifies tasks with identical fire times
// run in the order they were scheduled.
func TestSchedulerEqualTimesFIFO(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)
	due := mock.Now().Add(100 * time.Millisecond)

	var order []int
	for i := 0; i < 5; i++ {
		s.At(due, func() { order = append(order, i) })
	}

	mock.Advance(100 * time.Millisecond)
	s.Drain()

	for i := 0; i < 5; i++ {
		if order[i] != i {
			t.Fatalf("Expected FIFO order for equal fire times, got %v", order)
		}
	}
}

// TestSchedulerReentrantScheduling verifies a fired task may queue
// further tasks, and due ones run within the same drain.
func TestSchedulerReentrantScheduling(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)

	var order []string
	s.After(100*time.Millisecond, func() {
		order = append(order, "outer")
		s.After(0, func() { order = append(order, "inner-due") })
		s.After(time.Hour, func() { order = append(order, "inner-future") })
	})

	mock.Advance(100 * time.Millisecond)
	fired := s.Drain()

	if fired != 2 {
		t.Errorf("Expected 2 tasks fired (outer plus due inner), got %d", fired)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner-due" {
		t.Errorf("Expected [outer inner-due], got %v", order)
	}
	if s.Pending() != 1 {
		t.Errorf("Expected future inner task to stay pending, got %d", s.Pending())
	}
}

// TestSchedulerNoCancellation verifies superseded tasks still fire, the
// accepted looseness for stale highlight reverts and replay steps.
func TestSchedulerNoCancellation(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)

	staleFired := false
	freshFired := false
	s.After(500*time.Millisecond, func() { staleFired = true })

	// A new round is armed while the old task is still pending
	s.After(700*time.Millisecond, func() { freshFired = true })

	mock.Advance(time.Second)
	s.Drain()

	if !staleFired || !freshFired {
		t.Errorf("Expected both stale and fresh tasks to fire, got stale=%v fresh=%v",
			staleFired, freshFired)
	}
}

// TestSchedulerNextAt verifies the earliest fire time is reported.
func TestSchedulerNextAt(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(mock)

	if _, ok := s.NextAt(); ok {
		t.Error("Expected no next time on empty scheduler")
	}

	s.After(300*time.Millisecond, func() {})
	s.After(100*time.Millisecond, func() {})

	at, ok := s.NextAt()
	if !ok {
		t.Fatal("Expected a next fire time")
	}
	want := mock.Now().Add(100 * time.Millisecond)
	if !at.Equal(want) {
		t.Errorf("Expected next fire time %v, got %v", want, at)
	}
}
