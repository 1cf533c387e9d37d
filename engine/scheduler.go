package engine

import (
	"container/heap"
	"time"
)

// task is a (fire-time, action) pair queued on the scheduler
type task struct {
	at  time.Time
	seq uint64
	fn  func()
}

// taskHeap is a min-heap of tasks ordered by fire time, then by
// scheduling order for equal times
type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Scheduler queues delayed actions and fires them when the game loop
// drains it. Tasks are not cancellable; superseded tasks still fire.
//
// Owned by the main game goroutine. Schedule and Drain must not be
// called concurrently; provider goroutines communicate through the
// event queue or latest-value slots instead.
type Scheduler struct {
	time  TimeProvider
	tasks taskHeap
	seq   uint64
}

// NewScheduler creates a scheduler reading time from the given provider
func NewScheduler(tp TimeProvider) *Scheduler {
	s := &Scheduler{time: tp}
	heap.Init(&s.tasks)
	return s
}

// After queues fn to fire once d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.At(s.time.Now().Add(d), fn)
}

// At queues fn to fire once the provider time reaches t
func (s *Scheduler) At(t time.Time, fn func()) {
	s.seq++
	heap.Push(&s.tasks, task{at: t, seq: s.seq, fn: fn})
}

// Drain fires every task due at the current provider time, in fire-time
// then scheduling order, and returns the number fired. A fired task may
// queue further tasks; ones already due run within the same drain.
func (s *Scheduler) Drain() int {
	now := s.time.Now()
	fired := 0
	for s.tasks.Len() > 0 && !now.Before(s.tasks[0].at) {
		t := heap.Pop(&s.tasks).(task)
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of queued tasks not yet fired
func (s *Scheduler) Pending() int {
	return s.tasks.Len()
}

// NextAt returns the fire time of the earliest queued task.
// The second return is false when the queue is empty.
func (s *Scheduler) NextAt() (time.Time, bool) {
	if s.tasks.Len() == 0 {
		return time.Time{}, false
	}
	return s.tasks[0].at, true
}
