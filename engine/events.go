// Package engine provides the core loop infrastructure: time providers,
// the delayed-task scheduler, the game event queue, and run metrics.
//
// Systems communicate by pushing events to a shared EventQueue rather
// than calling into each other. Pushes are lock-free and safe from any
// goroutine; the game loop is the single consumer and drains the queue
// once per frame.
package engine

import (
	"sync/atomic"
	"time"
)

// EventType identifies a game event
type EventType int

const (
	// EventKeyPressed is an accepted fingertip press, forwarded to the
	// sequence engine. Key carries the key index.
	EventKeyPressed EventType = iota

	// EventPressRejected is a fingertip press suppressed by the shared
	// debounce timer. Key carries the key index.
	EventPressRejected

	// EventNotePlayed fires whenever a key's clip is triggered, by the
	// player or by the sequence replay. Key carries the key index.
	EventNotePlayed

	// EventReplayStarted marks the first note of a sequence replay.
	EventReplayStarted

	// EventReplayFinished marks the end of a sequence replay; the game
	// is now waiting on player input. Level carries the current level.
	EventReplayFinished

	// EventSequenceComplete fires when the player matches the full
	// sequence. Level carries the completed level.
	EventSequenceComplete

	// EventSequenceFailed fires on the first mismatched press.
	// Key carries the wrong key, Level the level that was lost.
	EventSequenceFailed

	// EventMessageShown fires when a transient message takes over the
	// screen; EventMessageCleared when its timer removes it.
	EventMessageShown
	EventMessageCleared
)

// String returns the name of the event type for logs and debugging
func (e EventType) String() string {
	switch e {
	case EventKeyPressed:
		return "KeyPressed"
	case EventPressRejected:
		return "PressRejected"
	case EventNotePlayed:
		return "NotePlayed"
	case EventReplayStarted:
		return "ReplayStarted"
	case EventReplayFinished:
		return "ReplayFinished"
	case EventSequenceComplete:
		return "SequenceComplete"
	case EventSequenceFailed:
		return "SequenceFailed"
	case EventMessageShown:
		return "MessageShown"
	case EventMessageCleared:
		return "MessageCleared"
	default:
		return "Unknown"
	}
}

// GameEvent is a single immutable event. Key and Level are meaningful
// only for the event types documented above; Frame enables consumers to
// deduplicate, Timestamp serves logging.
type GameEvent struct {
	Type      EventType
	Key       int
	Level     int
	Frame     int64
	Timestamp time.Time
}

// eventQueueSize is the ring capacity; oldest events are overwritten
// when producers outrun the consumer by more than this
const eventQueueSize = 256

// EventQueue is a lock-free ring buffer for game events.
//
// Push uses a CAS loop and is safe for any number of producers. Consume
// is for the single game-loop consumer. Peek is a read-only snapshot
// safe from any goroutine.
type EventQueue struct {
	events [eventQueueSize]GameEvent
	head   atomic.Uint64 // next read position
	tail   atomic.Uint64 // next write position
}

// NewEventQueue creates an empty event queue
func NewEventQueue() *EventQueue {
	eq := &EventQueue{}
	eq.head.Store(0)
	eq.tail.Store(0)
	return eq
}

// Push adds an event, overwriting the oldest if the ring is full
func (eq *EventQueue) Push(event GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			eq.events[currentTail%eventQueueSize] = event

			// Best-effort head advance when overwriting unread slots
			currentHead := eq.head.Load()
			if nextTail-currentHead > eventQueueSize {
				eq.head.CompareAndSwap(currentHead, nextTail-eventQueueSize)
			}
			return
		}
		// CAS failed, retry
	}
}

// Consume returns all pending events in FIFO order and marks them
// consumed. Returns nil when the queue is empty. Single consumer only.
func (eq *EventQueue) Consume() []GameEvent {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()

	available := currentTail - currentHead
	if available == 0 {
		return nil
	}
	if available > eventQueueSize {
		available = eventQueueSize
		currentHead = currentTail - eventQueueSize
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(currentHead+i)%eventQueueSize]
	}

	for !eq.head.CompareAndSwap(currentHead, currentTail) {
		currentHead = eq.head.Load()
		currentTail = eq.tail.Load()
		if currentTail == currentHead {
			return result
		}
	}

	return result
}

// Peek returns a snapshot of pending events without consuming them
func (eq *EventQueue) Peek() []GameEvent {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()

	available := currentTail - currentHead
	if available == 0 {
		return nil
	}
	if available > eventQueueSize {
		available = eventQueueSize
		currentHead = currentTail - eventQueueSize
	}

	result := make([]GameEvent, available)
	for i := uint64(0); i < available; i++ {
		result[i] = eq.events[(currentHead+i)%eventQueueSize]
	}

	return result
}

// Len returns the number of pending events at call time
func (eq *EventQueue) Len() int {
	currentHead := eq.head.Load()
	currentTail := eq.tail.Load()
	available := currentTail - currentHead

	if available > eventQueueSize {
		return eventQueueSize
	}
	return int(available)
}
