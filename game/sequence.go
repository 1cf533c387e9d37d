// Package game owns the memory-game state: the target sequence, the
// player's attempt cursor, level progression, and the replay and
// message timeline. All state lives behind a single controller and
// mutates only on the main goroutine.
package game

import (
	"fmt"
	"math/rand"
)

// Outcome classifies one attempted key press against the target.
type Outcome int

const (
	// AttemptMatch means the press matched and the sequence continues.
	AttemptMatch Outcome = iota
	// AttemptComplete means the press matched the final step.
	AttemptComplete
	// AttemptMismatch means the press broke the sequence.
	AttemptMismatch
)

func (o Outcome) String() string {
	switch o {
	case AttemptMatch:
		return "Match"
	case AttemptComplete:
		return "Complete"
	case AttemptMismatch:
		return "Mismatch"
	default:
		return "Unknown"
	}
}

// Sequence holds the target key sequence and the player's match cursor.
// The attempt is a strict prefix of the target at all times; the first
// mismatch resets rather than accumulating past the error.
type Sequence struct {
	rng    *rand.Rand
	keys   int
	steps  []int
	cursor int
}

// NewSequence creates a sequence generator over keyCount keys. The same
// seed reproduces the same run of targets.
func NewSequence(keyCount int, seed int64) *Sequence {
	if keyCount < 1 {
		panic(fmt.Sprintf("game: key count %d out of range", keyCount))
	}
	return &Sequence{
		rng:  rand.New(rand.NewSource(seed)),
		keys: keyCount,
	}
}

// Generate replaces the target with length uniformly random key indices
// and resets the cursor.
func (s *Sequence) Generate(length int) {
	if length < 1 {
		panic(fmt.Sprintf("game: sequence length %d out of range", length))
	}
	s.steps = make([]int, length)
	for i := range s.steps {
		s.steps[i] = s.rng.Intn(s.keys)
	}
	s.cursor = 0
}

// Attempt compares a pressed key against the next expected step and
// advances the cursor on a match.
func (s *Sequence) Attempt(key int) Outcome {
	if s.cursor >= len(s.steps) {
		panic(fmt.Sprintf("game: attempt with cursor %d past sequence length %d", s.cursor, len(s.steps)))
	}
	if key != s.steps[s.cursor] {
		return AttemptMismatch
	}
	s.cursor++
	if s.cursor == len(s.steps) {
		return AttemptComplete
	}
	return AttemptMatch
}

// Len returns the target length, which always equals the level that
// generated it.
func (s *Sequence) Len() int {
	return len(s.steps)
}

// Cursor returns how many steps the player has matched so far.
func (s *Sequence) Cursor() int {
	return s.cursor
}

// Step returns the target key at position i.
func (s *Sequence) Step(i int) int {
	if i < 0 || i >= len(s.steps) {
		panic(fmt.Sprintf("game: step %d out of range [0,%d)", i, len(s.steps)))
	}
	return s.steps[i]
}

// Steps returns a copy of the target, used to pin a replay timeline to
// the sequence that scheduled it even after a regeneration.
func (s *Sequence) Steps() []int {
	out := make([]int, len(s.steps))
	copy(out, s.steps)
	return out
}
