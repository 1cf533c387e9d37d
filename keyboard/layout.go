// Package keyboard computes the piano key geometry for a given canvas
// size and key count, plus the note metadata of each key. The layout is
// a pure function of its inputs; callers rebuild it on resize and treat
// the result as immutable.
package keyboard

import (
	"fmt"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

// Rect is a cell-space rectangle covering x in [X, X+W) and y in [Y, Y+H)
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Key is one playable white key. Identity is immutable; highlight state
// lives with the game, not here.
type Key struct {
	Index int
	Rect  Rect
	Note  Note
}

// BlackKey is a decorative black key. Never hit-tested.
type BlackKey struct {
	Rect Rect
}

// Layout is the computed keyboard geometry for one canvas size
type Layout struct {
	Width, Height int
	Keys          []Key
	BlackKeys     []BlackKey
}

// Build computes the layout for count white keys on a width x height
// canvas. White keys are equal-width columns across the full width,
// occupying the top third of the canvas. Black keys sit centered on the
// interior boundaries, skipping the diatonic gaps (boundaries 2 and 6
// in the eight-key layout, repeating every seven keys).
func Build(width, height, count int) Layout {
	if count < 1 {
		panic(fmt.Sprintf("keyboard: invalid key count %d", count))
	}

	keyHeight := height / constants.KeyboardHeightFraction
	if keyHeight < 1 {
		keyHeight = 1
	}

	l := Layout{
		Width:  width,
		Height: height,
		Keys:   make([]Key, count),
	}

	for j := 0; j < count; j++ {
		x0 := j * width / count
		x1 := (j + 1) * width / count
		l.Keys[j] = Key{
			Index: j,
			Rect:  Rect{X: x0, Y: 0, W: x1 - x0, H: keyHeight},
			Note:  NoteForMIDI(midiForKey(j)),
		}
	}

	blackW := width / count / constants.BlackKeyWidthFraction
	if blackW < 1 {
		blackW = 1
	}
	blackH := keyHeight * constants.BlackKeyHeightNumerator / constants.BlackKeyHeightDenominator
	if blackH < 1 {
		blackH = 1
	}

	for b := 1; b < count; b++ {
		if isDiatonicGap(b) {
			continue
		}
		cx := b * width / count
		l.BlackKeys = append(l.BlackKeys, BlackKey{
			Rect: Rect{X: cx - blackW/2, Y: 0, W: blackW, H: blackH},
		})
	}

	return l
}

// isDiatonicGap reports whether interior boundary b has no black key.
// For the default D-based run the gaps fall at boundaries 2 (E-F) and
// 6 (B-C), repeating each octave.
func isDiatonicGap(b int) bool {
	m := b % 7
	return m == 2 || m == 6
}

// KeyAt returns the index of the white key containing the point, or
// false when the point is outside the keyboard. Keys are tested in
// index order; black keys are decorative and never match.
func (l Layout) KeyAt(x, y int) (int, bool) {
	for _, k := range l.Keys {
		if k.Rect.Contains(x, y) {
			return k.Index, true
		}
	}
	return 0, false
}

// Key returns the key at index j, panicking on out-of-range access
// since indices come from generated sequences bounded by the key count
func (l Layout) Key(j int) Key {
	if j < 0 || j >= len(l.Keys) {
		panic(fmt.Sprintf("keyboard: key index %d out of range [0,%d)", j, len(l.Keys)))
	}
	return l.Keys[j]
}

// Count returns the number of playable white keys
func (l Layout) Count() int {
	return len(l.Keys)
}
