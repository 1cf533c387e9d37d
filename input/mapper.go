// Package input maps hand detections onto keyboard presses.
//
// The mapper owns the press state machine: per-key containment latches
// and the shared debounce clock. It is called once per frame from the
// main loop and is not safe for concurrent use.
package input

import (
	"math"
	"time"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/engine"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/track"
)

// Pointer is a fingertip mapped into canvas cells, reported for the
// overlay. Key is the white key under the pointer, or -1 when the
// pointer is over no key. Coordinates may lie outside the canvas when
// the detector reports a fingertip near the frame edge.
type Pointer struct {
	X, Y  int
	Key   int
	OnKey bool
}

// Mapper converts fingertip positions into accepted key presses.
//
// A press for key j is accepted on the frame its containment latch is
// clear, a fingertip lies inside the key rectangle, and at least the
// debounce interval has elapsed since the last accepted press on any
// key. The latch is set only on accept, so a fingertip that enters
// during the debounce window fires as soon as the window expires.
type Mapper struct {
	time   engine.TimeProvider
	events *engine.EventQueue

	layout   keyboard.Layout
	captureW int
	captureH int
	debounce time.Duration

	pressed      []bool // accept latch, cleared when containment ends
	contained    []bool // containment observed on the previous frame
	containNow   []bool // scratch, reused across frames
	lastAccepted time.Time
}

// NewMapper creates a mapper over the given layout. Fingertip
// coordinates are interpreted in a captureW by captureH pixel space
// and mirrored horizontally before hit-testing, matching the mirrored
// video the player sees.
func NewMapper(tp engine.TimeProvider, events *engine.EventQueue, layout keyboard.Layout, captureW, captureH int, debounce time.Duration) *Mapper {
	m := &Mapper{
		time:     tp,
		events:   events,
		captureW: captureW,
		captureH: captureH,
		debounce: debounce,
	}
	m.SetLayout(layout)
	return m
}

// SetLayout replaces the key geometry after a resize. Containment
// latches reset because the rectangles moved; the debounce clock is
// wall time and carries over.
func (m *Mapper) SetLayout(layout keyboard.Layout) {
	m.layout = layout
	n := layout.Count()
	if len(m.pressed) != n {
		m.pressed = make([]bool, n)
		m.contained = make([]bool, n)
		m.containNow = make([]bool, n)
		return
	}
	for j := range m.pressed {
		m.pressed[j] = false
		m.contained[j] = false
	}
}

// Frame processes one detection. It returns accepted presses in key
// order and the mapped fingertip pointers for the overlay. Rejected
// presses are pushed to the event queue once per containment episode.
func (m *Mapper) Frame(d track.Detection) ([]int, []Pointer) {
	now := m.time.Now()

	for j := range m.containNow {
		m.containNow[j] = false
	}

	pointers := make([]Pointer, 0, len(d.Hands))
	for i := range d.Hands {
		tip := d.Hands[i].IndexFingertip()
		cx, cy := m.toCell(tip.X, tip.Y)
		key, onKey := m.layout.KeyAt(cx, cy)
		if !onKey {
			key = -1
		}
		pointers = append(pointers, Pointer{X: cx, Y: cy, Key: key, OnKey: onKey})
		if onKey {
			m.containNow[key] = true
		}
	}

	var accepted []int
	for j := range m.containNow {
		if !m.containNow[j] {
			m.pressed[j] = false
			m.contained[j] = false
			continue
		}
		entered := !m.contained[j]
		m.contained[j] = true
		if m.pressed[j] {
			continue
		}
		if m.lastAccepted.IsZero() || now.Sub(m.lastAccepted) >= m.debounce {
			m.pressed[j] = true
			m.lastAccepted = now
			accepted = append(accepted, j)
			continue
		}
		if entered && m.events != nil {
			m.events.Push(engine.GameEvent{
				Type:      engine.EventPressRejected,
				Key:       j,
				Timestamp: now,
			})
		}
	}
	return accepted, pointers
}

// toCell mirrors a capture-space fingertip horizontally and scales it
// into canvas cells. Floor keeps points left of the canvas at negative
// columns instead of folding them into column zero.
func (m *Mapper) toCell(px, py float64) (int, int) {
	mx := float64(m.captureW) - px
	cx := int(math.Floor(mx * float64(m.layout.Width) / float64(m.captureW)))
	cy := int(math.Floor(py * float64(m.layout.Height) / float64(m.captureH)))
	return cx, cy
}

// Pressed reports the accept latch for key j, used by the renderer to
// tint held keys.
func (m *Mapper) Pressed(j int) bool {
	if j < 0 || j >= len(m.pressed) {
		return false
	}
	return m.pressed[j]
}
