// Package track carries hand detection results from a provider to the
// game. Providers run on their own goroutines and overwrite a single
// latest-value slot; the game loop reads the slot once per frame. There
// is no queue and no backpressure: a frame reads either the previous or
// the newest detection, never a blend, and one-frame staleness is
// accepted.
package track

import "sync/atomic"

// Hand landmark indices following the MediaPipe convention
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point is a landmark position in unmirrored capture pixel coordinates.
// Z is relative depth; the game ignores it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is one detected hand: the full landmark set plus detector
// metadata. Replaced wholesale each detection pass, never mutated.
type Hand struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness string              `json:"handedness"` // "Left" or "Right"
	Score      float64             `json:"score"`
}

// IndexFingertip returns the one landmark the game consumes
func (h Hand) IndexFingertip() Point {
	return h.Points[IndexTip]
}

// Detection is the result of one detection pass. Zero hands is the
// normal steady state, not an error.
type Detection struct {
	Hands []Hand `json:"hands"`
}

// SyntheticHand builds a single-point hand for providers that track a
// pointer rather than a camera. Every landmark sits on the fingertip.
func SyntheticHand(x, y float64) Hand {
	h := Hand{Handedness: "Right", Score: 1}
	for i := range h.Points {
		h.Points[i] = Point{X: x, Y: y}
	}
	return h
}

// Latest is the single-slot handoff between a provider goroutine and
// the game loop. Absent a stored detection, Load returns an empty one.
type Latest struct {
	slot atomic.Pointer[Detection]
}

// Store replaces the slot with a new detection
func (l *Latest) Store(d Detection) {
	l.slot.Store(&d)
}

// Load returns the most recent detection, or an empty detection when
// no provider has reported yet
func (l *Latest) Load() Detection {
	if d := l.slot.Load(); d != nil {
		return *d
	}
	return Detection{}
}

// Clear empties the slot
func (l *Latest) Clear() {
	l.slot.Store(nil)
}

// Provider feeds a Latest slot from some detection source
type Provider interface {
	Start() error
	Stop()
}
