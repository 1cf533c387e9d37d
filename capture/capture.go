// Package capture supplies live video frames to the renderer. Sources
// run on their own goroutines and overwrite a single latest-frame slot;
// the renderer samples the newest frame each draw. Missing frames mean
// the backdrop is skipped, never an error.
package capture

import "sync/atomic"

// Frame is one raw RGB24 video frame in unmirrored capture space
type Frame struct {
	Pixels []byte // packed RGB, len = Width*Height*3
	Width  int
	Height int
}

// At returns the pixel color at (x, y), clamping out-of-bounds reads to
// the frame edge
func (f Frame) At(x, y int) (r, g, b uint8) {
	if f.Width < 1 || f.Height < 1 {
		return 0, 0, 0
	}
	if x < 0 {
		x = 0
	} else if x >= f.Width {
		x = f.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.Height {
		y = f.Height - 1
	}
	i := (y*f.Width + x) * 3
	if i+2 >= len(f.Pixels) {
		return 0, 0, 0
	}
	return f.Pixels[i], f.Pixels[i+1], f.Pixels[i+2]
}

// Sample maps cell (outX, outY) of an outW x outH grid onto the frame
// and returns the color at the center of the corresponding region
func (f Frame) Sample(outX, outY, outW, outH int) (r, g, b uint8) {
	if outW < 1 || outH < 1 {
		return 0, 0, 0
	}
	sx := (outX*f.Width + f.Width/2) / outW
	sy := (outY*f.Height + f.Height/2) / outH
	return f.At(sx, sy)
}

// Latest is the single-slot handoff between a source goroutine and the
// render loop
type Latest struct {
	slot atomic.Pointer[Frame]
}

// Store replaces the slot with a new frame
func (l *Latest) Store(f Frame) {
	l.slot.Store(&f)
}

// Load returns the most recent frame; ok is false before the first
// frame arrives or after the source clears it
func (l *Latest) Load() (Frame, bool) {
	if f := l.slot.Load(); f != nil {
		return *f, true
	}
	return Frame{}, false
}

// Clear empties the slot so the renderer stops drawing a backdrop
func (l *Latest) Clear() {
	l.slot.Store(nil)
}

// Source feeds a Latest slot with video frames
type Source interface {
	Start() error
	Stop()
}
