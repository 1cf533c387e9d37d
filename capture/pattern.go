package capture

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/core"
)

// patternFrameInterval paces the synthetic source at roughly 30 fps
const patternFrameInterval = 33 * time.Millisecond

// PatternSource synthesizes a slowly drifting gradient so the game has
// a living backdrop when no camera pipeline is attached
type PatternSource struct {
	latest *Latest
	width  int
	height int

	running  atomic.Bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPatternSource creates a synthetic source of the given frame size
func NewPatternSource(latest *Latest, width, height int) *PatternSource {
	return &PatternSource{
		latest: latest,
		width:  width,
		height: height,
	}
}

// Start begins generating frames
func (s *PatternSource) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("pattern source already running")
	}

	s.stopChan = make(chan struct{})
	start := time.Now()

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()

		ticker := time.NewTicker(patternFrameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				s.latest.Clear()
				return
			case <-ticker.C:
				s.latest.Store(s.render(time.Since(start)))
			}
		}
	})

	return nil
}

// render draws one gradient frame for the elapsed phase
func (s *PatternSource) render(elapsed time.Duration) Frame {
	phase := elapsed.Seconds()
	pixels := make([]byte, s.width*s.height*constants.CaptureBytesPerPixel)

	for y := 0; y < s.height; y++ {
		fy := float64(y) / float64(s.height)
		for x := 0; x < s.width; x++ {
			fx := float64(x) / float64(s.width)
			i := (y*s.width + x) * 3
			pixels[i] = uint8(40 + 60*fx)
			pixels[i+1] = uint8(30 + 50*fy)
			pixels[i+2] = uint8(70 + 50*math.Sin(2*math.Pi*(fx+0.1*phase)))
		}
	}

	return Frame{Pixels: pixels, Width: s.width, Height: s.height}
}

// Stop halts generation and waits for the goroutine to exit
func (s *PatternSource) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
}
