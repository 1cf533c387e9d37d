// Package audio owns the speaker and the note clip bank. Playback is
// fire-and-forget: the game triggers a clip and never waits on it.
package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

// Engine plays bank clips through the speaker with a shared master
// volume and mute switch
type Engine struct {
	mu          sync.Mutex
	bank        *Bank
	rate        beep.SampleRate
	volume      float64
	initialized bool

	muted atomic.Bool
}

// NewEngine creates an engine over the given clip bank
func NewEngine(bank *Bank) *Engine {
	return &Engine{
		bank:   bank,
		rate:   bank.rate,
		volume: constants.DefaultVolume,
	}
}

// Initialize opens the speaker. Must be called once before Play.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	if err := speaker.Init(e.rate, e.rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}

	e.initialized = true
	return nil
}

// Cleanup silences and releases the speaker
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Clear()
	e.initialized = false
}

// Play fires clip key through the speaker. Returns false when muted or
// not initialized. Out-of-range keys are a programming error and panic.
func (e *Engine) Play(key int) bool {
	if key < 0 || key >= e.bank.Len() {
		panic(fmt.Sprintf("audio: play key %d out of range [0,%d)", key, e.bank.Len()))
	}

	if e.muted.Load() {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return false
	}

	speaker.Play(e.withVolume(e.bank.Streamer(key)))
	return true
}

// withVolume wraps a streamer with the current master volume.
// Zero maps to silent since log2(0) is -Inf.
func (e *Engine) withVolume(s beep.Streamer) beep.Streamer {
	if e.volume <= 0 {
		return &effects.Volume{Streamer: s, Base: constants.VolumeBase, Volume: 0, Silent: true}
	}

	db := math.Log2(e.volume)
	if db < constants.MinVolumeDB {
		db = constants.MinVolumeDB
	} else if db > constants.MaxVolumeDB {
		db = constants.MaxVolumeDB
	}
	return &effects.Volume{Streamer: s, Base: constants.VolumeBase, Volume: db, Silent: false}
}

// ToggleMute flips the mute switch, returning true if sound is now on
func (e *Engine) ToggleMute() bool {
	newMute := !e.muted.Load()
	e.muted.Store(newMute)
	return !newMute
}

// IsMuted returns the current mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// SetVolume updates master volume, clamped to [0, 1]
func (e *Engine) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	e.mu.Lock()
	e.volume = vol
	e.mu.Unlock()
}

// Volume returns the current master volume
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}
