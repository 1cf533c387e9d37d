package audio

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

// excludedPortPatterns are virtual and system ports never auto-picked
var excludedPortPatterns = []string{"Midi Through", "Through Port", "Dummy"}

// MIDISink echoes played notes to an external MIDI output port, so a
// hardware or soft synth can double the built-in speaker
type MIDISink struct {
	mu   sync.Mutex
	drv  *rtmididrv.Driver
	out  drivers.Out
	send func(midi.Message) error
	name string
}

// OpenMIDISink connects to the first output port whose name contains
// pattern, case-insensitive. An empty pattern picks the first
// non-excluded port.
func OpenMIDISink(pattern string) (*MIDISink, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list midi outputs: %w", err)
	}

	var found drivers.Out
	for _, out := range outs {
		name := out.String()
		if isExcludedPort(name) {
			continue
		}
		if pattern == "" || containsCI(name, pattern) {
			found = out
			break
		}
	}
	if found == nil {
		drv.Close()
		return nil, fmt.Errorf("no midi output matching %q", pattern)
	}

	if err := found.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open midi output %q: %w", found.String(), err)
	}

	send, err := midi.SendTo(found)
	if err != nil {
		found.Close()
		drv.Close()
		return nil, fmt.Errorf("midi sender for %q: %w", found.String(), err)
	}

	return &MIDISink{
		drv:  drv,
		out:  found,
		send: send,
		name: found.String(),
	}, nil
}

// Name returns the connected port name
func (s *MIDISink) Name() string {
	return s.name
}

// PlayNote sends NoteOn immediately and schedules the NoteOff after d.
// The off timer is fire-and-forget like every other delayed action here.
func (s *MIDISink) PlayNote(midiNote int, d time.Duration) {
	key := uint8(midiNote)

	s.mu.Lock()
	err := s.send(midi.NoteOn(constants.MIDIChannel, key, constants.MIDIVelocity))
	s.mu.Unlock()
	if err != nil {
		slog.Warn("midi note on failed", "note", midiNote, "error", err)
		return
	}

	time.AfterFunc(d, func() {
		s.mu.Lock()
		err := s.send(midi.NoteOff(constants.MIDIChannel, key))
		s.mu.Unlock()
		if err != nil {
			slog.Warn("midi note off failed", "note", midiNote, "error", err)
		}
	})
}

// Close releases the port and the driver
func (s *MIDISink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		s.out.Close()
		s.out = nil
	}
	if s.drv != nil {
		s.drv.Close()
		s.drv = nil
	}
}

func isExcludedPort(name string) bool {
	for _, pat := range excludedPortPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
