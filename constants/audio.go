package constants

import "time"

// Speaker Configuration
const (
	// AudioSampleRate is the speaker mixing rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration sizes the speaker ring buffer
	AudioBufferDuration = 50 * time.Millisecond
)

// Synthesized Note Envelope
const (
	// SynthNoteDuration is the total length of a synthesized clip
	SynthNoteDuration = 450 * time.Millisecond

	// SynthNoteAttack is the linear fade-in at the start of a clip
	SynthNoteAttack = 5 * time.Millisecond

	// SynthDecayFactor controls the exponential amplitude decay over the
	// body of a synthesized note (fraction remaining at the end)
	SynthDecayFactor = 0.01

	// SynthOvertoneGain scales the first overtone mixed into the
	// fundamental for a piano-like timbre
	SynthOvertoneGain = 0.35
)

// MIDI Echo
const (
	// MIDIChannel is the channel played notes are echoed on
	MIDIChannel = 0

	// MIDIVelocity is the fixed velocity for echoed notes
	MIDIVelocity = 100
)

// Volume Control
const (
	// DefaultVolume is the startup master volume in [0, 1]
	DefaultVolume = 0.8

	// VolumeBase is the exponential base for the beep volume effect
	VolumeBase = 2.0

	// MinVolumeDB and MaxVolumeDB bound the volume knob in beep's
	// exponential units
	MinVolumeDB = -8.0
	MaxVolumeDB = 0.0
)
