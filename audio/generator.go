package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

// WaveType defines oscillator wave shapes for the synthesized bank
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
	WaveSquare
	WaveSaw
	WaveNoise
)

// ParseWaveType maps a config string to a wave shape; unknown names
// fall back to sine
func ParseWaveType(name string) WaveType {
	switch name {
	case "triangle":
		return WaveTriangle
	case "square":
		return WaveSquare
	case "saw":
		return WaveSaw
	case "noise":
		return WaveNoise
	default:
		return WaveSine
	}
}

// pianoTone generates a decaying note: a fundamental plus one overtone,
// shaped by a linear attack and an exponential decay
type pianoTone struct {
	freq      float64
	wave      WaveType
	rate      beep.SampleRate
	phase     float64
	overPhase float64
	position  int
	total     int
	attack    int
	lnDecay   float64
}

// headroom keeps the fundamental plus overtone inside [-1, 1]
const headroom = 0.7

// NewPianoTone creates a streamer producing one synthesized note of the
// standard clip duration
func NewPianoTone(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &pianoTone{
		freq:    freq,
		wave:    wave,
		rate:    rate,
		total:   rate.N(constants.SynthNoteDuration),
		attack:  rate.N(constants.SynthNoteAttack),
		lnDecay: math.Log(constants.SynthDecayFactor),
	}
}

func (g *pianoTone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.position >= g.total {
			return i, false
		}

		val := oscillate(g.wave, g.phase) +
			constants.SynthOvertoneGain*oscillate(g.wave, g.overPhase)

		env := math.Exp(g.lnDecay * float64(g.position) / float64(g.total))
		if g.attack > 0 && g.position < g.attack {
			env *= float64(g.position) / float64(g.attack)
		}

		v := val * env * headroom
		samples[i][0] = v
		samples[i][1] = v

		// Advance phases, kept in [0, 1)
		g.phase += g.freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.overPhase += 2 * g.freq / float64(g.rate)
		g.overPhase -= math.Floor(g.overPhase)
		g.position++
	}
	return len(samples), true
}

func (g *pianoTone) Err() error { return nil }

// oscillate evaluates one wave shape at a phase in [0, 1)
func oscillate(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
