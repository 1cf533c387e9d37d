package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
)

// Bank is the set of preloaded note clips, indexed 0..N-1 to match the
// key indices. Clips are fully buffered; Streamer never blocks on IO.
type Bank struct {
	rate  beep.SampleRate
	clips []*beep.Buffer
}

// Len returns the number of clips
func (b *Bank) Len() int {
	return len(b.clips)
}

// Streamer returns a fresh streamer over clip i, panicking on
// out-of-range access since indices come from the fixed key set
func (b *Bank) Streamer(i int) beep.Streamer {
	if i < 0 || i >= len(b.clips) {
		panic(fmt.Sprintf("audio: clip index %d out of range [0,%d)", i, len(b.clips)))
	}
	buf := b.clips[i]
	return buf.Streamer(0, buf.Len())
}

// bankFormat is the stereo buffer format all clips are normalized to
func bankFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// LoadBank reads one clip per key from dir, following the numeric
// naming convention <index>.wav (or .mp3) with indices starting at 1.
// Any missing or undecodable file is a startup-fatal error.
func LoadBank(dir string, count int, rate beep.SampleRate) (*Bank, error) {
	b := &Bank{
		rate:  rate,
		clips: make([]*beep.Buffer, 0, count),
	}

	for i := 1; i <= count; i++ {
		buf, err := loadClip(dir, i, rate)
		if err != nil {
			return nil, err
		}
		b.clips = append(b.clips, buf)
	}

	return b, nil
}

// loadClip decodes one numbered clip file into a buffer at the bank rate
func loadClip(dir string, index int, rate beep.SampleRate) (*beep.Buffer, error) {
	wavPath := filepath.Join(dir, fmt.Sprintf("%d.wav", index))
	mp3Path := filepath.Join(dir, fmt.Sprintf("%d.mp3", index))

	if f, err := os.Open(wavPath); err == nil {
		defer f.Close()
		s, format, err := wav.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode note clip %q: %w", wavPath, err)
		}
		return bufferClip(s, format, rate), nil
	}

	f, err := os.Open(mp3Path)
	if err != nil {
		return nil, fmt.Errorf("note clip %d not found (tried %q and %q)", index, wavPath, mp3Path)
	}
	defer f.Close()

	s, format, err := mp3.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode note clip %q: %w", mp3Path, err)
	}
	return bufferClip(s, format, rate), nil
}

// bufferClip drains a decoded streamer into a buffer, resampling to the
// bank rate when the source differs
func bufferClip(s beep.Streamer, format beep.Format, rate beep.SampleRate) *beep.Buffer {
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	buf := beep.NewBuffer(bankFormat(rate))
	buf.Append(s)
	return buf
}

// SynthBank renders one clip per note with the built-in generator, so
// the game runs with zero asset files
func SynthBank(notes []keyboard.Note, wave WaveType, rate beep.SampleRate) *Bank {
	b := &Bank{
		rate:  rate,
		clips: make([]*beep.Buffer, 0, len(notes)),
	}

	for _, n := range notes {
		buf := beep.NewBuffer(bankFormat(rate))
		buf.Append(NewPianoTone(n.Frequency(), wave, rate))
		b.clips = append(b.clips, buf)
	}

	return b
}
