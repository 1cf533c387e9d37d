package keyboard

import (
	"fmt"
	"math"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is the musical identity of a key
type Note struct {
	MIDI int
	Name string
}

// NoteForMIDI builds a Note with its scientific pitch name (C4 = 60)
func NoteForMIDI(midi int) Note {
	return Note{MIDI: midi, Name: pitchName(midi)}
}

// Frequency returns the equal temperament frequency in Hz, anchored at
// A4 = 440 Hz
func (n Note) Frequency() float64 {
	semitones := float64(n.MIDI - constants.ReferenceMIDINote)
	return constants.ReferenceFrequency * math.Pow(2, semitones/12)
}

func pitchName(pitch int) string {
	if pitch < 0 {
		return fmt.Sprintf("?\"%d\"", pitch)
	}
	return fmt.Sprintf("%s%d", noteNames[pitch%12], (pitch/12)-1)
}

// diatonicOffsets maps white key position to semitone offset within one
// seven-key run starting on D. The half steps fall after positions 1 (E-F)
// and 5 (B-C), matching the black key gaps at boundaries 2 and 6.
var diatonicOffsets = [7]int{0, 2, 3, 5, 7, 9, 10}

// midiForKey returns the MIDI note of white key j counting diatonically
// up from the base note
func midiForKey(j int) int {
	octaves := j / 7
	return constants.BaseMIDINote + octaves*12 + diatonicOffsets[j%7]
}

// Notes returns the diatonic run assigned to count white keys, for
// building an audio bank without a layout.
func Notes(count int) []Note {
	out := make([]Note, count)
	for j := range out {
		out[j] = NoteForMIDI(midiForKey(j))
	}
	return out
}
