package constants

// Keyboard Layout Constants
const (
	// DefaultKeyCount is the number of white keys in the standard layout
	DefaultKeyCount = 8

	// KeyboardHeightFraction divides the canvas height to get the white
	// key height (keys occupy the top third of the canvas)
	KeyboardHeightFraction = 3

	// BlackKeyWidthFraction divides the white key width to get the black
	// key width (black keys are half as wide)
	BlackKeyWidthFraction = 2

	// BlackKeyHeightNumerator over BlackKeyHeightDenominator scales the
	// white key height to the black key height (two thirds as tall)
	BlackKeyHeightNumerator   = 2
	BlackKeyHeightDenominator = 3
)

// Note Metadata
const (
	// BaseMIDINote is the MIDI number of key 0 in the default layout.
	// The diatonic gaps at boundaries 2 and 6 place the run on D, so
	// the eight keys are D E F G A B C D (62..74).
	BaseMIDINote = 62

	// ReferenceMIDINote and ReferenceFrequency anchor equal temperament
	// tuning (A4 = 440 Hz)
	ReferenceMIDINote  = 69
	ReferenceFrequency = 440.0
)
