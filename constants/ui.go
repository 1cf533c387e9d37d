package constants

// UI Text Constants
const (
	// InstructionText is the static hint line drawn under the keyboard
	InstructionText = "Repeat the sequence with your index finger"

	// LevelLabelFormat renders the current level in the status line
	LevelLabelFormat = "Level: %d"
)

// UI Drawing Constants
const (
	// FingertipChar marks the mapped fingertip position on screen
	FingertipChar = '●'

	// KeyFillChar paints key rectangles (cell background carries the color)
	KeyFillChar = ' '

	// StatusRowOffset is the row below the keyboard where the level line goes
	StatusRowOffset = 1

	// InstructionRowOffset is the row below the level line for the hint text
	InstructionRowOffset = 2
)
