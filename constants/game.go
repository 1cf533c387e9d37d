package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SequenceStartDelay is the pause before a new sequence replay begins
	SequenceStartDelay = 2 * time.Second

	// ReplayNoteInterval is the gap between consecutive replayed notes
	ReplayNoteInterval = 500 * time.Millisecond

	// KeyHighlightDuration is how long a key stays lit after activation
	KeyHighlightDuration = 500 * time.Millisecond

	// DebounceInterval is the minimum gap between accepted key presses
	DebounceInterval = 500 * time.Millisecond

	// MessageDuration is how long transient messages stay on screen
	MessageDuration = 1 * time.Second
)

// Game Progression Constants
const (
	// StartLevel is the level a new game and a loss reset both begin at
	StartLevel = 1
)

// Game Messages
const (
	// WrongKeyMessage is shown when the player breaks the sequence
	WrongKeyMessage = "Wrong Key!"

	// LevelUpMessage is shown when the player completes the sequence
	LevelUpMessage = "Correct! Level Up!"
)
