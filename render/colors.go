package render

import "github.com/gdamore/tcell/v2"

// Scene colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Fallback when no camera frame
	RgbWhiteKey   = tcell.NewRGBColor(240, 240, 240) // Idle white key
	RgbKeyEdge    = tcell.NewRGBColor(140, 140, 140) // Separator between white keys
	RgbKeyPress   = tcell.NewRGBColor(100, 150, 255) // Highlighted key blue
	RgbBlackKey   = tcell.NewRGBColor(12, 12, 12)    // Decorative black keys
	RgbFingertip  = tcell.NewRGBColor(255, 80, 80)   // Tracked fingertip marker

	RgbLevelText       = tcell.NewRGBColor(255, 255, 255) // Level counter
	RgbInstructionText = tcell.NewRGBColor(180, 180, 180) // Static instruction line
	RgbDebugText       = tcell.NewRGBColor(0, 255, 255)   // Debug overlay

	RgbVictoryText = tcell.NewRGBColor(50, 255, 50) // "Correct! Level Up!"
	RgbFailureText = tcell.NewRGBColor(255, 80, 80) // "Wrong Key!"
	RgbMessageBg   = tcell.NewRGBColor(10, 10, 14)  // Banner backdrop
)
