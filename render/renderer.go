// Package render draws the game scene onto a tcell screen: the
// mirrored camera backdrop, the keyboard, fingertip markers, status
// text, and the transient message banner. The full screen is redrawn
// every frame.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/capture"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/game"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/input"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/status"
)

// Scene is everything one frame draws besides the controller state.
type Scene struct {
	Layout    keyboard.Layout
	Frame     capture.Frame
	HaveFrame bool
	Pointers  []input.Pointer
	Debug     bool
}

// Renderer draws frames. It runs on the main goroutine only.
type Renderer struct {
	screen tcell.Screen
	status *status.Registry
	width  int
	height int
}

// NewRenderer creates a renderer for the given screen size.
func NewRenderer(screen tcell.Screen, reg *status.Registry, width, height int) *Renderer {
	return &Renderer{
		screen: screen,
		status: reg,
		width:  width,
		height: height,
	}
}

// Resize updates the drawing bounds after the terminal changes size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// RenderFrame draws one complete frame. While a message banner is
// active it replaces the whole scene, matching the game's suppression
// of press input.
func (r *Renderer) RenderFrame(c *game.Controller, scene Scene) {
	r.screen.Clear()

	if msg := c.Message(); msg.Kind != game.MessageNone {
		r.drawMessage(msg)
		r.screen.Show()
		return
	}

	r.drawBackdrop(scene)
	r.drawKeys(c, scene.Layout)
	r.drawPointers(scene.Pointers)
	r.drawStatus(c, scene.Layout)
	if scene.Debug {
		r.drawDebug(c)
	}
	r.screen.Show()
}

// drawBackdrop fills the canvas with the camera frame, sampled at cell
// resolution and mirrored horizontally so the player sees themselves as
// in a mirror. Without a frame the backdrop is a flat dark fill.
func (r *Renderer) drawBackdrop(scene Scene) {
	flat := tcell.StyleDefault.Background(RgbBackground)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			style := flat
			if scene.HaveFrame {
				cr, cg, cb := scene.Frame.Sample(r.width-1-x, y, r.width, r.height)
				style = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			}
			r.screen.SetContent(x, y, constants.KeyFillChar, nil, style)
		}
	}
}

// drawKeys paints the white key band with per-key highlight state, the
// separator columns between keys, and the decorative black keys on top.
func (r *Renderer) drawKeys(c *game.Controller, layout keyboard.Layout) {
	for _, key := range layout.Keys {
		color := RgbWhiteKey
		if c.Highlighted(key.Index) {
			color = RgbKeyPress
		}
		style := tcell.StyleDefault.Background(color)
		edge := tcell.StyleDefault.Background(RgbKeyEdge)
		for y := key.Rect.Y; y < key.Rect.Y+key.Rect.H; y++ {
			for x := key.Rect.X; x < key.Rect.X+key.Rect.W; x++ {
				s := style
				if x == key.Rect.X && key.Index > 0 {
					s = edge
				}
				r.screen.SetContent(x, y, constants.KeyFillChar, nil, s)
			}
		}
	}

	black := tcell.StyleDefault.Background(RgbBlackKey)
	for _, bk := range layout.BlackKeys {
		for y := bk.Rect.Y; y < bk.Rect.Y+bk.Rect.H; y++ {
			for x := bk.Rect.X; x < bk.Rect.X+bk.Rect.W; x++ {
				r.screen.SetContent(x, y, constants.KeyFillChar, nil, black)
			}
		}
	}
}

// drawPointers marks each tracked fingertip. Pointers can map outside
// the canvas when a hand sits near the frame edge; those are skipped.
func (r *Renderer) drawPointers(pointers []input.Pointer) {
	style := tcell.StyleDefault.Foreground(RgbFingertip).Background(RgbBackground)
	for _, p := range pointers {
		if p.X < 0 || p.X >= r.width || p.Y < 0 || p.Y >= r.height {
			continue
		}
		r.screen.SetContent(p.X, p.Y, constants.FingertipChar, nil, style)
	}
}

// drawStatus writes the level counter and the instruction line just
// below the key band.
func (r *Renderer) drawStatus(c *game.Controller, layout keyboard.Layout) {
	keyBottom := 0
	if len(layout.Keys) > 0 {
		keyBottom = layout.Keys[0].Rect.H
	}
	levelRow := keyBottom + constants.StatusRowOffset
	instructionRow := keyBottom + constants.InstructionRowOffset

	level := fmt.Sprintf(constants.LevelLabelFormat, c.Level())
	r.drawText(1, levelRow, level, tcell.StyleDefault.Foreground(RgbLevelText).Background(RgbBackground))
	r.drawText(1, instructionRow, constants.InstructionText,
		tcell.StyleDefault.Foreground(RgbInstructionText).Background(RgbBackground))
}

// drawDebug writes a one-line overlay of game internals on the bottom
// row.
func (r *Renderer) drawDebug(c *game.Controller) {
	matched, total := c.Progress()
	fps := r.status.Floats.Get("render.fps").Get()
	presses := r.status.Ints.Get("game.presses").Load()
	rejected := r.status.Ints.Get("input.rejected").Load()
	line := fmt.Sprintf("fps %.1f | %s %d/%d | presses %d rejected %d",
		fps, c.Phase(), matched, total, presses, rejected)
	r.drawText(0, r.height-1, line, tcell.StyleDefault.Foreground(RgbDebugText).Background(RgbBackground))
}

// drawMessage fills the screen with the banner backdrop and centers the
// message text, tinted by outcome.
func (r *Renderer) drawMessage(msg game.Message) {
	fill := tcell.StyleDefault.Background(RgbMessageBg)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, y, constants.KeyFillChar, nil, fill)
		}
	}

	color := RgbVictoryText
	if msg.Kind == game.MessageFailure {
		color = RgbFailureText
	}
	x := (r.width - len(msg.Text)) / 2
	if x < 0 {
		x = 0
	}
	style := tcell.StyleDefault.Foreground(color).Background(RgbMessageBg).Bold(true)
	r.drawText(x, r.height/2, msg.Text, style)
}

// drawText writes a string clipped to the screen width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.height {
		return
	}
	for i, ch := range text {
		if x+i < 0 || x+i >= r.width {
			continue
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
