package game

import (
	"sync/atomic"
	"time"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/engine"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/input"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/status"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/track"
)

// NotePlayer triggers playback for a key index. Play reports whether a
// sound was actually started, which the controller ignores; playback is
// fire-and-forget.
type NotePlayer interface {
	Play(key int) bool
}

// Phase describes what the game is nominally doing. It is advisory:
// input stays live during replay, so a player can press keys while the
// target is still being demonstrated.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReplaying
	PhaseAwaitingInput
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseReplaying:
		return "Replaying"
	case PhaseAwaitingInput:
		return "AwaitingInput"
	default:
		return "Unknown"
	}
}

// MessageKind selects the tint of a transient message.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageVictory
	MessageFailure
)

// Message is the transient status banner. While Kind is not MessageNone
// the renderer shows only the banner and the controller processes no
// presses.
type Message struct {
	Text string
	Kind MessageKind
}

// Config carries the controller's collaborators.
type Config struct {
	Time   engine.TimeProvider
	Events *engine.EventQueue
	Status *status.Registry
	Player NotePlayer
	Mapper *input.Mapper
	Keys   int
	Seed   int64
}

// Controller drives one game: it owns the level counter, the target
// sequence, per-key highlight state, the transient message, and the
// scheduler that fires replay notes, highlight reverts, and message
// clears. Everything runs on the main goroutine; timers are drained at
// the top of each frame and are not cancellable, so callbacks from a
// superseded sequence still fire and may interleave with the new one.
type Controller struct {
	time   engine.TimeProvider
	sched  *engine.Scheduler
	events *engine.EventQueue
	player NotePlayer
	mapper *input.Mapper

	seq         *Sequence
	level       int
	phase       Phase
	highlighted []bool
	message     Message
	frame       int64

	statLevel       *atomic.Int64
	statPresses     *atomic.Int64
	statCompletions *atomic.Int64
	statFailures    *atomic.Int64
	statReplays     *atomic.Int64
	statBestLevel   *atomic.Int64
}

// NewController wires a controller. Start begins the first level.
func NewController(cfg Config) *Controller {
	c := &Controller{
		time:        cfg.Time,
		sched:       engine.NewScheduler(cfg.Time),
		events:      cfg.Events,
		player:      cfg.Player,
		mapper:      cfg.Mapper,
		seq:         NewSequence(cfg.Keys, cfg.Seed),
		level:       constants.StartLevel,
		phase:       PhaseIdle,
		highlighted: make([]bool, cfg.Keys),
	}
	c.statLevel = cfg.Status.Ints.Get("game.level")
	c.statPresses = cfg.Status.Ints.Get("game.presses")
	c.statCompletions = cfg.Status.Ints.Get("game.completions")
	c.statFailures = cfg.Status.Ints.Get("game.failures")
	c.statReplays = cfg.Status.Ints.Get("game.replays")
	c.statBestLevel = cfg.Status.Ints.Get("game.best_level")
	return c
}

// Start generates the first target and schedules its replay.
func (c *Controller) Start() {
	c.statLevel.Store(int64(c.level))
	c.statBestLevel.Store(int64(c.level))
	c.regenerate()
}

// Frame advances one tick: due timers fire, then the detection is
// mapped to presses unless a message is up. It returns the fingertip
// pointers for the overlay, nil while a message suppresses play.
func (c *Controller) Frame(d track.Detection) []input.Pointer {
	c.frame++
	c.sched.Drain()
	if c.message.Kind != MessageNone {
		return nil
	}
	accepted, pointers := c.mapper.Frame(d)
	for _, key := range accepted {
		c.handlePress(key)
		if c.message.Kind != MessageNone {
			break
		}
	}
	return pointers
}

// Resize swaps the key geometry after the canvas changes size.
func (c *Controller) Resize(layout keyboard.Layout) {
	c.mapper.SetLayout(layout)
}

func (c *Controller) handlePress(key int) {
	c.statPresses.Add(1)
	c.highlightKey(key)
	c.player.Play(key)
	c.push(engine.EventKeyPressed, key)

	switch c.seq.Attempt(key) {
	case AttemptComplete:
		c.victory()
	case AttemptMismatch:
		c.loss(key)
	}
}

func (c *Controller) victory() {
	c.statCompletions.Add(1)
	c.push(engine.EventSequenceComplete, -1)
	c.level++
	c.statLevel.Store(int64(c.level))
	if int64(c.level) > c.statBestLevel.Load() {
		c.statBestLevel.Store(int64(c.level))
	}
	c.showMessage(constants.LevelUpMessage, MessageVictory)
	c.regenerate()
}

func (c *Controller) loss(key int) {
	c.statFailures.Add(1)
	c.push(engine.EventSequenceFailed, key)
	c.level = constants.StartLevel
	c.statLevel.Store(int64(c.level))
	c.showMessage(constants.WrongKeyMessage, MessageFailure)
	c.regenerate()
}

// regenerate replaces the target and schedules its replay: a settling
// pause, then one note every ReplayNoteInterval, each highlighted for
// KeyHighlightDuration. Note and revert tasks are scheduled in
// interleaved creation order so that when a note repeats, the revert of
// the first firing lands before the highlight of the second at the same
// instant.
func (c *Controller) regenerate() {
	c.seq.Generate(c.level)
	c.phase = PhaseIdle

	steps := c.seq.Steps()
	start := c.time.Now().Add(constants.SequenceStartDelay)
	for i, key := range steps {
		first := i == 0
		at := start.Add(time.Duration(i) * constants.ReplayNoteInterval)
		c.sched.At(at, func() {
			if first {
				c.phase = PhaseReplaying
				c.statReplays.Add(1)
				c.push(engine.EventReplayStarted, -1)
			}
			c.highlighted[key] = true
			c.player.Play(key)
			c.push(engine.EventNotePlayed, key)
		})
		c.sched.At(at.Add(constants.KeyHighlightDuration), func() {
			c.highlighted[key] = false
		})
	}
	c.sched.At(start.Add(time.Duration(len(steps))*constants.ReplayNoteInterval), func() {
		c.phase = PhaseAwaitingInput
		c.push(engine.EventReplayFinished, -1)
	})
}

func (c *Controller) highlightKey(key int) {
	c.highlighted[key] = true
	c.sched.After(constants.KeyHighlightDuration, func() {
		c.highlighted[key] = false
	})
}

func (c *Controller) showMessage(text string, kind MessageKind) {
	c.message = Message{Text: text, Kind: kind}
	c.push(engine.EventMessageShown, -1)
	c.sched.After(constants.MessageDuration, func() {
		c.message = Message{}
		c.push(engine.EventMessageCleared, -1)
	})
}

func (c *Controller) push(t engine.EventType, key int) {
	c.events.Push(engine.GameEvent{
		Type:      t,
		Key:       key,
		Level:     c.level,
		Frame:     c.frame,
		Timestamp: c.time.Now(),
	})
}

// Level returns the current level, which is also the target length.
func (c *Controller) Level() int {
	return c.level
}

// Phase returns the advisory game phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Highlighted reports whether key j is currently lit, either from a
// replay note or a player press.
func (c *Controller) Highlighted(j int) bool {
	if j < 0 || j >= len(c.highlighted) {
		return false
	}
	return c.highlighted[j]
}

// Message returns the active banner; Kind is MessageNone when the
// normal scene should render.
func (c *Controller) Message() Message {
	return c.message
}

// Progress returns how much of the target has been matched, for the
// debug overlay.
func (c *Controller) Progress() (matched, total int) {
	return c.seq.Cursor(), c.seq.Len()
}
