package game

import (
	"testing"
	"time"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/engine"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/input"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/status"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/track"
)

const (
	ctrlCanvasW = 80
	ctrlCanvasH = 30
)

type fakePlayer struct {
	played []int
}

func (f *fakePlayer) Play(key int) bool {
	f.played = append(f.played, key)
	return true
}

type harness struct {
	c      *Controller
	tp     *engine.MockTimeProvider
	player *fakePlayer
	events *engine.EventQueue
	reg    *status.Registry
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	tp := engine.NewMockTimeProvider(time.Unix(100, 0))
	events := engine.NewEventQueue()
	reg := status.NewRegistry()
	player := &fakePlayer{}
	layout := keyboard.Build(ctrlCanvasW, ctrlCanvasH, constants.DefaultKeyCount)
	mapper := input.NewMapper(tp, events, layout,
		constants.DefaultCaptureWidth, constants.DefaultCaptureHeight, constants.DebounceInterval)
	c := NewController(Config{
		Time:   tp,
		Events: events,
		Status: reg,
		Player: player,
		Mapper: mapper,
		Keys:   constants.DefaultKeyCount,
		Seed:   seed,
	})
	return &harness{c: c, tp: tp, player: player, events: events, reg: reg}
}

// tick advances the clock and runs one empty frame.
func (h *harness) tick(d time.Duration) {
	h.tp.Advance(d)
	h.c.Frame(track.Detection{})
}

// touch returns a detection whose fingertip lands on white key j.
func touch(j int) track.Detection {
	cellX := j*ctrlCanvasW/constants.DefaultKeyCount + 1
	px := float64(constants.DefaultCaptureWidth) * (1.0 - (float64(cellX)+0.5)/float64(ctrlCanvasW))
	py := float64(constants.DefaultCaptureHeight) * 2.5 / float64(ctrlCanvasH)
	return track.Detection{Hands: []track.Hand{track.SyntheticHand(px, py)}}
}

func countEvents(events []engine.GameEvent, t engine.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// TestControllerReplayTimeline verifies the settling pause, the note
// cadence, the highlight reverts, and the phase transitions of a
// freshly generated target.
func TestControllerReplayTimeline(t *testing.T) {
	h := newHarness(t, 7)
	h.c.Start()
	step := h.c.seq.Step(0)

	if h.c.Phase() != PhaseIdle {
		t.Fatalf("Expected Idle before replay, got %v", h.c.Phase())
	}
	h.tick(constants.SequenceStartDelay - time.Millisecond)
	if len(h.player.played) != 0 {
		t.Fatalf("Expected silence during settling pause, got %v", h.player.played)
	}

	h.tick(time.Millisecond)
	if len(h.player.played) != 1 || h.player.played[0] != step {
		t.Fatalf("Expected replay to play key %d, got %v", step, h.player.played)
	}
	if !h.c.Highlighted(step) {
		t.Error("Expected replayed key highlighted")
	}
	if h.c.Phase() != PhaseReplaying {
		t.Errorf("Expected Replaying, got %v", h.c.Phase())
	}

	h.tick(constants.KeyHighlightDuration - time.Millisecond)
	if !h.c.Highlighted(step) {
		t.Error("Expected highlight held for its full duration")
	}
	h.tick(time.Millisecond)
	if h.c.Highlighted(step) {
		t.Error("Expected highlight reverted")
	}
	if h.c.Phase() != PhaseAwaitingInput {
		t.Errorf("Expected AwaitingInput after final note, got %v", h.c.Phase())
	}

	events := h.events.Consume()
	for _, want := range []engine.EventType{
		engine.EventReplayStarted, engine.EventNotePlayed, engine.EventReplayFinished,
	} {
		if countEvents(events, want) != 1 {
			t.Errorf("Expected exactly one %v event, got %d", want, countEvents(events, want))
		}
	}
}

// TestControllerVictory verifies completing a length-1 target raises
// the level to 2 and generates a fresh length-2 target with the cursor
// cleared.
func TestControllerVictory(t *testing.T) {
	h := newHarness(t, 1)
	h.c.Start()
	h.c.seq.steps = []int{3}
	h.c.seq.cursor = 0

	h.c.handlePress(3)

	if h.c.Level() != 2 {
		t.Errorf("Expected level 2, got %d", h.c.Level())
	}
	if h.c.seq.Len() != 2 || h.c.seq.Cursor() != 0 {
		t.Errorf("Expected fresh length-2 target with cursor 0, got len=%d cursor=%d",
			h.c.seq.Len(), h.c.seq.Cursor())
	}
	if msg := h.c.Message(); msg.Kind != MessageVictory || msg.Text != constants.LevelUpMessage {
		t.Errorf("Expected victory banner, got %+v", msg)
	}
	if len(h.player.played) != 1 || h.player.played[0] != 3 {
		t.Errorf("Expected the winning press to sound, got %v", h.player.played)
	}
	if got := h.reg.Ints.Get("game.level").Load(); got != 2 {
		t.Errorf("Expected level metric 2, got %d", got)
	}
}

// TestControllerLoss verifies a correct press followed by a wrong one
// resets the level to 1 with a fresh length-1 target.
func TestControllerLoss(t *testing.T) {
	h := newHarness(t, 1)
	h.c.Start()
	h.c.level = 2
	h.c.seq.steps = []int{1, 4}
	h.c.seq.cursor = 0

	h.c.handlePress(1)
	if h.c.seq.Cursor() != 1 {
		t.Fatalf("Expected cursor 1 after correct press, got %d", h.c.seq.Cursor())
	}
	if h.c.Message().Kind != MessageNone {
		t.Fatal("Expected no banner mid-sequence")
	}

	h.c.handlePress(2)
	if h.c.Level() != 1 {
		t.Errorf("Expected level reset to 1, got %d", h.c.Level())
	}
	if h.c.seq.Len() != 1 || h.c.seq.Cursor() != 0 {
		t.Errorf("Expected fresh length-1 target with cursor 0, got len=%d cursor=%d",
			h.c.seq.Len(), h.c.seq.Cursor())
	}
	if msg := h.c.Message(); msg.Kind != MessageFailure || msg.Text != constants.WrongKeyMessage {
		t.Errorf("Expected failure banner, got %+v", msg)
	}
	if got := h.reg.Ints.Get("game.failures").Load(); got != 1 {
		t.Errorf("Expected one recorded failure, got %d", got)
	}
}

// TestControllerMessageSuppressesPresses verifies a fingertip on a key
// is ignored while a banner is up and processed again once it clears.
func TestControllerMessageSuppressesPresses(t *testing.T) {
	h := newHarness(t, 1)
	h.c.Start()
	h.c.seq.steps = []int{0}
	h.c.seq.cursor = 0

	// A wrong press puts the failure banner up.
	h.tp.Advance(time.Second)
	if pointers := h.c.Frame(touch(5)); len(pointers) != 1 {
		t.Fatalf("Expected live pointer before banner, got %v", pointers)
	}
	if h.c.Message().Kind != MessageFailure {
		t.Fatal("Expected failure banner after wrong press")
	}
	presses := h.reg.Ints.Get("game.presses").Load()

	// Frames during the banner map nothing and return no pointers.
	for i := 0; i < 3; i++ {
		h.tp.Advance(constants.FrameUpdateInterval)
		if pointers := h.c.Frame(touch(2)); pointers != nil {
			t.Fatalf("Expected suppressed frame %d, got pointers %v", i, pointers)
		}
	}
	if got := h.reg.Ints.Get("game.presses").Load(); got != presses {
		t.Errorf("Expected no presses during banner, got %d extra", got-presses)
	}

	// Once the banner expires the same fingertip registers.
	h.tp.Advance(constants.MessageDuration)
	h.c.Frame(track.Detection{})
	if h.c.Message().Kind != MessageNone {
		t.Fatal("Expected banner cleared")
	}
	h.tp.Advance(constants.FrameUpdateInterval)
	h.c.Frame(touch(2))
	if got := h.reg.Ints.Get("game.presses").Load(); got != presses+1 {
		t.Errorf("Expected press after banner cleared, got %d extra", got-presses)
	}
}

// TestControllerPressDuringReplay verifies input stays live while the
// target is being demonstrated, and that a superseded replay still
// fires and interleaves with the new one.
func TestControllerPressDuringReplay(t *testing.T) {
	h := newHarness(t, 9)
	h.c.Start()
	step := h.c.seq.Step(0)

	// Complete the length-1 target before its replay has begun.
	h.tp.Advance(100 * time.Millisecond)
	h.c.Frame(touch(step))
	if h.c.Level() != 2 {
		t.Fatalf("Expected early press to win, level=%d", h.c.Level())
	}
	played := len(h.player.played)

	// The old replay fires at its original time even though its
	// sequence is gone, then the new replay follows.
	h.tp.Advance(constants.SequenceStartDelay - 100*time.Millisecond)
	h.c.Frame(track.Detection{})
	if len(h.player.played) != played+1 || h.player.played[played] != step {
		t.Errorf("Expected stale replay note %d to fire, got %v", step, h.player.played)
	}
	h.tp.Advance(100 * time.Millisecond)
	h.c.Frame(track.Detection{})
	if len(h.player.played) != played+2 {
		t.Errorf("Expected new replay first note, got %v", h.player.played)
	}
}

// TestControllerPressHighlightReverts verifies a press lights its key
// and the light goes out after the highlight duration even while a
// banner is up.
func TestControllerPressHighlightReverts(t *testing.T) {
	h := newHarness(t, 1)
	h.c.Start()
	h.c.seq.steps = []int{6}
	h.c.seq.cursor = 0

	h.c.handlePress(6)
	if !h.c.Highlighted(6) {
		t.Fatal("Expected pressed key highlighted")
	}
	if h.c.Message().Kind != MessageVictory {
		t.Fatal("Expected victory banner")
	}
	h.tick(constants.KeyHighlightDuration)
	if h.c.Highlighted(6) {
		t.Error("Expected press highlight reverted while banner still up")
	}
	if h.c.Message().Kind == MessageNone {
		t.Error("Expected banner still active at 500ms")
	}
}

// TestControllerStats verifies the registry counters track a short
// session.
func TestControllerStats(t *testing.T) {
	h := newHarness(t, 1)
	h.c.Start()

	h.c.seq.steps = []int{2}
	h.c.seq.cursor = 0
	h.c.handlePress(2)

	h.tp.Advance(2 * constants.MessageDuration)
	h.c.Frame(track.Detection{})
	h.c.seq.steps = []int{0, 1}
	h.c.seq.cursor = 0
	h.c.handlePress(3)

	if got := h.reg.Ints.Get("game.presses").Load(); got != 2 {
		t.Errorf("Expected 2 presses, got %d", got)
	}
	if got := h.reg.Ints.Get("game.completions").Load(); got != 1 {
		t.Errorf("Expected 1 completion, got %d", got)
	}
	if got := h.reg.Ints.Get("game.failures").Load(); got != 1 {
		t.Errorf("Expected 1 failure, got %d", got)
	}
	if got := h.reg.Ints.Get("game.best_level").Load(); got != 2 {
		t.Errorf("Expected best level 2, got %d", got)
	}
	if got := h.reg.Ints.Get("game.level").Load(); got != 1 {
		t.Errorf("Expected level metric reset to 1, got %d", got)
	}
}
