package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/audio"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/capture"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/core"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/engine"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/game"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/input"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/keyboard"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/render"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/status"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/track"
)

// notePlayer fans one key press out to the speaker and, when a sink is
// open, to MIDI.
type notePlayer struct {
	audio *audio.Engine
	midi  *audio.MIDISink
	notes []keyboard.Note
}

func (p *notePlayer) Play(key int) bool {
	played := p.audio.Play(key)
	if p.midi != nil {
		p.midi.PlayNote(p.notes[key].MIDI, constants.SynthNoteDuration)
	}
	return played
}

func run(cfg *Config) error {
	// Terminal must be restored before the crash report prints, even
	// when a goroutine panics
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	logFile := setupLogging(cfg.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	switch cfg.colorMode {
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	case "256":
		os.Setenv("COLORTERM", "")
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Note clips come from disk when an asset directory is given,
	// otherwise they are synthesized. A missing clip is fatal.
	rate := beep.SampleRate(constants.AudioSampleRate)
	notes := keyboard.Notes(cfg.keys)
	var bank *audio.Bank
	if cfg.assets != "" {
		b, err := audio.LoadBank(cfg.assets, cfg.keys, rate)
		if err != nil {
			return fmt.Errorf("load note clips: %w", err)
		}
		bank = b
	} else {
		bank = audio.SynthBank(notes, audio.ParseWaveType(cfg.wave), rate)
	}

	audioEngine := audio.NewEngine(bank)
	audioEngine.SetVolume(cfg.volume)
	if cfg.mute {
		audioEngine.ToggleMute()
	}
	if err := audioEngine.Initialize(); err != nil {
		slog.Warn("speaker unavailable, continuing silent", "error", err)
	} else {
		defer audioEngine.Cleanup()
	}

	var midiSink *audio.MIDISink
	if cfg.midi {
		sink, err := audio.OpenMIDISink(cfg.midiPort)
		if err != nil {
			slog.Warn("midi unavailable, continuing without", "error", err)
		} else {
			midiSink = sink
			defer midiSink.Close()
			slog.Info("midi output open", "port", midiSink.Name())
		}
	}

	// The demo script loads before the screen takes over so a bad file
	// reports as a plain error.
	var script *track.Script
	if cfg.script != "" {
		s, err := track.LoadScript(cfg.script)
		if err != nil {
			return err
		}
		script = s
	}

	tp := engine.NewMonotonicTimeProvider()
	events := engine.NewEventQueue()
	reg := status.NewRegistry()
	defer printSummary(reg)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.RegisterCrashScreen(screen)
	defer screen.Fini()

	// Hand input: scripted demo, mouse pointer, or tracker subprocess.
	// With none of them the game just sees zero hands.
	var handLatest track.Latest
	var provider track.Provider
	var pointerProv *track.PointerProvider
	switch {
	case script != nil:
		provider = track.NewScriptProvider(&handLatest, script, tp)
	case cfg.pointer:
		pointerProv = track.NewPointerProvider(&handLatest, cfg.captureWidth, cfg.captureHeight)
		provider = pointerProv
		screen.EnableMouse()
	case cfg.tracker != "":
		parts := strings.Fields(cfg.tracker)
		provider = track.NewStreamProvider(&handLatest, parts[0], parts[1:]...)
	}
	if provider != nil {
		if err := provider.Start(); err != nil {
			slog.Warn("hand input unavailable, continuing without", "error", err)
		} else {
			defer provider.Stop()
		}
	}

	var frameLatest capture.Latest
	var source capture.Source
	switch {
	case cfg.capture != "":
		parts := strings.Fields(cfg.capture)
		source = capture.NewExecSource(&frameLatest, cfg.captureWidth, cfg.captureHeight, parts[0], parts[1:]...)
	case cfg.pattern:
		source = capture.NewPatternSource(&frameLatest, cfg.captureWidth, cfg.captureHeight)
	}
	if source != nil {
		if err := source.Start(); err != nil {
			slog.Warn("capture unavailable, continuing without backdrop", "error", err)
		} else {
			defer source.Stop()
		}
	}

	width, height := screen.Size()
	layout := keyboard.Build(width, height, cfg.keys)
	mapper := input.NewMapper(tp, events, layout, cfg.captureWidth, cfg.captureHeight, cfg.debounce)
	player := &notePlayer{audio: audioEngine, midi: midiSink, notes: notes}
	controller := game.NewController(game.Config{
		Time:   tp,
		Events: events,
		Status: reg,
		Player: player,
		Mapper: mapper,
		Keys:   cfg.keys,
		Seed:   seed,
	})
	renderer := render.NewRenderer(screen, reg, width, height)

	slog.Info("game starting", "keys", cfg.keys, "seed", seed)
	controller.Start()

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	statFPS := reg.Floats.Get("render.fps")
	statFrames := reg.Ints.Get("render.frames")
	statRejected := reg.Ints.Get("input.rejected")
	lastFrame := tp.Now()

	for {
		select {
		case ev := <-eventChan:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch tev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyRune:
					switch tev.Rune() {
					case 'q':
						return nil
					case 'm':
						muted := audioEngine.ToggleMute()
						slog.Info("mute toggled", "muted", muted)
					}
				}
			case *tcell.EventResize:
				width, height = tev.Size()
				layout = keyboard.Build(width, height, cfg.keys)
				controller.Resize(layout)
				renderer.Resize(width, height)
				screen.Sync()
			case *tcell.EventMouse:
				if pointerProv != nil {
					x, y := tev.Position()
					pointerProv.Feed(x, y, width, height)
				}
			}

		case <-frameTicker.C:
			now := tp.Now()
			if dt := now.Sub(lastFrame); dt > 0 {
				statFPS.Set(1.0 / dt.Seconds())
			}
			lastFrame = now
			statFrames.Add(1)

			pointers := controller.Frame(handLatest.Load())
			frame, haveFrame := frameLatest.Load()
			renderer.RenderFrame(controller, render.Scene{
				Layout:    layout,
				Frame:     frame,
				HaveFrame: haveFrame,
				Pointers:  pointers,
				Debug:     cfg.debug,
			})

			for _, gev := range events.Consume() {
				switch gev.Type {
				case engine.EventPressRejected:
					statRejected.Add(1)
					slog.Debug("press rejected", "key", gev.Key)
				case engine.EventKeyPressed:
					slog.Debug("key pressed", "key", gev.Key, "level", gev.Level)
				case engine.EventSequenceComplete:
					slog.Info("sequence complete", "level", gev.Level)
				case engine.EventSequenceFailed:
					slog.Info("sequence failed", "key", gev.Key, "level", gev.Level)
				}
			}
		}
	}
}

// printSummary writes the session counters to stdout once the screen
// is restored.
func printSummary(reg *status.Registry) {
	fmt.Printf("best level %d | presses %d | completed %d | failed %d\n",
		reg.Ints.Get("game.best_level").Load(),
		reg.Ints.Get("game.presses").Load(),
		reg.Ints.Get("game.completions").Load(),
		reg.Ints.Get("game.failures").Load())
}
