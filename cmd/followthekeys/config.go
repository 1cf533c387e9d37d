package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
)

type Config struct {
	assets        string
	capture       string
	captureHeight int
	captureWidth  int
	colorMode     string
	debounce      time.Duration
	debug         bool
	keys          int
	midi          bool
	midiPort      string
	mute          bool
	pattern       bool
	pointer       bool
	script        string
	seed          int64
	tracker       string
	version       bool
	volume        float64
	wave          string
}

func (c *Config) validate() error {
	if c.keys < 1 || c.keys > 32 {
		return fmt.Errorf("invalid key count (must be between 1-32 inclusive): %d", c.keys)
	}
	if c.volume < 0 || c.volume > 1 {
		return fmt.Errorf("invalid volume (must be between 0.0-1.0 inclusive): %f", c.volume)
	}
	if c.debounce < 0 {
		return fmt.Errorf("invalid debounce (must not be negative): %s", c.debounce)
	}
	if c.captureWidth < 1 || c.captureHeight < 1 {
		return fmt.Errorf("invalid capture size: %dx%d", c.captureWidth, c.captureHeight)
	}
	switch c.wave {
	case "sine", "triangle", "square", "saw", "noise":
	default:
		return fmt.Errorf("invalid wave (must be sine, triangle, square, saw, or noise): %q", c.wave)
	}
	switch c.colorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("invalid color mode (must be auto, truecolor, or 256): %q", c.colorMode)
	}

	sources := 0
	if c.script != "" {
		sources++
	}
	if c.pointer {
		sources++
	}
	if c.tracker != "" {
		sources++
	}
	if sources > 1 {
		return errors.New("choose at most one of --script, --pointer, and --tracker")
	}
	if c.capture != "" && c.pattern {
		return errors.New("--capture and --pattern are mutually exclusive")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOLLOWTHEKEYS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "followthekeys",
		Short:         "A hand-tracked piano memory game for the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.assets, "assets", "a", "", "directory of note clips named 1..N as .wav or .mp3; empty synthesizes tones (env: FOLLOWTHEKEYS_ASSETS)")
	fs.StringVar(&cfg.capture, "capture", "", "command emitting raw RGB24 frames on stdout for the backdrop (env: FOLLOWTHEKEYS_CAPTURE)")
	fs.IntVar(&cfg.captureHeight, "capture-height", constants.DefaultCaptureHeight, "capture frame height in pixels (env: FOLLOWTHEKEYS_CAPTURE_HEIGHT)")
	fs.IntVar(&cfg.captureWidth, "capture-width", constants.DefaultCaptureWidth, "capture frame width in pixels (env: FOLLOWTHEKEYS_CAPTURE_WIDTH)")
	fs.StringVar(&cfg.colorMode, "color", "auto", "color mode: auto, truecolor, 256 (env: FOLLOWTHEKEYS_COLOR)")
	fs.DurationVar(&cfg.debounce, "debounce", constants.DebounceInterval, "minimum time between accepted presses on any key (env: FOLLOWTHEKEYS_DEBOUNCE)")
	fs.BoolVarP(&cfg.debug, "debug", "d", false, "enable file logging and the debug overlay (env: FOLLOWTHEKEYS_DEBUG)")
	fs.IntVarP(&cfg.keys, "keys", "k", constants.DefaultKeyCount, "number of white keys (env: FOLLOWTHEKEYS_KEYS)")
	fs.BoolVar(&cfg.midi, "midi", false, "echo notes to a MIDI output port (env: FOLLOWTHEKEYS_MIDI)")
	fs.StringVar(&cfg.midiPort, "midi-port", "", "substring match for the MIDI output port; empty picks the first real port (env: FOLLOWTHEKEYS_MIDI_PORT)")
	fs.BoolVar(&cfg.mute, "mute", false, "start with audio muted (env: FOLLOWTHEKEYS_MUTE)")
	fs.BoolVar(&cfg.pattern, "pattern", false, "use a synthetic animated backdrop instead of a capture command (env: FOLLOWTHEKEYS_PATTERN)")
	fs.BoolVarP(&cfg.pointer, "pointer", "p", false, "play with the mouse pointer instead of a hand tracker (env: FOLLOWTHEKEYS_POINTER)")
	fs.StringVar(&cfg.script, "script", "", "path to a scripted hand-movement YAML file for demos (env: FOLLOWTHEKEYS_SCRIPT)")
	fs.Int64Var(&cfg.seed, "seed", 0, "sequence RNG seed; 0 draws from the clock (env: FOLLOWTHEKEYS_SEED)")
	fs.StringVarP(&cfg.tracker, "tracker", "t", "", "hand tracker command emitting JSON detections on stdout (env: FOLLOWTHEKEYS_TRACKER)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: FOLLOWTHEKEYS_VERSION)")
	fs.Float64Var(&cfg.volume, "volume", constants.DefaultVolume, "playback volume from 0.0 to 1.0 (env: FOLLOWTHEKEYS_VOLUME)")
	fs.StringVarP(&cfg.wave, "wave", "w", "sine", "synthesized waveform: sine, triangle, square, saw, noise (env: FOLLOWTHEKEYS_WAVE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("followthekeys v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
