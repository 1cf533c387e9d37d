package track

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/core"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/engine"
)

// Step holds the scripted fingertip position from its timestamp until
// the next step. Clear steps remove all hands for their span.
type Step struct {
	AtMS  int     `yaml:"at_ms"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Clear bool    `yaml:"clear"`
}

// Script is a timed fingertip choreography, used by the demo mode and
// by tests in place of a live tracker
type Script struct {
	Loop       bool   `yaml:"loop"`
	DurationMS int    `yaml:"duration_ms"`
	Steps      []Step `yaml:"steps"`
}

// LoadScript reads and validates a YAML script file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %q: %w", path, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %q: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("script %q: %w", path, err)
	}
	return &s, nil
}

func (s *Script) validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, st := range s.Steps {
		if st.AtMS < 0 {
			return fmt.Errorf("step %d: negative at_ms %d", i, st.AtMS)
		}
	}
	if !sort.SliceIsSorted(s.Steps, func(i, j int) bool {
		return s.Steps[i].AtMS < s.Steps[j].AtMS
	}) {
		return fmt.Errorf("steps not sorted by at_ms")
	}
	if s.DurationMS == 0 {
		s.DurationMS = s.Steps[len(s.Steps)-1].AtMS + 1000
	}
	if s.DurationMS < s.Steps[len(s.Steps)-1].AtMS {
		return fmt.Errorf("duration_ms %d ends before last step", s.DurationMS)
	}
	return nil
}

// StepAt returns the step active at the given elapsed time, or false
// before the first step fires
func (s *Script) StepAt(elapsed time.Duration) (Step, bool) {
	ms := int(elapsed / time.Millisecond)
	active := -1
	for i, st := range s.Steps {
		if st.AtMS <= ms {
			active = i
		} else {
			break
		}
	}
	if active < 0 {
		return Step{}, false
	}
	return s.Steps[active], true
}

// Duration returns the script length
func (s *Script) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}

// ScriptProvider replays a Script into the latest slot against real
// time, standing in for a live tracker
type ScriptProvider struct {
	latest *Latest
	script *Script
	tp     engine.TimeProvider

	running  atomic.Bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScriptProvider creates a provider replaying the given script
func NewScriptProvider(latest *Latest, script *Script, tp engine.TimeProvider) *ScriptProvider {
	return &ScriptProvider{
		latest: latest,
		script: script,
		tp:     tp,
	}
}

// Start begins replaying the script from time zero
func (p *ScriptProvider) Start() error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("script provider already running")
	}

	p.stopChan = make(chan struct{})
	start := p.tp.Now()

	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()

		ticker := time.NewTicker(constants.FrameUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stopChan:
				return
			case <-ticker.C:
				if !p.advance(p.tp.Now().Sub(start)) {
					return
				}
			}
		}
	})

	return nil
}

// advance stores the detection for the elapsed time; returns false when
// a non-looping script has finished
func (p *ScriptProvider) advance(elapsed time.Duration) bool {
	if elapsed >= p.script.Duration() {
		if !p.script.Loop {
			p.latest.Clear()
			return false
		}
		elapsed = elapsed % p.script.Duration()
	}

	step, ok := p.script.StepAt(elapsed)
	if !ok || step.Clear {
		p.latest.Store(Detection{})
		return true
	}

	p.latest.Store(Detection{Hands: []Hand{SyntheticHand(step.X, step.Y)}})
	return true
}

// Stop halts replay and waits for the goroutine to exit
func (p *ScriptProvider) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
}
