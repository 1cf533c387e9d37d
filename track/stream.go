package track

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/core"
)

// StreamProvider runs an external tracker process and reads one JSON
// detection per line from its stdout. A dying or misbehaving tracker
// degrades to the zero-hands steady state; it never crashes the game.
type StreamProvider struct {
	latest *Latest
	path   string
	args   []string

	cmd    *exec.Cmd
	stdout io.ReadCloser

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewStreamProvider creates a provider that will run the given command
// and feed the latest slot
func NewStreamProvider(latest *Latest, path string, args ...string) *StreamProvider {
	return &StreamProvider{
		latest: latest,
		path:   path,
		args:   args,
	}
}

// Start launches the tracker process and the read loop
func (p *StreamProvider) Start() error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("tracker already running")
	}

	cmd := exec.Command(p.path, p.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		p.running.Store(false)
		return fmt.Errorf("tracker stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		p.running.Store(false)
		return fmt.Errorf("start tracker %q: %w", p.path, err)
	}

	p.cmd = cmd
	p.stdout = stdout

	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()
		p.readLoop()
	})

	return nil
}

// readLoop scans detection lines until the stream ends. Malformed lines
// are logged and skipped; the provider keeps reading.
func (p *StreamProvider) readLoop() {
	scanner := bufio.NewScanner(p.stdout)
	scanner.Buffer(make([]byte, 64*1024), constants.TrackerLineLimit)

	for scanner.Scan() {
		if !p.running.Load() {
			break
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var d Detection
		if err := json.Unmarshal(line, &d); err != nil {
			slog.Warn("tracker line rejected", "error", err)
			continue
		}
		p.latest.Store(d)
	}

	if err := scanner.Err(); err != nil && p.running.Load() {
		slog.Warn("tracker stream ended", "error", err)
	}

	// Reap the process and drop stale hands so the game falls back to
	// the zero-hands steady state
	p.cmd.Wait()
	p.latest.Clear()

	if p.running.Load() {
		slog.Info("tracker exited, continuing without hand input")
	}
}

// Stop kills the tracker process and waits for the read loop to finish
func (p *StreamProvider) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.stdout.Close()

	p.wg.Wait()
}
