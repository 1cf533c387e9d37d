package capture

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/constants"
	"github.com/marianaas8/FollowTheKeys-AudioVisualInteractions/core"
)

// ExecSource runs an external process (typically ffmpeg) that writes
// fixed-size raw RGB24 frames to its stdout. A dying process degrades
// to a blank backdrop; it never crashes the game.
type ExecSource struct {
	latest *Latest
	path   string
	args   []string
	width  int
	height int

	cmd    *exec.Cmd
	stdout io.ReadCloser

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewExecSource creates a source running the given command, expecting
// frames of the given size on its stdout
func NewExecSource(latest *Latest, width, height int, path string, args ...string) *ExecSource {
	return &ExecSource{
		latest: latest,
		path:   path,
		args:   args,
		width:  width,
		height: height,
	}
}

// Start launches the capture process and the frame read loop
func (s *ExecSource) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("capture already running")
	}

	cmd := exec.Command(s.path, s.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("capture stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		s.running.Store(false)
		return fmt.Errorf("start capture %q: %w", s.path, err)
	}

	s.cmd = cmd
	s.stdout = stdout

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		s.readLoop()
	})

	return nil
}

// readLoop reads full frames until the stream ends. Each frame gets a
// fresh buffer; a renderer may keep sampling the previous frame for a
// whole draw after it has been replaced.
func (s *ExecSource) readLoop() {
	frameSize := s.width * s.height * constants.CaptureBytesPerPixel

	for {
		buf := make([]byte, frameSize)
		if _, err := io.ReadFull(s.stdout, buf); err != nil {
			if s.running.Load() && err != io.EOF {
				slog.Warn("capture stream ended", "error", err)
			}
			break
		}
		if !s.running.Load() {
			break
		}

		s.latest.Store(Frame{Pixels: buf, Width: s.width, Height: s.height})
	}

	s.cmd.Wait()
	s.latest.Clear()

	if s.running.Load() {
		slog.Info("capture exited, continuing without video backdrop")
	}
}

// Stop kills the capture process and waits for the read loop to finish
func (s *ExecSource) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}

	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.stdout.Close()

	s.wg.Wait()
}
