package rawvideo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Stream reads gray8 frames from a running ffmpeg decode. It is owned by a
// single job; Close must run on every exit path so the subprocess and pipe
// are reclaimed.
type Stream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	frame  []byte
	width  int
	height int
	index  int
	done   bool
}

// Open launches the decode subprocess for path, converting every frame of the
// first video stream to a single gray plane of width x height bytes.
func Open(ctx context.Context, binary, path string, width, height int) (*Stream, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rawvideo open: invalid dimensions %dx%d", width, height)
	}
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-threads", "0",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"pipe:1",
	}
	cmd := commandContext(ctx, binary, args...)

	stream := &Stream{
		cmd:    cmd,
		frame:  make([]byte, width*height),
		width:  width,
		height: height,
	}
	cmd.Stderr = &stream.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("rawvideo stdout pipe: %w", err)
	}
	stream.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("rawvideo start %s: %w", binary, err)
	}
	return stream, nil
}

// Next returns the next decoded frame, or ok=false at end of stream. The
// returned slice is reused by the following call. A short read mid-frame is a
// decode fault, not a clean end.
func (s *Stream) Next() ([]byte, bool, error) {
	if s.done {
		return nil, false, nil
	}
	_, err := io.ReadFull(s.stdout, s.frame)
	switch {
	case err == nil:
		s.index++
		return s.frame, true, nil
	case errors.Is(err, io.EOF):
		s.done = true
		if waitErr := s.wait(); waitErr != nil {
			return nil, false, waitErr
		}
		return nil, false, nil
	default:
		s.done = true
		return nil, false, fmt.Errorf("rawvideo read frame %d: %w%s", s.index, err, s.stderrSuffix())
	}
}

// Index reports how many frames have been produced so far.
func (s *Stream) Index() int {
	return s.index
}

// Close releases the pipe and subprocess. Safe to call after a failed Next.
func (s *Stream) Close() error {
	if s.stdout != nil {
		_ = s.stdout.Close()
		s.stdout = nil
	}
	if s.cmd != nil && s.cmd.Process != nil {
		if s.cmd.ProcessState == nil {
			_ = s.cmd.Process.Kill()
			_ = s.cmd.Wait()
		}
		s.cmd = nil
	}
	return nil
}

func (s *Stream) wait() error {
	if s.cmd == nil {
		return nil
	}
	cmd := s.cmd
	s.cmd = nil
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("rawvideo decode: %w%s", err, s.stderrSuffix())
	}
	return nil
}

func (s *Stream) stderrSuffix() string {
	detail := strings.TrimSpace(s.stderr.String())
	if detail == "" {
		return ""
	}
	return ": " + tail(detail, 400)
}

func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
