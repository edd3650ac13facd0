package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Request describes one extraction: re-encode Source into Output keeping only
// frames where Selection is truthy, re-deriving timestamps so the result is
// contiguous. Audio selects the same ranges when Audio is set.
type Request struct {
	Source    string
	Output    string
	Selection string
	Audio     bool
}

// Extractor runs the external encoder for one job.
type Extractor interface {
	Extract(ctx context.Context, req Request) error
}

// Option configures the CLI extractor.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithEncoding overrides the output encoding settings.
func WithEncoding(videoCodec, preset string, crf int, audioBitrate string) Option {
	return func(c *CLI) {
		if videoCodec != "" {
			c.videoCodec = videoCodec
		}
		if preset != "" {
			c.preset = preset
		}
		if crf > 0 {
			c.crf = crf
		}
		if audioBitrate != "" {
			c.audioBitrate = audioBitrate
		}
	}
}

// CLI wraps the ffmpeg command-line encoder.
type CLI struct {
	binary       string
	videoCodec   string
	preset       string
	crf          int
	audioBitrate string
}

// NewCLI constructs a CLI extractor using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:       "ffmpeg",
		videoCodec:   "libx264",
		preset:       "fast",
		crf:          23,
		audioBitrate: "128k",
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Extract launches ffmpeg and verifies it produced a non-empty output.
func (c *CLI) Extract(ctx context.Context, req Request) error {
	if req.Source == "" {
		return errors.New("source path required")
	}
	if req.Output == "" {
		return errors.New("output path required")
	}
	if strings.TrimSpace(req.Selection) == "" {
		return errors.New("selection expression required")
	}

	args := c.buildArgs(req)
	cmd := commandContext(ctx, c.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w%s", err, stderrSuffix(stderr.String()))
	}

	info, err := os.Stat(req.Output)
	if err != nil {
		return fmt.Errorf("ffmpeg extract: output missing: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("ffmpeg extract: output is empty")
	}
	return nil
}

func (c *CLI) buildArgs(req Request) []string {
	var filter strings.Builder
	filter.WriteString("[0:v]select='")
	filter.WriteString(req.Selection)
	filter.WriteString("',setpts=N/FRAME_RATE/TB[v]")
	if req.Audio {
		filter.WriteString(";[0:a]aselect='")
		filter.WriteString(req.Selection)
		filter.WriteString("',asetpts=N/SR/TB[a]")
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.Source,
		"-filter_complex", filter.String(),
		"-map", "[v]",
	}
	if req.Audio {
		args = append(args, "-map", "[a]")
	}
	args = append(args,
		"-c:v", c.videoCodec,
		"-preset", c.preset,
		"-crf", strconv.Itoa(c.crf),
	)
	if req.Audio {
		args = append(args, "-c:a", "aac", "-b:a", c.audioBitrate)
	}
	return append(args, req.Output)
}

func stderrSuffix(detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return ""
	}
	if len(detail) > 400 {
		detail = "..." + detail[len(detail)-400:]
	}
	return ": " + detail
}

var _ Extractor = (*CLI)(nil)
