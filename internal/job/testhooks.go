package job

import (
	"context"
	"os"

	"winnow/internal/media/ffprobe"
	"winnow/internal/media/rawvideo"
)

// FrameStream is the decode handle Process consumes frames from.
type FrameStream interface {
	Next() ([]byte, bool, error)
	Index() int
	Close() error
}

// Package-level seams so tests can run the full state machine without real
// media tools.
var (
	probeStream = ffprobe.Inspect
	openStream  = func(ctx context.Context, binary, path string, width, height int) (FrameStream, error) {
		return rawvideo.Open(ctx, binary, path, width, height)
	}
	removeFile = os.Remove
)

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := probeStream
	probeStream = fn
	return func() {
		probeStream = previous
	}
}

// SetStreamOpenerForTests overrides the decode stream factory during tests.
func SetStreamOpenerForTests(fn func(context.Context, string, string, int, int) (FrameStream, error)) func() {
	previous := openStream
	openStream = fn
	return func() {
		openStream = previous
	}
}
