// Package ffprobe shells out to ffprobe and exposes the stream metadata the
// pipeline needs: frame rate, frame count, duration, and dimensions.
package ffprobe
