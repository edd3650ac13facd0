// Package rawvideo streams decoded gray8 frames from an ffmpeg subprocess.
// The pipeline never touches codec internals; ffmpeg demuxes and decodes
// while this package reads fixed-size planes off the pipe.
package rawvideo
