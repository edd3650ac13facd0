// Package ffmpeg invokes the external encoder that extracts the selected
// time ranges into a new, contiguously timestamped output file.
package ffmpeg
