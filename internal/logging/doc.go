// Package logging wires log/slog with a compact console handler for
// interactive runs and a JSON handler for log files and non-TTY output.
package logging
