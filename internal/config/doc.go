// Package config loads, normalizes, and validates winnow configuration.
//
// Resolution order: built-in defaults, then an optional TOML file, then the
// environment overrides the original tool honored (INPUT_FOLDER,
// OUTPUT_FOLDER, MIN_CONTOUR_AREA, BUFFER_TIME). Configuration is resolved
// once at startup into an explicit struct passed down the pipeline; nothing
// reads the environment mid-run.
package config
