package config

import (
	"fmt"
	"strings"

	"winnow/internal/services"
)

// Validate checks the configuration for values the pipeline cannot work with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "nil config", nil)
	}
	return cfg.Validate()
}

// Validate checks field constraints after normalization.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.InputDir == "" {
		problems = append(problems, "paths.input_dir must not be empty")
	}
	if c.Paths.OutputDir == "" {
		problems = append(problems, "paths.output_dir must not be empty")
	}
	if c.Paths.InputDir != "" && c.Paths.InputDir == c.Paths.OutputDir {
		problems = append(problems, "paths.output_dir must differ from paths.input_dir")
	}
	if c.Detection.MinContourArea < 0 {
		problems = append(problems, "detection.min_contour_area must not be negative")
	}
	if c.Detection.MaskThreshold < 0 || c.Detection.MaskThreshold > 255 {
		problems = append(problems, "detection.mask_threshold must be within 0..255")
	}
	if c.Detection.AdaptationRate <= 0 || c.Detection.AdaptationRate >= 1 {
		problems = append(problems, "detection.adaptation_rate must be within (0, 1)")
	}
	if c.Detection.BufferSeconds < 0 {
		problems = append(problems, "detection.buffer_seconds must not be negative")
	}
	if c.Batch.Workers < 0 {
		problems = append(problems, "batch.workers must not be negative")
	}
	if len(c.Batch.Extensions) == 0 {
		problems = append(problems, "batch.extensions must list at least one extension")
	}
	if c.Encoder.CRF < 0 || c.Encoder.CRF > 51 {
		problems = append(problems, "encoder.crf must be within 0..51")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return services.Wrap(services.ErrConfiguration, "config", "validate", strings.Join(problems, "; "), nil)
	}
	return nil
}
