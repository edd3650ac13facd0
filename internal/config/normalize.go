package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment keys honored for compatibility with the original tool. These
// always win over file-supplied values.
const (
	EnvInputFolder    = "INPUT_FOLDER"
	EnvOutputFolder   = "OUTPUT_FOLDER"
	EnvMinContourArea = "MIN_CONTOUR_AREA"
	EnvBufferTime     = "BUFFER_TIME"
)

func (c *Config) normalize() error {
	if err := c.applyEnvironment(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizeEncoder()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnvironment() error {
	if value, ok := lookupEnv(EnvInputFolder); ok {
		c.Paths.InputDir = value
	}
	if value, ok := lookupEnv(EnvOutputFolder); ok {
		c.Paths.OutputDir = value
	}
	if value, ok := lookupEnv(EnvMinContourArea); ok {
		area, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: parse %q: %w", EnvMinContourArea, value, err)
		}
		c.Detection.MinContourArea = area
	}
	if value, ok := lookupEnv(EnvBufferTime); ok {
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: parse %q: %w", EnvBufferTime, value, err)
		}
		c.Detection.BufferSeconds = seconds
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBatch() {
	if len(c.Batch.Extensions) == 0 {
		c.Batch.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Batch.Extensions))
	for _, ext := range c.Batch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext != "" {
			normalized = append(normalized, ext)
		}
	}
	c.Batch.Extensions = normalized
}

func (c *Config) normalizeEncoder() {
	if strings.TrimSpace(c.Encoder.FFmpegBinary) == "" {
		c.Encoder.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(c.Encoder.FFprobeBinary) == "" {
		c.Encoder.FFprobeBinary = "ffprobe"
	}
	if strings.TrimSpace(c.Encoder.VideoCodec) == "" {
		c.Encoder.VideoCodec = defaultVideoCodec
	}
	if strings.TrimSpace(c.Encoder.Preset) == "" {
		c.Encoder.Preset = defaultPreset
	}
	if c.Encoder.CRF == 0 {
		c.Encoder.CRF = defaultCRF
	}
	if strings.TrimSpace(c.Encoder.AudioBitrate) == "" {
		c.Encoder.AudioBitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
