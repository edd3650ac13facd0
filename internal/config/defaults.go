package config

import "runtime"

const (
	defaultInputDir       = "videos"
	defaultOutputDir      = "output"
	defaultStateDir       = "~/.local/share/winnow"
	defaultLogDir         = "~/.local/share/winnow/logs"
	defaultMinContourArea = 500
	defaultMaskThreshold  = 244
	defaultAdaptationRate = 0.05
	defaultBufferSeconds  = 2.0
	defaultVideoCodec     = "libx264"
	defaultPreset         = "fast"
	defaultCRF            = 23
	defaultAudioBitrate   = "128k"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// maxWorkers caps the pool regardless of core count; each worker runs a
	// multi-threaded decode plus an encoder subprocess of its own.
	maxWorkers = 4
)

func defaultExtensions() []string {
	return []string{"mp4", "avi", "mov", "mkv", "flv", "wmv", "mpeg"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Detection: Detection{
			MinContourArea: defaultMinContourArea,
			MaskThreshold:  defaultMaskThreshold,
			AdaptationRate: defaultAdaptationRate,
			BufferSeconds:  defaultBufferSeconds,
		},
		Batch: Batch{
			Workers:    0,
			Extensions: defaultExtensions(),
		},
		Encoder: Encoder{
			FFmpegBinary:  "ffmpeg",
			FFprobeBinary: "ffprobe",
			VideoCodec:    defaultVideoCodec,
			Preset:        defaultPreset,
			CRF:           defaultCRF,
			AudioBitrate:  defaultAudioBitrate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// Workers resolves the effective pool size.
func (c *Config) Workers() int {
	if c.Batch.Workers > 0 {
		return c.Batch.Workers
	}
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
