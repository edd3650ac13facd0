package job

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"winnow/internal/config"
	"winnow/internal/fileutil"
	"winnow/internal/logging"
	"winnow/internal/media/ffmpeg"
	"winnow/internal/motion"
	"winnow/internal/services"
)

// Status is the terminal outcome of one file job.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusNoMotion Status = "no motion"
	StatusFailed   Status = "failed"
)

// Result reports one file's outcome.
type Result struct {
	Source        string
	Output        string
	Status        Status
	Message       string
	Intervals     int
	VideoDuration float64
	Elapsed       time.Duration
	Err           error
}

// Label renders the status the way progress lines and the ledger show it:
// the taxonomy class for failures, the plain status otherwise.
func (r Result) Label() string {
	if r.Status == StatusFailed {
		return services.Classify(r.Err)
	}
	return string(r.Status)
}

// Pipeline processes files one at a time. A single Pipeline is safe for
// concurrent Process calls: all per-file state (model, classifier, decode
// stream) is created inside Process and discarded before it returns.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor ffmpeg.Extractor
}

// New constructs a pipeline with the real extractor wired in.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	extractor := ffmpeg.NewCLI(
		ffmpeg.WithBinary(cfg.Encoder.FFmpegBinary),
		ffmpeg.WithEncoding(cfg.Encoder.VideoCodec, cfg.Encoder.Preset, cfg.Encoder.CRF, cfg.Encoder.AudioBitrate),
	)
	return NewWithExtractor(cfg, logger, extractor)
}

// NewWithExtractor constructs a pipeline using the provided extractor.
func NewWithExtractor(cfg *config.Config, logger *slog.Logger, extractor ffmpeg.Extractor) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "job"),
		extractor: extractor,
	}
}

// Process runs the full state machine for source, writing any extracted clip
// into outputDir. The source file is left untouched on failure.
func (p *Pipeline) Process(ctx context.Context, source, outputDir string) Result {
	start := time.Now()
	logger := p.logger.With(logging.String(logging.FieldSourceFile, source))

	result := p.process(ctx, logger, source, outputDir)
	result.Source = source
	result.Elapsed = time.Since(start)
	if result.Err != nil {
		result.Status = StatusFailed
		result.Message = result.Err.Error()
		logger.Error("job failed",
			logging.Error(result.Err),
			logging.Duration("elapsed", result.Elapsed))
	} else {
		logger.Info("job finished",
			logging.String("status", string(result.Status)),
			logging.Int("intervals", result.Intervals),
			logging.Duration("elapsed", result.Elapsed))
	}
	return result
}

func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, source, outputDir string) Result {
	var result Result

	// Read once, before the source is touched; written onto the output after
	// extraction.
	times, err := CaptureTimes(source)
	if err != nil {
		result.Err = services.Wrap(services.ErrOpen, "job", "stat source", "", err)
		return result
	}

	probe, err := probeStream(ctx, p.cfg.Encoder.FFprobeBinary, source)
	if err != nil {
		result.Err = services.Wrap(services.ErrOpen, "job", "probe", "", err)
		return result
	}
	if probe.VideoStreamCount() == 0 {
		result.Err = services.Wrap(services.ErrOpen, "job", "probe", "no video stream", nil)
		return result
	}
	fps := probe.AvgFrameRate()
	duration := probe.DurationSeconds()
	width, height := probe.Dimensions()
	if fps <= 0 || duration <= 0 || width <= 0 || height <= 0 {
		result.Err = services.Wrap(services.ErrOpen, "job", "probe",
			fmt.Sprintf("unusable stream metadata: fps=%v duration=%v size=%dx%d", fps, duration, width, height), nil)
		return result
	}
	result.VideoDuration = duration

	samples, err := p.scan(ctx, source, width, height, fps)
	if err != nil {
		result.Err = err
		return result
	}

	plan := motion.Aggregate(samples, fps, duration, p.cfg.Detection.BufferSeconds)
	result.Intervals = len(plan.Intervals)

	if plan.Empty() {
		result.Status = StatusNoMotion
		logger.Debug("no motion detected", logging.Float64("duration", duration))
		if !p.cfg.Batch.KeepNoMotionSources {
			if err := removeSource(source); err != nil {
				result.Err = err
				return result
			}
		}
		return result
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		result.Err = services.Wrap(services.ErrFilesystem, "job", "create output directory", "", err)
		return result
	}
	output := filepath.Join(outputDir, "motion_"+filepath.Base(source))
	req := ffmpeg.Request{
		Source:    source,
		Output:    output,
		Selection: plan.Selection(),
		Audio:     probe.AudioStreamCount() > 0,
	}
	logger.Debug("extracting motion segments",
		logging.Int("intervals", result.Intervals),
		logging.Float64("selected_seconds", plan.TotalSeconds()))
	if err := p.extractor.Extract(ctx, req); err != nil {
		result.Err = services.Wrap(services.ErrEncode, "job", "extract", "", err)
		return result
	}
	result.Output = output

	if err := ApplyTimes(output, times); err != nil {
		result.Err = services.Wrap(services.ErrMetadata, "job", "apply timestamps", "", err)
		return result
	}

	if err := removeSource(source); err != nil {
		result.Err = err
		return result
	}

	result.Status = StatusSuccess
	return result
}

// scan feeds every decoded frame through the classifier in presentation
// order and collects one motion sample per frame.
func (p *Pipeline) scan(ctx context.Context, source string, width, height int, fps float64) ([]motion.Sample, error) {
	stream, err := openStream(ctx, p.cfg.Encoder.FFmpegBinary, source, width, height)
	if err != nil {
		return nil, services.Wrap(services.ErrOpen, "job", "open decode stream", "", err)
	}
	defer stream.Close()

	model := motion.NewAdaptiveModel(width, height, p.cfg.Detection.AdaptationRate)
	classifier := motion.NewClassifier(width, height, p.cfg.Detection.MaskThreshold, p.cfg.Detection.MinContourArea)

	var samples []motion.Sample
	for {
		frame, ok, err := stream.Next()
		if err != nil {
			return nil, services.Wrap(services.ErrDecode, "job", "decode", "", err)
		}
		if !ok {
			return samples, nil
		}

		isMotion, err := classifier.Classify(frame, model)
		if err != nil {
			return nil, services.Wrap(services.ErrDecode, "job", "classify", "", err)
		}
		samples = append(samples, motion.Sample{
			Timestamp: float64(stream.Index()-1) / fps,
			Motion:    isMotion,
		})
	}
}

func removeSource(source string) error {
	if err := removeFile(source); err != nil {
		return services.Wrap(services.ErrFilesystem, "job", "delete source", "", err)
	}
	return nil
}
