package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"winnow/internal/config"
	"winnow/internal/job"
	"winnow/internal/ledger"
	"winnow/internal/logging"
)

// Processor runs one file job. Satisfied by *job.Pipeline.
type Processor interface {
	Process(ctx context.Context, source, outputDir string) job.Result
}

// Recorder persists a finished run. Satisfied by *ledger.Store.
type Recorder interface {
	RecordRun(ctx context.Context, run ledger.Run, files []ledger.FileRecord) error
}

// Summary aggregates a whole batch run.
type Summary struct {
	RunID     string
	Total     int
	Succeeded int
	NoMotion  int
	Failed    int
	Pruned    int
	Elapsed   time.Duration
	Results   []job.Result
}

// Runner owns one batch run over the configured input tree.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	processor Processor
	recorder  Recorder
}

// NewRunner builds a runner. recorder may be nil to skip ledger writes.
func NewRunner(cfg *config.Config, logger *slog.Logger, processor Processor, recorder Recorder) *Runner {
	return &Runner{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "batch"),
		processor: processor,
		recorder:  recorder,
	}
}

// Run discovers candidates, processes them across the worker pool, prunes
// emptied input directories, and records the run. Individual job failures
// never abort the batch; Run itself fails only when discovery does.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, r.logger)

	candidates, err := Discover(r.cfg)
	if err != nil {
		return summary, fmt.Errorf("discover candidates: %w", err)
	}
	summary.Total = len(candidates)
	logger.Info("batch started",
		logging.Int("files", summary.Total),
		logging.Int("workers", r.cfg.Workers()),
		logging.String("input", r.cfg.Paths.InputDir),
		logging.String("output", r.cfg.Paths.OutputDir))

	summary.Results = r.processAll(ctx, logger, candidates)
	for _, result := range summary.Results {
		switch result.Status {
		case job.StatusSuccess:
			summary.Succeeded++
		case job.StatusNoMotion:
			summary.NoMotion++
		default:
			summary.Failed++
		}
	}

	// Cleanup runs strictly after all jobs so directory emptiness is stable.
	summary.Pruned = PruneEmptyDirs(r.cfg.Paths.InputDir, logger)
	summary.Elapsed = time.Since(started)

	logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("no_motion", summary.NoMotion),
		logging.Int("failed", summary.Failed),
		logging.Int("pruned_dirs", summary.Pruned),
		logging.Duration("elapsed", summary.Elapsed))

	r.record(ctx, logger, started, summary)
	return summary, nil
}

// processAll fans candidates out to the pool and collects results in
// completion order.
func (r *Runner) processAll(ctx context.Context, logger *slog.Logger, candidates []Candidate) []job.Result {
	if len(candidates) == 0 {
		return nil
	}

	workers := r.cfg.Workers()
	if workers > len(candidates) {
		workers = len(candidates)
	}

	work := make(chan Candidate)
	results := make(chan job.Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for candidate := range work {
				results <- r.processor.Process(ctx, candidate.Source, candidate.OutputDir)
			}
		}()
	}

	go func() {
		for _, candidate := range candidates {
			work <- candidate
		}
		close(work)
		wg.Wait()
		close(results)
	}()

	collected := make([]job.Result, 0, len(candidates))
	for result := range results {
		collected = append(collected, result)
		logger.Info(fmt.Sprintf("[%d/%d] %s: %s", len(collected), len(candidates), result.Source, result.Label()),
			logging.Duration("elapsed", result.Elapsed))
	}
	return collected
}

func (r *Runner) record(ctx context.Context, logger *slog.Logger, started time.Time, summary Summary) {
	if r.recorder == nil {
		return
	}
	finished := started.Add(summary.Elapsed)
	run := ledger.Run{
		RunID:      summary.RunID,
		StartedAt:  started,
		FinishedAt: finished,
		InputRoot:  r.cfg.Paths.InputDir,
		OutputRoot: r.cfg.Paths.OutputDir,
		Total:      summary.Total,
		Succeeded:  summary.Succeeded,
		NoMotion:   summary.NoMotion,
		Failed:     summary.Failed,
	}
	files := make([]ledger.FileRecord, 0, len(summary.Results))
	for _, result := range summary.Results {
		files = append(files, ledger.FileRecord{
			SourcePath:    result.Source,
			OutputPath:    result.Output,
			Status:        result.Label(),
			Message:       result.Message,
			Intervals:     result.Intervals,
			VideoDuration: result.VideoDuration,
			Elapsed:       result.Elapsed,
			FinishedAt:    finished,
		})
	}
	if err := r.recorder.RecordRun(ctx, run, files); err != nil {
		// The audit trail is best effort; the batch outcome stands.
		logger.Warn("ledger write failed", logging.Error(err))
	}
}
