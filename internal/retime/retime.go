package retime

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"winnow/internal/logging"
	"winnow/internal/services"
)

// stampPattern matches the camera naming convention anywhere in a filename:
// an 8-digit date, a 6-digit time, then the capture moment as Unix seconds.
var stampPattern = regexp.MustCompile(`\d{8}-\d{6}-(\d+)`)

// ParseStamp extracts the Unix timestamp embedded in a stamped filename.
func ParseStamp(name string) (time.Time, error) {
	match := stampPattern.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, fmt.Errorf("no date-time stamp in %q", name)
	}
	seconds, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp overflows in %q", name)
	}
	stamp := time.Unix(seconds, 0)
	if stamp.Year() < 1980 || stamp.Year() > 9999 {
		return time.Time{}, fmt.Errorf("timestamp %d out of range in %q", seconds, name)
	}
	return stamp, nil
}

// Summary counts what a Restore pass did.
type Summary struct {
	Updated int
	Skipped int
}

// Restore walks dir and sets atime = mtime = the parsed stamp for every
// regular file whose name carries one. Files without a parseable stamp are
// skipped with a log line, never treated as errors. With dryRun the walk
// reports what it would change without touching anything.
func Restore(dir string, dryRun bool, logger *slog.Logger) (Summary, error) {
	logger = logging.NewComponentLogger(logger, "retime")

	var summary Summary
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		stamp, parseErr := ParseStamp(entry.Name())
		if parseErr != nil {
			summary.Skipped++
			logger.Info("skipping file", logging.String("file", entry.Name()), logging.String("reason", parseErr.Error()))
			return nil
		}

		if dryRun {
			summary.Updated++
			logger.Info("would restore timestamp",
				logging.String("file", entry.Name()),
				logging.String("stamp", stamp.Format(time.RFC3339)))
			return nil
		}
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			return services.Wrap(services.ErrMetadata, "retime", "chtimes", path, err)
		}
		summary.Updated++
		logger.Info("restored timestamp",
			logging.String("file", entry.Name()),
			logging.String("stamp", stamp.Format(time.RFC3339)))
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("restore timestamps under %s: %w", dir, err)
	}
	return summary, nil
}
