package batch

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"winnow/internal/fileutil"
	"winnow/internal/logging"
)

// PruneEmptyDirs removes now-empty directories under root, deepest first so a
// parent whose only children were just pruned goes too. The root itself is
// never removed. Per-directory failures are logged and do not stop the pass.
// Returns the number of directories removed.
func PruneEmptyDirs(root string, logger *slog.Logger) int {
	var dirs []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if logger != nil {
				logger.Warn("prune walk", logging.String("path", path), logging.Error(err))
			}
			return fs.SkipDir
		}
		if entry.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if walkErr != nil && logger != nil {
		logger.Warn("prune walk", logging.String("path", root), logging.Error(walkErr))
	}

	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) > strings.Count(dirs[j], string(filepath.Separator))
	})

	removed := 0
	for _, dir := range dirs {
		empty, err := fileutil.IsDirEmpty(dir)
		if err != nil {
			if logger != nil {
				logger.Warn("prune check", logging.String("path", dir), logging.Error(err))
			}
			continue
		}
		if !empty {
			continue
		}
		if err := os.Remove(dir); err != nil {
			if logger != nil {
				logger.Warn("prune remove", logging.String("path", dir), logging.Error(err))
			}
			continue
		}
		removed++
	}
	return removed
}
