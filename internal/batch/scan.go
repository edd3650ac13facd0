package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"winnow/internal/config"
)

// Candidate pairs a discovered source with its mirrored output directory.
type Candidate struct {
	Source    string
	OutputDir string
}

// Discover walks the input root and returns every file carrying a recognized
// video extension, paired with the output directory that mirrors its
// location. Results are sorted by source path for stable submission order.
func Discover(cfg *config.Config) ([]Candidate, error) {
	root := cfg.Paths.InputDir
	var candidates []Candidate

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !cfg.ExtensionAllowed(path) {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		candidates = append(candidates, Candidate{
			Source:    path,
			OutputDir: filepath.Join(cfg.Paths.OutputDir, rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Source < candidates[j].Source })
	return candidates, nil
}
