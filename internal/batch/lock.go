package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// AcquireLock takes the single-run lock non-blocking. Two concurrent batches
// over the same tree would race source deletion and directory pruning, so a
// held lock aborts the run. The returned release func is safe to call once.
func AcquireLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another winnow run holds %s", path)
	}
	return func() { _ = lock.Unlock() }, nil
}
