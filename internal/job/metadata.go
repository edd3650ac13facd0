package job

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Times carries the source file timestamps applied to the output.
type Times struct {
	Access   time.Time
	Modified time.Time
}

// CaptureTimes reads access and modification times from path.
func CaptureTimes(path string) (Times, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return Times{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Times{
		Access:   time.Unix(stat.Atim.Sec, stat.Atim.Nsec),
		Modified: time.Unix(stat.Mtim.Sec, stat.Mtim.Nsec),
	}, nil
}

// ApplyTimes writes the captured timestamps onto path.
func ApplyTimes(path string, times Times) error {
	if err := os.Chtimes(path, times.Access, times.Modified); err != nil {
		return fmt.Errorf("chtimes %s: %w", path, err)
	}
	return nil
}
