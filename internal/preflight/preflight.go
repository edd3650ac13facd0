package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"winnow/internal/config"
	"winnow/internal/deps"
)

// Check is one preflight verdict. Warning checks report but do not block.
type Check struct {
	Name    string
	OK      bool
	Warning bool
	Detail  string
}

// freeSpaceWarnBytes is the output-filesystem threshold below which a
// warning check fires.
const freeSpaceWarnBytes = 1 << 30

// Run evaluates every check against the configuration.
func Run(cfg *config.Config) []Check {
	checks := []Check{
		inputRootCheck(cfg.Paths.InputDir),
		outputRootCheck(cfg.Paths.OutputDir),
		stateDirCheck(cfg.Paths.StateDir),
		freeSpaceCheck(cfg.Paths.OutputDir),
	}
	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		check := Check{Name: status.Name, OK: status.Available, Detail: status.Command}
		if !status.Available {
			check.Detail = status.Detail
		}
		checks = append(checks, check)
	}
	return checks
}

// Passed reports whether all blocking checks succeeded.
func Passed(checks []Check) bool {
	for _, check := range checks {
		if !check.OK && !check.Warning {
			return false
		}
	}
	return true
}

func inputRootCheck(dir string) Check {
	check := Check{Name: "Input root"}
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		check.Detail = fmt.Sprintf("%s: %v", dir, err)
	case !info.IsDir():
		check.Detail = fmt.Sprintf("%s is not a directory", dir)
	case unix.Access(dir, unix.R_OK|unix.X_OK) != nil:
		check.Detail = fmt.Sprintf("%s is not readable", dir)
	default:
		check.OK = true
		check.Detail = dir
	}
	return check
}

func outputRootCheck(dir string) Check {
	check := Check{Name: "Output root"}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		check.Detail = fmt.Sprintf("create %s: %v", dir, err)
		return check
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		check.Detail = fmt.Sprintf("%s is not writable", dir)
		return check
	}
	check.OK = true
	check.Detail = dir
	return check
}

func stateDirCheck(dir string) Check {
	check := Check{Name: "State directory"}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		check.Detail = fmt.Sprintf("create %s: %v", dir, err)
		return check
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		check.Detail = fmt.Sprintf("%s is not writable", dir)
		return check
	}
	check.OK = true
	check.Detail = dir
	return check
}

func freeSpaceCheck(dir string) Check {
	check := Check{Name: "Output free space", Warning: true}
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		check.Detail = fmt.Sprintf("statfs %s: %v", dir, err)
		return check
	}
	free := stat.Bavail * uint64(stat.Bsize)
	check.Detail = fmt.Sprintf("%.1f GiB available", float64(free)/(1<<30))
	check.OK = free >= freeSpaceWarnBytes
	return check
}
