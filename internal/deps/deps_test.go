package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"winnow/internal/config"
	"winnow/internal/deps"
)

func stubBinary(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
	return path
}

func TestCheckBinariesResolves(t *testing.T) {
	stubBinary(t, "ffmpeg-here")

	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "FFmpeg", Command: "ffmpeg-here"},
		{Name: "Missing", Command: "definitely-absent-binary"},
		{Name: "Blank", Command: "  "},
	})

	if len(statuses) != 3 {
		t.Fatalf("statuses = %d, want 3", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected ffmpeg-here to resolve: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected missing binary detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail: %+v", statuses[2])
	}
	if deps.AllAvailable(statuses) {
		t.Fatal("AllAvailable should be false with missing binaries")
	}
	if !deps.AllAvailable(statuses[:1]) {
		t.Fatal("AllAvailable should be true for resolved set")
	}
}

func TestRequirementsHonorConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Encoder.FFmpegBinary = "ffmpeg6"
	cfg.Encoder.FFprobeBinary = "ffprobe6"

	reqs := deps.Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("requirements = %d, want 2", len(reqs))
	}
	if reqs[0].Command != "ffmpeg6" || reqs[1].Command != "ffprobe6" {
		t.Fatalf("configured binaries not honored: %+v", reqs)
	}
}
