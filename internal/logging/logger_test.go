package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("scan complete", String(FieldComponent, "batch"), Int("files", 3), String("root", "/tmp/in dir"))

	line := buf.String()
	if !strings.Contains(line, "INFO batch: scan complete") {
		t.Fatalf("unexpected line %q", line)
	}
	if !strings.Contains(line, "files=3") {
		t.Fatalf("missing int attr in %q", line)
	}
	if !strings.Contains(line, `root="/tmp/in dir"`) {
		t.Fatalf("expected quoted value in %q", line)
	}
}

func TestConsoleHandlerCarriesWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl)).With(String("run_id", "abc"))

	logger.Warn("prune failed")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected inherited attr in %q", buf.String())
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Error("kept")
	if !strings.Contains(buf.String(), "ERROR") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&buf, lvl))

	ctx := WithRunID(context.Background(), "run-42")
	WithContext(ctx, base).Info("hello")

	if !strings.Contains(buf.String(), "run_id=run-42") {
		t.Fatalf("expected run id attr, got %q", buf.String())
	}
}
