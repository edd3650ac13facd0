package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirCreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if !IsDir(dir) {
		t.Fatalf("expected %s to be a directory", dir)
	}
	// Idempotent.
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("ensure existing dir: %v", err)
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsDirEmpty(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !empty {
		t.Fatal("fresh temp dir should be empty")
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty, err = IsDirEmpty(dir)
	if err != nil {
		t.Fatal(err)
	}
	if empty {
		t.Fatal("dir with a file should not be empty")
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if PathExists(path) {
		t.Fatal("missing path reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !PathExists(path) {
		t.Fatal("existing path reported as missing")
	}
}

func TestFileNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	full := filepath.Join(dir, "full")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if FileNonEmpty(empty) {
		t.Fatal("empty file reported as non-empty")
	}
	if !FileNonEmpty(full) {
		t.Fatal("file with content reported as empty")
	}
	if FileNonEmpty(dir) {
		t.Fatal("directory reported as non-empty file")
	}
}
