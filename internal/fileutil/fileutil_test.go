package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"knarchief/internal/fileutil"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !fileutil.Exists(file) {
		t.Fatal("expected file to exist")
	}
	if fileutil.Exists(filepath.Join(dir, "missing.txt")) {
		t.Fatal("missing file reported as existing")
	}
	if fileutil.Exists(dir) {
		t.Fatal("directory should not count as a regular file")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected copy contents %q", data)
	}
}
