package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "rep-0001.rst")
	if err := os.WriteFile(file, []byte("REP: 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	if !DirExists(dir) || DirExists(file) {
		t.Error("DirExists() should report directories only")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"5", false},
		{"rep", false},
		{"rep-0005.rst", false},
		{"./rep-0005.rst", true},
		{"docs/rep-0005.rst", true},
		{`docs\rep-0005.rst`, true},
		{"/abs/rep.rst", true},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"rep-0005.rst", "rep-0005.html"},
		{"docs/rep-0005.txt", "docs/rep-0005.html"},
		{"noext", "noext.html"},
		{"dir.d/file", "dir.d/file.html"},
	}

	for _, tt := range tests {
		if got := ReplaceExt(tt.path, ".html"); got != tt.want {
			t.Errorf("ReplaceExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")

	if err := WriteFileAtomic(path, []byte("first"), 0o664); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o664); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error: %v", err)
		}
		if info.Mode().Perm() != 0o664 {
			t.Errorf("mode = %v, want 0664", info.Mode().Perm())
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.html")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Error("WriteFileAtomic() expected error for missing directory")
	}
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.css")
	if err := os.WriteFile(src, []byte("body{}"), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	dst := filepath.Join(dir, "site", "css", "rep.css")
	if err := CopyFile(src, dst, 0o644); err != nil {
		t.Fatalf("CopyFile() unexpected error: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != "body{}" {
		t.Errorf("copied content = %q, %v", got, err)
	}

	err = CopyFile(filepath.Join(dir, "nope"), dst, 0o644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("CopyFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}
