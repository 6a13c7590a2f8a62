package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testDoc is a minimal plain-text document with a header and one section.
const testDoc = `REP: 5
Title: Testing Guidelines
Author: Jane Doe <jane@example.com>
Status: Active
Requires: 3

Abstract

    See REP 3 for background.
`

// testIndex is the index document opened by --browse without arguments.
const testIndex = `REP: 0
Title: Index of REPs

Numerical Index

   I    5  Testing Guidelines  Doe
`

// testEnvironment returns an Environment writing to buffers, with a browser
// that records every opened URL.
type testEnvironment struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	opened  []string
	browser bool
}

func newTestEnv() *testEnvironment {
	te := &testEnvironment{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		browser: true,
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2011, time.March, 5, 0, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		OpenBrowser: func(url string) {
			te.opened = append(te.opened, url)
		},
		LookBrowser: func() (string, bool) {
			if te.browser {
				return "/usr/bin/chromium", true
			}
			return "", false
		},
	}
	return te
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// assertContains fails when got lacks any of want.
func assertContains(t *testing.T, label, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("%s should contain %q, got:\n%s", label, w, got)
		}
	}
}
