// Package testkit holds helpers shared by package tests.
package testkit

import (
	"path/filepath"
	"runtime"
	"testing"
)

// RepoRoot returns the module root directory.
func RepoRoot(t testing.TB) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// internal/testkit/testkit.go -> repo root
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
}

// GoldenPath joins parts under testdata/golden.
func GoldenPath(t testing.TB, parts ...string) string {
	t.Helper()
	return filepath.Join(append([]string{RepoRoot(t), "testdata", "golden"}, parts...)...)
}
