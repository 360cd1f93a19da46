// Package testutil provides shared test helpers and spectrum-file
// fixtures used across packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to name inside a fresh temp directory and
// returns the full path. The file is removed with the test's temp dir.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// SpectrumFile renders a well-formed spectrum file with the given bounds,
// declared size and sample lines, and returns its path.
func SpectrumFile(t *testing.T, name string, left, right float64, size int, samples []float64) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "# LEFT = %gppm RIGHT = %gppm\n", left, right)
	fmt.Fprintf(&b, "# SIZE = %d\n", size)
	for _, s := range samples {
		fmt.Fprintf(&b, "%g\n", s)
	}
	return WriteFile(t, name, b.String())
}

// Seq returns the integers from lo to hi inclusive as float64s. Handy for
// synthetic intensity ramps.
func Seq(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, float64(i))
	}
	return out
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
