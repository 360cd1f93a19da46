package nmr_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Adina012/multifid-1d-nmr-plot/internal/testutil"
	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

func TestReadAll_ContinuesPastFailures(t *testing.T) {
	good := testutil.SpectrumFile(t, "good.txt", 0, 10, 11, testutil.Seq(0, 10))
	broken := testutil.WriteFile(t, "broken.txt", "# SIZE = 2\n1.0\n2.0\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	results := nmr.ReadAll([]string{good, broken, missing}, nil)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("good file: unexpected error %v", results[0].Err)
	}
	if results[0].Spectrum == nil {
		t.Error("good file: nil spectrum")
	}
	for i, r := range results[1:] {
		if r.Err == nil {
			t.Errorf("result %d: expected error, got nil", i+1)
		}
		if r.Spectrum != nil {
			t.Errorf("result %d: got partial spectrum alongside error", i+1)
		}
	}
	if results[2].Path != missing {
		t.Errorf("Path = %q, want %q", results[2].Path, missing)
	}
}

func TestReadAll_WindowAppliedToEveryFile(t *testing.T) {
	a := testutil.SpectrumFile(t, "a.txt", 0, 10, 11, testutil.Seq(0, 10))
	b := testutil.SpectrumFile(t, "b.txt", 0, 10, 11, testutil.Seq(10, 20))

	results := nmr.ReadAll([]string{a, b}, &nmr.Window{Max: 8, Min: 2})

	wantX := testutil.Seq(2, 8)
	for i, r := range results {
		testutil.AssertNoError(t, r.Err)
		if diff := cmp.Diff(wantX, r.Spectrum.X, approx...); diff != "" {
			t.Errorf("result %d X mismatch (-want +got):\n%s", i, diff)
		}
		if len(r.Spectrum.X) != len(r.Spectrum.Y) {
			t.Errorf("result %d: len(X) = %d, len(Y) = %d", i, len(r.Spectrum.X), len(r.Spectrum.Y))
		}
	}
}

func TestReadAll_Empty(t *testing.T) {
	if got := nmr.ReadAll(nil, nil); len(got) != 0 {
		t.Errorf("got %d results for empty input, want 0", len(got))
	}
}

func TestWindow_ShortSampleBlock(t *testing.T) {
	// The positional mask must not read past the short Y slice.
	path := testutil.SpectrumFile(t, "short.txt", 0, 9, 10, testutil.Seq(0, 6))

	s, err := nmr.ReadFile(path, &nmr.Window{Max: 9, Min: 5})
	testutil.AssertNoError(t, err)

	if diff := cmp.Diff(testutil.Seq(5, 9), s.X, approx...); diff != "" {
		t.Errorf("X mismatch (-want +got):\n%s", diff)
	}
	// Only indices 5 and 6 carry samples.
	if diff := cmp.Diff(testutil.Seq(5, 6), s.Y, approx...); diff != "" {
		t.Errorf("Y mismatch (-want +got):\n%s", diff)
	}
}
