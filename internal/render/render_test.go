package render

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adina012/multifid-1d-nmr-plot/internal/plotstyle"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/units"
	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testSpectra() []Labeled {
	return []Labeled{
		{Name: "a.txt", Spectrum: &nmr.Spectrum{
			X: []float64{10, 7.5, 5, 2.5, 0},
			Y: []float64{0, 1e5, 2e4, 1e5, 0},
		}},
		{Name: "b.txt", Spectrum: &nmr.Spectrum{
			X: []float64{10, 7.5, 5, 2.5, 0},
			Y: []float64{0, 5e4, 9e4, 3e4, 0},
		}},
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestOverlayPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "overlay.png")
	r := New(plotstyle.Preview())

	require.NoError(t, r.Overlay(testSpectra(), out))
	assertPNG(t, out)
}

func TestSingleFormats(t *testing.T) {
	r := New(plotstyle.Preview())
	sp := testSpectra()[0]

	for _, ext := range []string{".png", ".pdf", ".svg"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "single"+ext)
			require.NoError(t, r.Single(sp, out))

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestSingleUnsupportedFormat(t *testing.T) {
	r := New(plotstyle.Preview())
	err := r.Single(testSpectra()[0], filepath.Join(t.TempDir(), "single.bmp"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestStacked(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stacked.png")
	r := New(plotstyle.Preview())

	require.NoError(t, r.Stacked(testSpectra(), out))
	assertPNG(t, out)
}

func TestStackedRejectsNonPNG(t *testing.T) {
	r := New(plotstyle.Preview())
	err := r.Stacked(testSpectra(), filepath.Join(t.TempDir(), "stacked.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PNG only")
}

func TestEmptyInputRejected(t *testing.T) {
	r := New(plotstyle.Preview())
	assert.Error(t, r.Overlay(nil, filepath.Join(t.TempDir(), "x.png")))
	assert.Error(t, r.Stacked(nil, filepath.Join(t.TempDir(), "x.png")))
}

func TestSeriesPairsShortY(t *testing.T) {
	r := New(plotstyle.Preview())
	s := &nmr.Spectrum{X: []float64{3, 2, 1, 0}, Y: []float64{9, 8}}

	pts := r.series(s)
	require.Len(t, pts, 2)
	assert.Equal(t, 3.0, pts[0].X)
	assert.Equal(t, 9.0, pts[0].Y)
}

func TestSeriesHzAxis(t *testing.T) {
	r := New(plotstyle.Preview())
	r.Units = units.HZ
	r.FreqMHz = 400

	s := &nmr.Spectrum{X: []float64{1, 0}, Y: []float64{1, 2}}
	pts := r.series(s)
	require.Len(t, pts, 2)
	assert.InDelta(t, 400.0, pts[0].X, 1e-9)
}

func TestSciTicks(t *testing.T) {
	ticks := sciTicks{}.Ticks(0, 2e5)
	var sawSci bool
	for _, tk := range ticks {
		if tk.Label == "" {
			continue
		}
		if tk.Value >= 1e4 {
			assert.Contains(t, tk.Label, "e+", "tick %v should be scientific", tk.Value)
			sawSci = true
		}
	}
	assert.True(t, sawSci, "expected at least one scientific tick label")
}

func TestPalette(t *testing.T) {
	assert.Nil(t, palette(0))
	colors := palette(5)
	require.Len(t, colors, 5)
	seen := map[string]bool{}
	for _, c := range colors {
		r, g, b, _ := c.RGBA()
		key := fmt.Sprintf("%d-%d-%d", r, g, b)
		assert.False(t, seen[key], "palette colours should be distinct")
		seen[key] = true
	}
}
