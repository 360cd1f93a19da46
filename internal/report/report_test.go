package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

func testItems() []Item {
	return []Item{
		{Name: "ethanol.txt", Spectrum: &nmr.Spectrum{
			X: []float64{5, 4, 3, 2, 1},
			Y: []float64{0, 2e4, 1e3, 8e4, 0},
		}},
		{Name: "water.txt", Spectrum: &nmr.Spectrum{
			X: []float64{5, 4, 3, 2, 1},
			Y: []float64{0, 0, 9e4, 0, 0},
		}},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(testItems(), &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "ethanol.txt")
	assert.Contains(t, html, "water.txt")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Render(nil, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spectra")
}

func TestWriteHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(testItems(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "ethanol.txt"))
}

func TestPairedDecreasing(t *testing.T) {
	tests := []struct {
		name  string
		in    *nmr.Spectrum
		wantX []float64
		wantY []float64
	}{
		{
			"ascending gets flipped",
			&nmr.Spectrum{X: []float64{1, 2, 3}, Y: []float64{10, 20, 30}},
			[]float64{3, 2, 1},
			[]float64{30, 20, 10},
		},
		{
			"descending untouched",
			&nmr.Spectrum{X: []float64{3, 2, 1}, Y: []float64{30, 20, 10}},
			[]float64{3, 2, 1},
			[]float64{30, 20, 10},
		},
		{
			"short Y trims the pairing",
			&nmr.Spectrum{X: []float64{3, 2, 1}, Y: []float64{30, 20}},
			[]float64{3, 2},
			[]float64{30, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys := pairedDecreasing(tt.in)
			assert.Equal(t, tt.wantX, xs)
			assert.Equal(t, tt.wantY, ys)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "points=0", summary(nil, nil))

	got := summary([]float64{3, 2, 1}, []float64{30, 20, 10})
	assert.Contains(t, got, "points=3")
	assert.Contains(t, got, "span=[1.00, 3.00] ppm")
}

func TestPairedDecreasingDoesNotMutateInput(t *testing.T) {
	s := &nmr.Spectrum{X: []float64{1, 2, 3}, Y: []float64{10, 20, 30}}
	pairedDecreasing(s)
	assert.Equal(t, []float64{1, 2, 3}, s.X)
}
