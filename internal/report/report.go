// Package report renders parsed spectra as an interactive HTML page of
// echarts line charts, one chart per spectrum, with per-spectrum summary
// statistics. It is the lightweight alternative to the static image
// renderer when spectra need to be inspected in a browser.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

// Item pairs a spectrum with its display name.
type Item struct {
	Name     string
	Spectrum *nmr.Spectrum
}

// Chart builds one line chart for a spectrum. The x axis is a category
// axis fed in decreasing-ppm order, which gives the conventional NMR
// orientation without relying on axis inversion support.
func Chart(item Item) *charts.Line {
	xs, ys := pairedDecreasing(item.Spectrum)

	xLabels := make([]string, 0, len(xs))
	data := make([]opts.LineData, 0, len(ys))
	for i := range xs {
		xLabels = append(xLabels, strconv.FormatFloat(xs[i], 'f', 3, 64))
		data = append(data, opts.LineData{Value: ys[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "NMR Spectra",
			Theme:     "dark",
			Width:     "1000px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: item.Name, Subtitle: summary(xs, ys)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "ppm"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity"}),
	)
	line.SetXAxis(xLabels).AddSeries(item.Name, data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	return line
}

// WriteHTML writes one page containing a chart per spectrum.
func WriteHTML(items []Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Render(items, f)
}

// Render writes the report page to w.
func Render(items []Item, w io.Writer) error {
	if len(items) == 0 {
		return fmt.Errorf("no spectra to report")
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	for _, item := range items {
		page.AddCharts(Chart(item))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// pairedDecreasing returns index-aligned copies of X and Y, trimmed to
// their common length and flipped to decreasing ppm if needed.
func pairedDecreasing(s *nmr.Spectrum) ([]float64, []float64) {
	n := len(s.Y)
	if len(s.X) < n {
		n = len(s.X)
	}
	xs := append([]float64(nil), s.X[:n]...)
	ys := append([]float64(nil), s.Y[:n]...)
	if n >= 2 && xs[0] < xs[n-1] {
		floats.Reverse(xs)
		floats.Reverse(ys)
	}
	return xs, ys
}

// summary describes a spectrum for the chart subtitle.
func summary(xs, ys []float64) string {
	if len(ys) == 0 {
		return "points=0"
	}
	return fmt.Sprintf("points=%d span=[%.2f, %.2f] ppm max=%.4g mean=%.4g",
		len(ys), floats.Min(xs), floats.Max(xs), floats.Max(ys), stat.Mean(ys, nil))
}
