// Package render draws parsed spectra as line plots with NMR axis
// conventions: chemical shift on an inverted (decreasing left-to-right)
// x axis and intensity with scientific tick labels.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/Adina012/multifid-1d-nmr-plot/internal/plotstyle"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/units"
	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

// Labeled pairs a spectrum with its display name, usually the source
// file's base name.
type Labeled struct {
	Name     string
	Spectrum *nmr.Spectrum
}

// Renderer draws spectra using one immutable style. Units defaults to
// ppm; set Units to units.HZ together with the spectrometer frequency to
// get a Hz axis instead.
type Renderer struct {
	Style   plotstyle.Style
	Units   string
	FreqMHz float64
}

// New returns a Renderer with the given style and a ppm axis.
func New(style plotstyle.Style) *Renderer {
	return &Renderer{Style: style, Units: units.PPM}
}

// Overlay draws all spectra on a single figure with a legend of names.
func (r *Renderer) Overlay(specs []Labeled, path string) error {
	if len(specs) == 0 {
		return fmt.Errorf("no spectra to plot")
	}

	p := r.newPlot("NMR Spectra")
	colors := palette(len(specs))
	for i, sp := range specs {
		line, err := plotter.NewLine(r.series(sp.Spectrum))
		if err != nil {
			return fmt.Errorf("series for %s: %w", sp.Name, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(r.Style.LineWidth)
		p.Add(line)
		p.Legend.Add(sp.Name, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return r.save(p, path)
}

// Single draws one spectrum on its own figure, titled with its name.
func (r *Renderer) Single(sp Labeled, path string) error {
	p := r.newPlot(sp.Name)
	line, err := plotter.NewLine(r.series(sp.Spectrum))
	if err != nil {
		return fmt.Errorf("series for %s: %w", sp.Name, err)
	}
	line.Color = palette(1)[0]
	line.Width = vg.Points(r.Style.LineWidth)
	p.Add(line)

	return r.save(p, path)
}

// Stacked draws one row per spectrum with aligned x axes, so peaks in
// different spectra line up vertically. PNG only; the tiled canvas goes
// through vgimg.
func (r *Renderer) Stacked(specs []Labeled, path string) error {
	if len(specs) == 0 {
		return fmt.Errorf("no spectra to plot")
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("stacked mode renders PNG only, got %q", ext)
	}

	rows := len(specs)
	colors := palette(rows)
	plots := make([][]*plot.Plot, rows)
	for i, sp := range specs {
		p := r.newPlot(sp.Name)
		if i != rows-1 {
			// Shared x axis: only the bottom row keeps the label.
			p.X.Label.Text = ""
		}
		line, err := plotter.NewLine(r.series(sp.Spectrum))
		if err != nil {
			return fmt.Errorf("series for %s: %w", sp.Name, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(r.Style.LineWidth)
		p.Add(line)
		plots[i] = []*plot.Plot{p}
	}

	width := vg.Length(r.Style.FigWidthIn) * vg.Inch
	height := vg.Length(math.Max(r.Style.FigHeightIn, 2.5*float64(rows))) * vg.Inch

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(r.Style.DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: rows, Cols: 1, PadY: 2 * vg.Millimeter}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// newPlot creates a plot with the NMR axis conventions applied.
func (r *Renderer) newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = units.AxisLabel(r.Units)
	p.Y.Label.Text = "Intensity"

	// Chemical shift runs high-to-low across the figure.
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Tick.Marker = sciTicks{}

	fontSize := vg.Points(r.Style.FontSize)
	p.Title.TextStyle.Font.Size = fontSize + 2
	p.X.Label.TextStyle.Font.Size = fontSize
	p.Y.Label.TextStyle.Font.Size = fontSize
	p.X.Tick.Label.Font.Size = fontSize - 1
	p.Y.Tick.Label.Font.Size = fontSize - 1
	p.Legend.TextStyle.Font.Size = fontSize - 1

	axisWidth := vg.Points(r.Style.AxisWidth)
	p.X.LineStyle.Width = axisWidth
	p.Y.LineStyle.Width = axisWidth
	tickWidth := vg.Points(r.Style.TickMajorWidth)
	p.X.Tick.LineStyle.Width = tickWidth
	p.Y.Tick.LineStyle.Width = tickWidth

	return p
}

// series converts a spectrum into plot points, pairing only the indices
// that carry samples (Y can be shorter than X for truncated files).
func (r *Renderer) series(s *nmr.Spectrum) plotter.XYs {
	n := len(s.Y)
	if len(s.X) < n {
		n = len(s.X)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, plotter.XY{
			X: units.ConvertShift(s.X[i], r.Units, r.FreqMHz),
			Y: s.Y[i],
		})
	}
	return pts
}

// save writes the plot in the format implied by the file extension. PNG
// goes through vgimg so the style's DPI is honoured; PDF and SVG are
// resolution-independent and use plot.Save directly.
func (r *Renderer) save(p *plot.Plot, path string) error {
	width := vg.Length(r.Style.FigWidthIn) * vg.Inch
	height := vg.Length(r.Style.FigHeightIn) * vg.Inch

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(r.Style.DPI))
		dc := draw.New(img)
		p.Draw(dc)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		png := vgimg.PngCanvas{Canvas: img}
		if _, err := png.WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	case ".pdf", ".svg":
		if err := p.Save(width, height, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (valid: .png, .pdf, .svg)", ext)
	}
}

// sciTicks reformats large- and small-magnitude intensity ticks in
// scientific notation, matching the usual intensity scale of FID data.
type sciTicks struct{}

func (sciTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		if v := math.Abs(t.Value); v >= 1e4 || (v > 0 && v < 1e-3) {
			ticks[i].Label = strconv.FormatFloat(t.Value, 'e', 2, 64)
		}
	}
	return ticks
}
