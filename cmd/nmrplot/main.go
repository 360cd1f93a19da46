// Command nmrplot parses 1D NMR spectrum text files and renders them as
// line plots, an HTML report, or an HTTP-served archive.
//
// Usage:
//
//	nmrplot [flags] file1.txt file2.txt ...
//	nmrplot -archive spectra.db -serve
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Adina012/multifid-1d-nmr-plot/internal/archive"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/plotstyle"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/render"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/report"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/server"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/units"
	"github.com/Adina012/multifid-1d-nmr-plot/internal/version"
	"github.com/Adina012/multifid-1d-nmr-plot/nmr"
)

var (
	mode        = flag.String("mode", "multiple", "Plot layout: multiple (one figure), single (one figure per file), or stacked (one row per file)")
	quality     = flag.String("quality", "publication", "Quality preset: publication (300 DPI) or preview (100 DPI)")
	styleFile   = flag.String("style", "", "Optional JSON style overrides applied on top of the quality preset")
	zoom        = flag.Bool("zoom", false, "Only plot the -xmax/-xmin ppm window")
	xMax        = flag.Float64("xmax", 200, "Zoom window upper bound, high ppm (with -zoom)")
	xMin        = flag.Float64("xmin", -100, "Zoom window lower bound, low ppm (with -zoom)")
	outDir      = flag.String("out", ".", "Output directory for rendered figures")
	format      = flag.String("format", "png", "Image format: png, pdf, or svg")
	reportPath  = flag.String("report", "", "Write an HTML report to this path instead of image files")
	archivePath = flag.String("archive", "", "Record parsed spectra into this SQLite archive")
	serve       = flag.Bool("serve", false, "Serve the archive over HTTP instead of plotting (requires -archive)")
	listen      = flag.String("listen", ":8080", "Listen address for -serve")
	axisUnits   = flag.String("units", units.PPM, "X-axis units: ppm or hz")
	freqMHz     = flag.Float64("freq", 0, "Spectrometer frequency in MHz (required with -units hz)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("nmrplot %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *serve {
		if *archivePath == "" {
			log.Fatal("-serve requires -archive")
		}
		a, err := archive.Open(*archivePath)
		if err != nil {
			log.Fatalf("failed to open archive: %v", err)
		}
		defer a.Close()
		log.Fatal(server.New(a).ListenAndServe(*listen))
	}

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no input files; usage: nmrplot [flags] file1.txt file2.txt ...")
	}

	if !units.IsValid(*axisUnits) {
		log.Fatalf("invalid -units %q (valid: %s)", *axisUnits, units.GetValidUnitsString())
	}
	if *axisUnits == units.HZ && *freqMHz <= 0 {
		log.Fatal("-units hz requires a positive -freq in MHz")
	}

	style, err := plotstyle.ByName(*quality)
	if err != nil {
		log.Fatalf("invalid -quality: %v", err)
	}
	if *styleFile != "" {
		style, err = plotstyle.Load(*styleFile, style)
		if err != nil {
			log.Fatalf("failed to load style: %v", err)
		}
	}

	win := buildWindow(*zoom, *xMax, *xMin)

	// Per-file failures are warnings; the batch continues with whatever
	// parsed cleanly.
	var specs []render.Labeled
	for _, res := range nmr.ReadAll(files, win) {
		if res.Err != nil {
			log.Printf("Warning: %v", res.Err)
			continue
		}
		res.Spectrum.OrientDecreasing()
		specs = append(specs, render.Labeled{Name: filepath.Base(res.Path), Spectrum: res.Spectrum})
	}
	if len(specs) == 0 {
		log.Fatal("no spectra parsed successfully")
	}

	if *archivePath != "" {
		if err := recordAll(*archivePath, specs); err != nil {
			log.Fatalf("failed to archive spectra: %v", err)
		}
	}

	if *reportPath != "" {
		items := make([]report.Item, len(specs))
		for i, sp := range specs {
			items[i] = report.Item{Name: sp.Name, Spectrum: sp.Spectrum}
		}
		if err := report.WriteHTML(items, *reportPath); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		log.Printf("wrote report %s", *reportPath)
		return
	}

	r := render.New(style)
	r.Units = *axisUnits
	r.FreqMHz = *freqMHz

	if err := renderAll(r, *mode, specs, *outDir, *format); err != nil {
		log.Fatalf("failed to render: %v", err)
	}
}

// buildWindow returns the ppm filter, or nil when zooming is off.
func buildWindow(zoom bool, xMax, xMin float64) *nmr.Window {
	if !zoom {
		return nil
	}
	return &nmr.Window{Max: xMax, Min: xMin}
}

// recordAll stores every parsed spectrum in the archive.
func recordAll(path string, specs []render.Labeled) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, sp := range specs {
		id, err := a.Record(sp.Name, sp.Spectrum)
		if err != nil {
			return err
		}
		log.Printf("archived %s as %s", sp.Name, id)
	}
	return nil
}

// renderAll writes the figures for the chosen layout mode.
func renderAll(r *render.Renderer, mode string, specs []render.Labeled, outDir, format string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	switch mode {
	case "multiple":
		out := filepath.Join(outDir, "spectra."+format)
		if err := r.Overlay(specs, out); err != nil {
			return err
		}
		log.Printf("wrote %s", out)
	case "single":
		for _, sp := range specs {
			out := filepath.Join(outDir, outputName(sp.Name, format))
			if err := r.Single(sp, out); err != nil {
				return err
			}
			log.Printf("wrote %s", out)
		}
	case "stacked":
		out := filepath.Join(outDir, "spectra_stacked.png")
		if err := r.Stacked(specs, out); err != nil {
			return err
		}
		log.Printf("wrote %s", out)
	default:
		return fmt.Errorf("unknown -mode %q (valid: multiple, single, stacked)", mode)
	}
	return nil
}

// outputName swaps a source file's extension for the image format.
func outputName(name, format string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + format
}
