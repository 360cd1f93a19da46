// Package plotstyle defines immutable rendering quality presets. Instead
// of mutating global plot state, callers pick (or load) a Style value and
// hand it to the renderer.
package plotstyle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Style is one rendering quality configuration. Widths and font size are
// in printer's points, figure dimensions in inches.
type Style struct {
	DPI            int     `json:"dpi"`
	FontSize       float64 `json:"font_size"`
	LineWidth      float64 `json:"line_width"`
	AxisWidth      float64 `json:"axis_width"`
	TickMajorWidth float64 `json:"tick_major_width"`
	TickMinorWidth float64 `json:"tick_minor_width"`
	FigWidthIn     float64 `json:"fig_width_in"`
	FigHeightIn    float64 `json:"fig_height_in"`
}

// Publication returns the 300 DPI preset used for figures headed to a
// manuscript.
func Publication() Style {
	return Style{
		DPI:            300,
		FontSize:       10,
		LineWidth:      1.0,
		AxisWidth:      1.0,
		TickMajorWidth: 0.8,
		TickMinorWidth: 0.5,
		FigWidthIn:     10,
		FigHeightIn:    6,
	}
}

// Preview returns the lighter 100 DPI preset for quick on-screen checks.
func Preview() Style {
	return Style{
		DPI:            100,
		FontSize:       9,
		LineWidth:      0.8,
		AxisWidth:      0.8,
		TickMajorWidth: 0.6,
		TickMinorWidth: 0.4,
		FigWidthIn:     10,
		FigHeightIn:    6,
	}
}

// ByName maps the CLI quality names to presets.
func ByName(name string) (Style, error) {
	switch name {
	case "publication":
		return Publication(), nil
	case "preview":
		return Preview(), nil
	default:
		return Style{}, fmt.Errorf("unknown quality %q (valid: publication, preview)", name)
	}
}

// Overrides mirrors Style with optional fields so a JSON file can adjust
// just the values it cares about. Fields omitted from the file keep the
// base preset's values, so partial configs are safe.
type Overrides struct {
	DPI            *int     `json:"dpi,omitempty"`
	FontSize       *float64 `json:"font_size,omitempty"`
	LineWidth      *float64 `json:"line_width,omitempty"`
	AxisWidth      *float64 `json:"axis_width,omitempty"`
	TickMajorWidth *float64 `json:"tick_major_width,omitempty"`
	TickMinorWidth *float64 `json:"tick_minor_width,omitempty"`
	FigWidthIn     *float64 `json:"fig_width_in,omitempty"`
	FigHeightIn    *float64 `json:"fig_height_in,omitempty"`
}

// maxStyleFileSize caps config reads; style files are tiny.
const maxStyleFileSize = 1 * 1024 * 1024

// Load reads a JSON overrides file and applies it on top of base.
func Load(path string, base Style) (Style, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Style{}, fmt.Errorf("style file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Style{}, fmt.Errorf("failed to stat style file: %w", err)
	}
	if fileInfo.Size() > maxStyleFileSize {
		return Style{}, fmt.Errorf("style file too large: %d bytes (max %d)", fileInfo.Size(), maxStyleFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Style{}, fmt.Errorf("failed to read style file: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return Style{}, fmt.Errorf("failed to parse style file: %w", err)
	}

	s := o.apply(base)
	if err := s.validate(); err != nil {
		return Style{}, fmt.Errorf("invalid style in %s: %w", cleanPath, err)
	}
	return s, nil
}

func (o Overrides) apply(base Style) Style {
	s := base
	if o.DPI != nil {
		s.DPI = *o.DPI
	}
	if o.FontSize != nil {
		s.FontSize = *o.FontSize
	}
	if o.LineWidth != nil {
		s.LineWidth = *o.LineWidth
	}
	if o.AxisWidth != nil {
		s.AxisWidth = *o.AxisWidth
	}
	if o.TickMajorWidth != nil {
		s.TickMajorWidth = *o.TickMajorWidth
	}
	if o.TickMinorWidth != nil {
		s.TickMinorWidth = *o.TickMinorWidth
	}
	if o.FigWidthIn != nil {
		s.FigWidthIn = *o.FigWidthIn
	}
	if o.FigHeightIn != nil {
		s.FigHeightIn = *o.FigHeightIn
	}
	return s
}

func (s Style) validate() error {
	if s.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", s.DPI)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %g", s.FontSize)
	}
	if s.LineWidth <= 0 {
		return fmt.Errorf("line_width must be positive, got %g", s.LineWidth)
	}
	if s.FigWidthIn <= 0 || s.FigHeightIn <= 0 {
		return fmt.Errorf("figure dimensions must be positive, got %gx%g", s.FigWidthIn, s.FigHeightIn)
	}
	return nil
}
