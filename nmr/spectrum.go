// Package nmr parses one-dimensional NMR spectra stored in the plain-text
// convention used by Bruker-style exports:
//
//	# LEFT = 14.02 ppm. RIGHT = -2.31 ppm.
//	# SIZE = 65536
//	<one intensity per line>
//
// The parser reconstructs the chemical-shift axis from the LEFT/RIGHT
// bounds and the declared SIZE, optionally masks the spectrum to a ppm
// window, and returns paired coordinate/intensity slices ready for
// plotting. It is stateless; each call is independent and safe to run
// concurrently over different files.
package nmr

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Spectrum is one parsed 1D spectrum: chemical shift in ppm paired with
// intensity, index-aligned. Y can be shorter than X when the file carries
// fewer samples than its SIZE header declares (see ReadFile).
type Spectrum struct {
	X []float64 // chemical shift, ppm
	Y []float64 // intensity, arbitrary units
}

// Window restricts a spectrum to the inclusive ppm interval [Min, Max].
// Fields follow the high-to-low display convention: Max is the "from"
// bound (high ppm), Min is the "to" bound (low ppm). A reversed window
// (Max < Min) matches nothing and yields empty output, not an error.
type Window struct {
	Max float64
	Min float64
}

var (
	// First two signed decimals each followed by "ppm" on the "# LEFT"
	// line become the axis bounds.
	ppmBoundPattern = regexp.MustCompile(`([-+]?[0-9]*\.?[0-9]+)\s*ppm`)
	sizePattern     = regexp.MustCompile(`=\s*([0-9]+)`)
)

// ReadFile scans path once, line by line, and returns the spectrum it
// describes. Lines starting with "# LEFT" and "# SIZE" carry the header;
// the first qualifying occurrence of each wins and later ones are
// ignored. Every other non-blank line not starting with "#" must hold a
// single decimal intensity. Remaining "#" lines and blank lines are
// skipped.
//
// The coordinate axis is size evenly spaced values from left to right
// inclusive. Intensities are truncated to the first size samples; a file
// carrying fewer samples than its header declares yields a short Y
// without error, so callers that care should compare len(s.Y) against
// len(s.X).
//
// If win is non-nil the same positional mask keeps only the indices whose
// coordinate falls inside the window.
//
// All failures (unreadable file, malformed sample, missing header fields)
// come back as a *ParseError naming the file.
func ReadFile(path string, win *Window) (*Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{File: filepath.Base(path), Err: err}
	}
	defer f.Close()

	var (
		left, right *float64
		size        *int
		samples     []float64
	)

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := scan.Text()
		switch {
		case strings.HasPrefix(line, "# LEFT"):
			if left != nil {
				continue
			}
			m := ppmBoundPattern.FindAllStringSubmatch(line, 2)
			if len(m) < 2 {
				continue
			}
			l, errL := strconv.ParseFloat(m[0][1], 64)
			r, errR := strconv.ParseFloat(m[1][1], 64)
			if errL != nil || errR != nil {
				continue
			}
			left, right = &l, &r
		case strings.HasPrefix(line, "# SIZE"):
			if size != nil {
				continue
			}
			m := sizePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, &ParseError{File: filepath.Base(path), Err: fmt.Errorf("invalid SIZE value %q: %w", m[1], err)}
			}
			size = &n
		case strings.HasPrefix(line, "#"):
			// pass-through comment
		default:
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			v, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, &ParseError{File: filepath.Base(path), Err: fmt.Errorf("malformed sample line %q: %w", trimmed, err)}
			}
			samples = append(samples, v)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, &ParseError{File: filepath.Base(path), Err: err}
	}

	if missing := missingFields(left, right, size); len(missing) > 0 {
		return nil, &ParseError{
			File: filepath.Base(path),
			Err:  fmt.Errorf("missing header field(s): %s", strings.Join(missing, ", ")),
		}
	}

	y := samples
	if len(y) > *size {
		y = y[:*size]
	}

	s := &Spectrum{X: linspace(*left, *right, *size), Y: y}
	if win != nil {
		s.mask(*win)
	}
	return s, nil
}

// OrientDecreasing flips both sequences in place so that ppm decreases
// with index, the conventional NMR display order. Spectra already in
// decreasing order are left untouched.
func (s *Spectrum) OrientDecreasing() {
	if len(s.X) < 2 || s.X[0] >= s.X[len(s.X)-1] {
		return
	}
	floats.Reverse(s.X)
	floats.Reverse(s.Y)
}

// mask keeps only the positions whose coordinate lies inside win. X and Y
// are filtered by the same positional mask so their pairing survives.
func (s *Spectrum) mask(win Window) {
	xs := s.X[:0]
	ys := s.Y[:0]
	for i, x := range s.X {
		if x < win.Min || x > win.Max {
			continue
		}
		xs = append(xs, x)
		if i < len(s.Y) {
			ys = append(ys, s.Y[i])
		}
	}
	s.X = xs
	s.Y = ys
}

// linspace returns n evenly spaced values from lo to hi inclusive. The
// endpoints are exact: x[0] == lo and x[n-1] == hi. With n == 1 only lo
// is representable.
func linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{lo}
	}
	x := floats.Span(make([]float64, n), lo, hi)
	// Pin the upper endpoint: the interpolated last element can be off
	// by an ulp.
	x[n-1] = hi
	return x
}

func missingFields(left, right *float64, size *int) []string {
	var missing []string
	if left == nil {
		missing = append(missing, "LEFT")
	}
	if right == nil {
		missing = append(missing, "RIGHT")
	}
	if size == nil {
		missing = append(missing, "SIZE")
	}
	return missing
}
