package nmr

// Result is the per-file outcome of a batch read. Exactly one of Spectrum
// and Err is set.
type Result struct {
	Path     string
	Spectrum *Spectrum
	Err      error
}

// ReadAll parses each file independently and never aborts the batch: a
// file that fails to parse contributes a Result with Err set while the
// remaining files are still processed. Results come back in input order,
// one per path.
func ReadAll(paths []string, win *Window) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		s, err := ReadFile(path, win)
		results = append(results, Result{Path: path, Spectrum: s, Err: err})
	}
	return results
}
