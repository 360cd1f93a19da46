package nmr

import "fmt"

// ParseError is the single error kind at the parser boundary. It carries
// the display name of the offending file (base name, not the full path)
// and the underlying cause: an I/O failure, a malformed sample line, or
// missing header fields.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
