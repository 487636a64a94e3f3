package gtfs

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderMismatch reports a source whose leading header columns are not the expected ones.
	ErrHeaderMismatch = errors.New("unexpected header")
	// ErrMalformedRow reports a row with fewer fields than the loader consumes.
	ErrMalformedRow = errors.New("malformed row")
	// ErrSourceNotFound reports a table that could not be located in a feed.
	ErrSourceNotFound = errors.New("source not found")
)

// LoadError is fatal: the store cannot be built from the named source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError describes a single row that could not be mapped to a record.
type ParseError struct {
	Source string
	Line   int
	Fields int
	Want   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: got %d fields, want at least %d", e.Source, e.Line, ErrMalformedRow, e.Fields, e.Want)
}

func (e *ParseError) Is(target error) bool { return target == ErrMalformedRow }
