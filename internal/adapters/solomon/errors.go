package solomon

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound marks a missing input file. It is reported apart from parse failures.
	ErrFileNotFound = errors.New("file not found")

	ErrFleetLine         = errors.New("missing or malformed fleet line")
	ErrNoRoutes          = errors.New("no routes found")
	ErrEmptyFinalSection = errors.New("final routes section has no vehicle lines")
)

// ParseError reports input that cannot be turned into an instance or a solution.
// Line is 1-based and zero when the failure is not tied to a single line.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
