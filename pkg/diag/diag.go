// Package diag carries recoverable user diagnostics from the backend to
// whatever location-aware error sink the front end supplies; the front
// end owns diagnostic location tracking, not this backend.
package diag

import (
	"fmt"
	"io"
)

// Loc is an opaque source location, supplied and interpreted by the
// front end; the backend only forwards it.
type Loc struct {
	File string
	Line int
	Col  int
}

func (l Loc) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Sink receives recoverable diagnostics and fatal-but-continue warnings
// emitted while lowering a translation unit.
type Sink interface {
	Errorf(loc Loc, format string, args ...any)
	Warnf(loc Loc, format string, args ...any)
}

// WriterSink is a Sink that formats diagnostics to an io.Writer, the
// same shape as a CLI's debug-dump writers.
type WriterSink struct {
	W        io.Writer
	ErrCount int
}

func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{W: w} }

func (s *WriterSink) Errorf(loc Loc, format string, args ...any) {
	s.ErrCount++
	fmt.Fprintf(s.W, "%s: error: %s\n", loc, fmt.Sprintf(format, args...))
}

func (s *WriterSink) Warnf(loc Loc, format string, args ...any) {
	fmt.Fprintf(s.W, "%s: warning: %s\n", loc, fmt.Sprintf(format, args...))
}
