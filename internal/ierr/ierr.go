// Package ierr implements the backend's error taxonomy: a recoverable
// user diagnostic, a fatal unsupported-feature error, and a fatal
// internal-invariant-violation error. Only the first is ever reported
// and survived; the other two abort the translation unit.
package ierr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrUnsupported is the sentinel wrapped by every "feature not
// implemented" fatal error: long double, va_arg of aggregate type, or
// an expression kind the lowerer does not recognize.
var ErrUnsupported = xerrors.New("unsupported feature")

// ErrInternal is the sentinel wrapped by every invariant-violation fatal
// error: an unknown conversion pair, an unknown opcode, a type with no
// SSA class when one is demanded, or an invalid alignment reaching the
// alloca dispatcher.
var ErrInternal = xerrors.New("internal invariant violation")

// Unsupported builds a fatal unsupported-feature error carrying the
// caller's frame, so a panic recovered at the process boundary can still
// report where the lowerer gave up.
func Unsupported(format string, args ...any) error {
	return xerrors.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnsupported)
}

// Internal builds a fatal internal-invariant error in the same shape.
func Internal(format string, args ...any) error {
	return xerrors.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInternal)
}

// UserDiagnostic is a recoverable, location-less error (location tracking
// is an external collaborator's responsibility; the diag package
// attaches a Loc when the front end supplies one). It is reported
// through a diag.Sink and lowering continues.
type UserDiagnostic struct {
	Msg string
}

func (e *UserDiagnostic) Error() string { return e.Msg }

// NewUserDiagnostic constructs a recoverable diagnostic error.
func NewUserDiagnostic(format string, args ...any) *UserDiagnostic {
	return &UserDiagnostic{Msg: fmt.Sprintf(format, args...)}
}
