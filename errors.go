package instancer

import "fmt"

// ErrorKind classifies instantiation failures. All of them are
// non-recoverable at this layer; the kind tells a caller whether the
// whole document is unusable or just one instance.
type ErrorKind int

const (
	// KindConfig marks defects of the designspace document itself: no
	// resolvable default source, unsplit discrete axes, anisotropic
	// locations. Reported at construction time.
	KindConfig ErrorKind = iota
	// KindModel marks a variation model that could not be built from
	// its masters (degenerate locations, no default master).
	KindModel
	// KindInterpolation marks a glyph that failed to produce geometry
	// at one specific instance location, almost always due to
	// point-incompatible master outlines. Instance-specific.
	KindInterpolation
	// KindRule marks a substitution rule referencing missing glyphs.
	KindRule
)

// String returns a short tag for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindModel:
		return "model"
	case KindInterpolation:
		return "interpolation"
	case KindRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Error is the single error kind raised by this package. Glyph is set
// when the failure concerns one specific glyph.
type Error struct {
	Kind  ErrorKind
	Glyph string
	msg   string
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.msg)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		cause: cause,
	}
}
