package reactor

import "github.com/solidgraph/reactor/internal"

// ErrorKind is the stable taxonomy assigned to every failure the
// runtime raises, for errors.As/Is-style dispatch at call sites.
type ErrorKind = internal.ErrorKind

const (
	ErrNullishValue       = internal.ErrNullishValue
	ErrInvalidValue       = internal.ErrInvalidValue
	ErrInvalidCallback    = internal.ErrInvalidCallback
	ErrUnsetValue         = internal.ErrUnsetValue
	ErrCircularDependency = internal.ErrCircularDependency
	ErrReadonlySignal     = internal.ErrReadonlySignal
	ErrDuplicateKey       = internal.ErrDuplicateKey
	ErrForbiddenMethod    = internal.ErrForbiddenMethod
	ErrAbort              = internal.ErrAbort
	ErrPanic              = internal.ErrPanic
	ErrUnstableGraph      = internal.ErrUnstableGraph
)

// Error is the concrete error type every boundary in this package
// returns or captures; its Kind field is one of the constants above.
type Error = internal.Error
