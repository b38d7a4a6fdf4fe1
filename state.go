package reactor

import "github.com/solidgraph/reactor/internal"

// as converts an any-typed internal value back to T at every facade
// boundary — nil comes back as the zero value of T rather than panicking
// on the type assertion.
func as[T any](v any) T {
	if v == nil || internal.IsUnset(v) {
		var zero T
		return zero
	}
	return v.(T)
}

// Unset returns the zero value of T: the engine's UNSET sentinel has no
// representation in T, so it comes back converted to T's zero value.
// Writing the result to a State is an ordinary write of that zero value;
// it does not clear the State's sinks. A Sensor read with no value yet
// reports ErrUnsetValue.
func Unset[T any]() T {
	return as[T](internal.Unset)
}

// StateOption configures a new State at construction.
type StateOption[T any] func(*internal.StateOptions)

// WithEquals overrides the default `==` comparison a State uses to
// decide whether a Set actually changed the value.
func WithEquals[T any](equals func(a, b T) bool) StateOption[T] {
	return func(o *internal.StateOptions) {
		o.Equals = func(a, b any) bool { return equals(as[T](a), as[T](b)) }
	}
}

// WithGuard rejects a Set/Update whose new value fails validation,
// leaving the State unchanged and returning the guard's error.
func WithGuard[T any](guard func(T) error) StateOption[T] {
	return func(o *internal.StateOptions) {
		o.Guard = func(v any) error { return guard(as[T](v)) }
	}
}

// State is a mutable source signal.
type State[T any] struct {
	n *internal.Node
}

// NewState creates a State seeded with initial. Panics if initial is nil
// or fails a configured guard — matching Go's own constructors that
// require a valid zero/initial value up front rather than deferring the
// failure to first read.
func NewState[T any](initial T, opts ...StateOption[T]) *State[T] {
	var o internal.StateOptions
	for _, opt := range opts {
		opt(&o)
	}
	n, err := internal.NewState(internal.CurrentReactor(), initial, o)
	if err != nil {
		panic(err)
	}
	return &State[T]{n: n}
}

func (s *State[T]) Get() T { return as[T](internal.StateGet(s.n)) }

// GetE reads the value alongside any captured error — meaningful when
// this State[T] handle actually wraps a derived Memo or Task node (as
// Collection.ByKey returns for a derived Collection); a plain State
// never sets an error, so GetE always returns a nil error for one.
func (s *State[T]) GetE() (T, error) {
	v, err := internal.ReadValue(s.n)
	return as[T](v), err
}

func (s *State[T]) Set(v T) error { return internal.StateSet(s.n, v) }

func (s *State[T]) Update(fn func(T) T) error {
	return internal.StateUpdate(s.n, func(v any) any { return fn(as[T](v)) })
}

// wrapState adapts an already-constructed internal node (a Store field,
// a List item) to the State[T] facade, without going through NewState's
// validation — the node already exists and is owned by its composite.
func wrapState[T any](n *internal.Node) *State[T] {
	return &State[T]{n: n}
}
