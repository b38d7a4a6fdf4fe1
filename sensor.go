package reactor

import "github.com/solidgraph/reactor/internal"

// SensorOption configures a new Sensor at construction.
type SensorOption[T any] func(*internal.SensorOptions)

func SensorWithEquals[T any](equals func(a, b T) bool) SensorOption[T] {
	return func(o *internal.SensorOptions) {
		o.Equals = func(a, b any) bool { return equals(as[T](a), as[T](b)) }
	}
}

// SensorWithInitial gives the Sensor a value to read before start ever
// fires — without it, reading an un-started Sensor returns ErrUnsetValue.
func SensorWithInitial[T any](initial T) SensorOption[T] {
	return func(o *internal.SensorOptions) {
		o.Initial = initial
		o.HasInitial = true
	}
}

// SensorAlwaysDirty makes every applied value propagate, even one equal
// to the last (equals = always-false) — for sources whose repeated
// identical deliveries are themselves meaningful events.
func SensorAlwaysDirty[T any]() SensorOption[T] {
	return func(o *internal.SensorOptions) { o.AlwaysDirty = true }
}

// Sensor is a lazy, externally-backed source: start runs on first sink
// attachment, its returned cleanup on last detachment.
type Sensor[T any] struct {
	n *internal.Node
}

func NewSensor[T any](start func(set func(T)) func(), opts ...SensorOption[T]) *Sensor[T] {
	var o internal.SensorOptions
	for _, opt := range opts {
		opt(&o)
	}
	n := internal.NewSensor(internal.CurrentReactor(), func(set func(any)) func() {
		return start(func(v T) { set(v) })
	}, o)
	return &Sensor[T]{n: n}
}

// Get returns the current value, or the zero value of T plus a non-nil
// error if start has not fired yet and no initial was configured.
func (s *Sensor[T]) Get() (T, error) {
	v, err := internal.SensorGet(s.n)
	return as[T](v), err
}
