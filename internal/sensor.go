package internal

// Sensor is a lazy, externally-backed source: its start callback runs
// the moment the first sink attaches, and the cleanup it returns runs
// the moment the last sink detaches (observed by unlink in edge.go).
// Reading a Sensor with no value and no initial raises UnsetValue.

type SensorOptions struct {
	Equals       func(a, b any) bool
	Initial      any // used only when HasInitial is set
	HasInitial   bool
	AlwaysDirty  bool // equals = always-false: set(sameRef) still propagates
}

func NewSensor(r *Reactor, start func(set func(any)) func(), opts SensorOptions) *node {
	n := newNode(r, KindSensor)
	n.start = start
	if opts.AlwaysDirty {
		n.equals = func(a, b any) bool { return false }
	} else if opts.Equals != nil {
		n.equals = opts.Equals
	}
	if opts.HasInitial {
		n.value = opts.Initial
	} else {
		n.value = Unset
	}
	return n
}

// ensureStarted invokes a Sensor's (or externally-driven Collection's)
// start callback on first sink attachment, and again on the first
// attachment after every prior attach cycle's last sink detached (unlink
// resets started once stop has run).
func ensureStarted(n *node) {
	if n.started || n.start == nil {
		return
	}
	n.started = true
	n.stop = n.start(func(v any) {
		if n.onStartValue != nil {
			n.onStartValue(v)
			return
		}
		sensorApply(n, v)
	})
}

func sensorApply(n *node, v any) {
	if v == nil {
		return
	}
	if !IsUnset(v) && n.equals(n.value, v) {
		return
	}
	n.value = v
	propagate(n)
	n.reactor.schedule()
}

// SensorGet reads the current value, raising UnsetValue if nothing has
// ever been produced and no initial was configured.
func SensorGet(n *node) (any, error) {
	v, _ := readValue(n)
	if IsUnset(v) {
		return nil, &Error{Kind: ErrUnsetValue, Message: "sensor has no value yet"}
	}
	return v, nil
}
