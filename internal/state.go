package internal

// unsetMarker is the UNSET sentinel: a value deliberately absent,
// distinct from any zero value a caller's own type might use.
type unsetMarker struct{}

// Unset is the canonical UNSET value.
var Unset any = unsetMarker{}

func IsUnset(v any) bool {
	_, ok := v.(unsetMarker)
	return ok
}

// StateOptions configures a new State node.
type StateOptions struct {
	Equals func(a, b any) bool
	Guard  func(any) error
}

// NewState creates a mutable source node.
func NewState(r *Reactor, initial any, opts StateOptions) (*node, error) {
	if initial == nil {
		return nil, &Error{Kind: ErrNullishValue, Message: "initial value must not be nil"}
	}
	if opts.Guard != nil {
		if err := opts.Guard(initial); err != nil {
			return nil, &Error{Kind: ErrInvalidValue, Message: err.Error(), Cause: err}
		}
	}

	n := newNode(r, KindState)
	n.value = initial
	if opts.Equals != nil {
		n.equals = opts.Equals
	}
	n.guard = opts.Guard
	return n, nil
}

// StateGet reads the current value, linking the active sink if present.
func StateGet(n *node) any {
	v, _ := readValue(n)
	return v
}

// StateSet validates, checks equality, writes, and propagates. Writing
// Unset still propagates the change to every current sink (so anything
// tracking n gets a chance to react to its source disappearing) and then
// detaches them all — a later read of n finds no lingering dependents
// left over from before the value went missing.
func StateSet(n *node, v any) error {
	if n.kind != KindState {
		return &Error{Kind: ErrReadonlySignal, Message: "cannot write to a derived signal"}
	}
	if v == nil {
		return &Error{Kind: ErrNullishValue, Message: "written value must not be nil (use Unset)"}
	}
	if n.guard != nil && !IsUnset(v) {
		if err := n.guard(v); err != nil {
			return &Error{Kind: ErrInvalidValue, Message: err.Error(), Cause: err}
		}
	}

	if !IsUnset(v) && n.equals(n.value, v) {
		return nil
	}

	n.value = v
	propagate(n)
	if IsUnset(v) {
		detachField(n)
	}
	n.reactor.schedule()
	return nil
}

// StateUpdate computes fn(current) and writes it back.
func StateUpdate(n *node, fn func(any) any) error {
	return StateSet(n, fn(n.value))
}
