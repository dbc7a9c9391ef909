package runtime

// JSError wraps the actual thrown ECMAScript Value (a real Error
// instance, not a Go sentinel) behind the Go `error` interface: the
// (Value, error) return convention is the exception channel, and any
// caller holding only the error interface can still recover the
// thrown value via AsJSError(err).Value().
type JSError struct {
	exception Value
}

func (e *JSError) Error() string {
	name, _ := e.exception.base().GetOwn("name")
	message, _ := e.exception.base().GetOwn("message")
	return name.AsStringValue() + ": " + message.AsStringValue()
}

// Value returns the thrown ECMA-262 value (an Error object, ordinarily).
func (e *JSError) Value() Value { return e.exception }

// AsJSError recovers the *JSError behind err, or nil if err is not
// one (e.g. a host-level failure with no script-visible exception).
func AsJSError(err error) *JSError {
	je, _ := err.(*JSError)
	return je
}

// newErrorValue builds a plain Error-shaped object: {name, message},
// prototyped off proto. Good enough for a core that does not implement
// a full Error constructor hierarchy; real embedders would call their
// own Error constructor here instead.
func newErrorValue(proto Value, name, message string) Value {
	o := NewPlainObject(proto)
	o.SetOwn("name", NewString(name))
	o.SetOwn("message", NewString(message))
	o.SetOwn("stack", NewString(name+": "+message))
	return newObjectValueFrom(o)
}

// NewTypeError constructs and returns a TypeError exception, wrapped
// so that propagating it is just `return runtime.Empty, vmi.NewTypeError(...)`.
func (vmi *VM) NewTypeError(message string) error {
	vmi.logf("raise TypeError: %s", message)
	return &JSError{exception: newErrorValue(vmi.TypeErrorPrototype, "TypeError", message)}
}

// NewRangeError is NewTypeError's RangeError counterpart.
func (vmi *VM) NewRangeError(message string) error {
	vmi.logf("raise RangeError: %s", message)
	return &JSError{exception: newErrorValue(vmi.RangeErrorPrototype, "RangeError", message)}
}
