package runtime

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// VM is the realm every native method call is bound to: it owns the
// installed prototypes and the well-known symbols, and is the one
// piece of shared state a call touches beyond its own arguments.
//
// There is no separate pending-exception field: the (Value, error)
// return convention is the exception channel (see exceptions.go).
type VM struct {
	ObjectPrototype     Value
	FunctionPrototype   Value
	StringPrototype     Value
	ArrayPrototype      Value
	RegExpPrototype     Value
	ErrorPrototype      Value
	TypeErrorPrototype  Value
	RangeErrorPrototype Value

	StringConstructor Value

	Symbols WellKnownSymbols

	// Log is diagnostic only (exception raises, well-known-symbol
	// dispatch decisions); it never affects control flow. Silent
	// unless an embedder opts in via WithLogger.
	Log *logrus.Logger
}

// Option configures a VM at construction time; options are applied
// before NewVM wires the prototype graph.
type Option func(*VM)

// WithLogger overrides the default discard-everything logger.
func WithLogger(l *logrus.Logger) Option {
	return func(v *VM) { v.Log = l }
}

// NewVM allocates a fresh realm: the Object/Function/String/Array/
// RegExp/Error prototype chain and the well-known symbols, in
// dependency order (String.prototype's own [[Prototype]] is
// Object.prototype; String methods need the regexp and error
// prototypes installed before they can raise or delegate).
func NewVM(opts ...Option) *VM {
	v := &VM{Log: discardLogger()}
	for _, opt := range opts {
		opt(v)
	}

	v.ObjectPrototype = NewObject(Null)
	v.FunctionPrototype = NewObject(v.ObjectPrototype)
	v.ArrayPrototype = NewObject(v.ObjectPrototype)
	v.RegExpPrototype = NewObject(v.ObjectPrototype)
	v.ErrorPrototype = NewObject(v.ObjectPrototype)
	v.TypeErrorPrototype = NewObject(v.ErrorPrototype)
	v.RangeErrorPrototype = NewObject(v.ErrorPrototype)
	v.StringPrototype = NewObject(v.ObjectPrototype)

	v.Symbols = newWellKnownSymbols()

	installObjectPrototype(v)
	installFunctionPrototype(v)
	installRegExpPrototype(v)

	v.Log.Debug("realm initialized: prototype chain installed")
	return v
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel) // effectively silent unless WithLogger overrides
	return l
}

func (vmi *VM) logf(format string, args ...interface{}) {
	vmi.Log.Debug(fmt.Sprintf(format, args...))
}

// Call invokes a callable Value with a bound `this` and argument
// list, propagating a non-callable error the same way any other
// native method would.
func (vmi *VM) Call(fn Value, this Value, args []Value) (Value, error) {
	nf := fn.AsNativeFunction()
	if nf == nil {
		return Empty, vmi.NewTypeError(fmt.Sprintf("%s is not a function", fn.String()))
	}
	return nf.Fn(vmi, this, args)
}

// GetMethod is the ECMA-262 abstract operation: Get(object, key) then
// classify. Undefined/Null resolves to "no method"; a non-callable
// resolved value is a TypeError; otherwise the callable is returned
// for the caller to Call.
func (vmi *VM) GetMethod(object Value, key PropertyKey) (Value, error) {
	v, err := vmi.GetProperty(object, key)
	if err != nil {
		return Empty, err
	}
	if v.IsNullish() {
		return Undefined, nil
	}
	if !v.IsCallable() {
		return Empty, vmi.NewTypeError(fmt.Sprintf("%s is not a function", key.String()))
	}
	return v, nil
}

// GetProperty is the ordinary [[Get]] with receiver == object: walk
// own properties then the prototype chain, invoking an accessor's
// getter (bound to `object`) when the resolved descriptor is one.
// Returns Undefined, nil on a miss anywhere in the chain.
func (vmi *VM) GetProperty(object Value, key PropertyKey) (Value, error) {
	cur := object
	for {
		if v, ok := exoticOwnProperty(cur, key); ok {
			return v, nil
		}
		base := cur.base()
		if base == nil {
			return Undefined, nil
		}
		if desc, ok := base.GetOwnDescriptor(key); ok {
			if desc.IsAccessor {
				if desc.Get.IsUndefined() {
					return Undefined, nil
				}
				return vmi.Call(desc.Get, object, nil)
			}
			return desc.Value, nil
		}
		proto := base.Prototype()
		if proto.IsNullish() {
			return Undefined, nil
		}
		cur = proto
	}
}
