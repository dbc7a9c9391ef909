package runtime

// NativeFn is the signature every native (Go-implemented) callable
// uses. `this` is the receiver bound at call time; a non-nil error is
// an in-flight exception the caller must propagate without further
// work.
type NativeFn func(vmi *VM, this Value, args []Value) (Value, error)

// NativeFunctionObject is a callable object backed by Go code: every
// prototype method and every constructor here is one of these. Base
// carries its own properties (statics like String.raw, or the
// "prototype" / "length" / "name" own properties every function
// exposes) and its [[Prototype]].
type NativeFunctionObject struct {
	Base     *PlainObject
	Name     string
	Length   int
	Variadic bool
	Fn       NativeFn
}

// NewNativeFunction allocates a callable native function value with
// the given declared `length` (arity) and name, installed as
// non-enumerable own properties per the ECMA-262 function object
// shape.
func NewNativeFunction(proto Value, name string, length int, variadic bool, fn NativeFn) Value {
	base := NewPlainObject(proto)
	nf := &NativeFunctionObject{Base: base, Name: name, Length: length, Variadic: variadic, Fn: fn}
	base.setSlot(StringKey("name"), NewString(name), false, false, true)
	base.setSlot(StringKey("length"), Number(float64(length)), false, false, true)
	return newNativeFunctionValue(nf)
}
