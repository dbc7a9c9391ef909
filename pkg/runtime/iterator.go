package runtime

// NewStringIterator backs String.prototype[@@iterator]: a stateful
// object whose own `next()` walks the code-point sequence of s one
// rune at a time, returning {value, done} result objects per the
// iterator protocol. It hangs directly off ObjectPrototype rather
// than a dedicated %StringIteratorPrototype%, since nothing here
// needs to recognize "is this a string iterator" by prototype
// identity.
func NewStringIterator(vmi *VM, s string) Value {
	runes := []rune(s)
	pos := 0
	iter := NewPlainObject(vmi.ObjectPrototype)
	iter.SetOwnNonEnumerable("next", NewNativeFunction(vmi.FunctionPrototype, "next", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			result := NewPlainObject(vmi.ObjectPrototype)
			if pos >= len(runes) {
				result.SetOwn("value", Undefined)
				result.SetOwn("done", Bool(true))
				return newObjectValueFrom(result), nil
			}
			result.SetOwn("value", NewString(string(runes[pos])))
			result.SetOwn("done", Bool(false))
			pos++
			return newObjectValueFrom(result), nil
		}))
	iter.SetOwnNonEnumerableByKey(SymbolKey(vmi.Symbols.Iterator), NewNativeFunction(vmi.FunctionPrototype, "[Symbol.iterator]", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) { return this, nil }))
	return newObjectValueFrom(iter)
}
