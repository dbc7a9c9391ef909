package runtime

// installObjectPrototype wires the minimal Object.prototype surface:
// String.prototype inherits from it, and ToPrimitive's
// valueOf/toString fallback walk resolves through it for plain
// objects. Installed first inside NewVM, before any prototype that
// inherits from it.
func installObjectPrototype(v *VM) {
	proto := v.ObjectPrototype.AsPlainObject()

	proto.SetOwnNonEnumerable("hasOwnProperty", NewNativeFunction(v.FunctionPrototype, "hasOwnProperty", 1, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			name := argOr(args, 0, Undefined)
			s, err := ToString(vmi, name)
			if err != nil {
				return Empty, err
			}
			base := this.base()
			if base == nil {
				return Bool(false), nil
			}
			return Bool(base.HasOwn(StringKey(s))), nil
		}))

	proto.SetOwnNonEnumerable("toString", NewNativeFunction(v.FunctionPrototype, "toString", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			return NewString(this.String()), nil
		}))

	proto.SetOwnNonEnumerable("valueOf", NewNativeFunction(v.FunctionPrototype, "valueOf", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			return this, nil
		}))

	proto.SetOwnNonEnumerable("isPrototypeOf", NewNativeFunction(v.FunctionPrototype, "isPrototypeOf", 1, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			candidate := argOr(args, 0, Undefined)
			if !candidate.IsObject() {
				return Bool(false), nil
			}
			base := candidate.base()
			for base != nil {
				proto := base.Prototype()
				if proto.IsNullish() {
					return Bool(false), nil
				}
				if proto.base() == this.base() {
					return Bool(true), nil
				}
				base = proto.base()
			}
			return Bool(false), nil
		}))

	proto.SetOwnNonEnumerable("propertyIsEnumerable", NewNativeFunction(v.FunctionPrototype, "propertyIsEnumerable", 1, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			name := argOr(args, 0, Undefined)
			s, err := ToString(vmi, name)
			if err != nil {
				return Empty, err
			}
			base := this.base()
			if base == nil {
				return Bool(false), nil
			}
			desc, ok := base.GetOwnDescriptor(StringKey(s))
			return Bool(ok && desc.Enumerable), nil
		}))
}

// installFunctionPrototype wires call/apply/bind, exercised by
// replace's callable replaceValue argument and by callers that bind a
// method off String.prototype onto another receiver.
func installFunctionPrototype(v *VM) {
	proto := v.FunctionPrototype.AsPlainObject()

	proto.SetOwnNonEnumerable("call", NewNativeFunction(v.FunctionPrototype, "call", 1, true,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			if !this.IsCallable() {
				return Empty, vmi.NewTypeError("Function.prototype.call called on non-callable")
			}
			thisArg := argOr(args, 0, Undefined)
			var rest []Value
			if len(args) > 1 {
				rest = args[1:]
			}
			return vmi.Call(this, thisArg, rest)
		}))

	proto.SetOwnNonEnumerable("apply", NewNativeFunction(v.FunctionPrototype, "apply", 2, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			if !this.IsCallable() {
				return Empty, vmi.NewTypeError("Function.prototype.apply called on non-callable")
			}
			thisArg := argOr(args, 0, Undefined)
			var rest []Value
			if len(args) > 1 && args[1].IsArray() {
				rest = args[1].AsArray().Elements()
			}
			return vmi.Call(this, thisArg, rest)
		}))

	proto.SetOwnNonEnumerable("bind", NewNativeFunction(v.FunctionPrototype, "bind", 1, true,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			if !this.IsCallable() {
				return Empty, vmi.NewTypeError("Function.prototype.bind called on non-callable")
			}
			boundThis := argOr(args, 0, Undefined)
			var boundArgs []Value
			if len(args) > 1 {
				boundArgs = append([]Value{}, args[1:]...)
			}
			target := this
			name := "bound"
			if nf := target.AsNativeFunction(); nf != nil {
				name = "bound " + nf.Name
			}
			return NewNativeFunction(v.FunctionPrototype, name, 0, true,
				func(vmi *VM, _ Value, callArgs []Value) (Value, error) {
					return vmi.Call(target, boundThis, append(append([]Value{}, boundArgs...), callArgs...))
				}), nil
		}))
}

func argOr(args []Value, i int, fallback Value) Value {
	if i < len(args) {
		return args[i]
	}
	return fallback
}
