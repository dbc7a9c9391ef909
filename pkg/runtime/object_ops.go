package runtime

// The mutating half of the object protocol: Set, HasProperty, delete,
// DefineProperty with a throw flag, extensibility control, and the
// Sealed/Frozen integrity levels. GetProperty and GetMethod live in
// vm.go next to Call.

// IntegrityLevel selects how far SetIntegrityLevel locks an object
// down: Sealed makes every own property non-configurable, Frozen
// additionally makes data properties non-writable.
type IntegrityLevel uint8

const (
	Sealed IntegrityLevel = iota
	Frozen
)

// exoticOwnProperty resolves the object kinds whose own properties
// live outside the shape: array elements and length, and a boxed
// string's code-point elements and length. Indexed keys never enter
// the shape's field list.
func exoticOwnProperty(v Value, key PropertyKey) (Value, bool) {
	if !key.IsString() {
		return Undefined, false
	}
	switch v.Type() {
	case TypeArray:
		a := v.AsArray()
		if key.name == "length" {
			return Number(float64(a.Length())), true
		}
		if idx, ok := parseArrayIndex(key.name); ok && idx < a.Length() {
			return a.Get(idx), true
		}
	case TypeStringObject:
		runes := []rune(v.AsStringObject().StringData)
		if key.name == "length" {
			return Number(float64(len(runes))), true
		}
		if idx, ok := parseArrayIndex(key.name); ok && idx < len(runes) {
			return NewString(string(runes[idx])), true
		}
	}
	return Undefined, false
}

// parseArrayIndex recognizes canonical non-negative integer keys
// within the u32 range: no sign, no leading zeros, digits only.
func parseArrayIndex(name string) (int, bool) {
	if name == "" || (len(name) > 1 && name[0] == '0') {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 1<<32-1 {
			return 0, false
		}
	}
	return n, true
}

// SetProperty is the ordinary [[Set]]: walk the prototype chain for
// an existing property; a data hit writes through
// to the receiver (respecting writability and extensibility), an
// accessor hit invokes its setter bound to receiver, and a miss
// creates a fresh own property on the receiver if it is extensible.
// The boolean result reports whether the write took effect.
func (vmi *VM) SetProperty(object Value, key PropertyKey, value Value, receiver Value) (bool, error) {
	if object.Type() == TypeArray && key.IsString() {
		if key.name == "length" {
			return false, nil // array length tracks the element store
		}
		if idx, ok := parseArrayIndex(key.name); ok {
			object.AsArray().DefineIndexed(idx, value)
			return true, nil
		}
	}

	cur := object
	for {
		base := cur.base()
		if base == nil {
			break
		}
		if desc, ok := base.GetOwnDescriptor(key); ok {
			if desc.IsAccessor {
				if desc.Set.IsUndefined() {
					return false, nil
				}
				if _, err := vmi.Call(desc.Set, receiver, []Value{value}); err != nil {
					return false, err
				}
				return true, nil
			}
			if !desc.Writable {
				return false, nil
			}
			rbase := receiver.base()
			if rbase == nil {
				return false, nil
			}
			if rbase == base {
				base.setSlot(key, value, desc.Writable, desc.Enumerable, desc.Configurable)
				return true, nil
			}
			if !rbase.HasOwn(key) && !rbase.Extensible() {
				return false, nil
			}
			rbase.SetOwnByKey(key, value)
			return true, nil
		}
		proto := base.Prototype()
		if proto.IsNullish() {
			break
		}
		cur = proto
	}

	rbase := receiver.base()
	if rbase == nil || !rbase.Extensible() {
		return false, nil
	}
	rbase.SetOwnByKey(key, value)
	return true, nil
}

// HasProperty walks own then prototype chain, exotic stores included.
func (vmi *VM) HasProperty(object Value, key PropertyKey) bool {
	cur := object
	for {
		if _, ok := exoticOwnProperty(cur, key); ok {
			return true
		}
		base := cur.base()
		if base == nil {
			return false
		}
		if base.HasOwn(key) {
			return true
		}
		proto := base.Prototype()
		if proto.IsNullish() {
			return false
		}
		cur = proto
	}
}

// DeleteProperty removes an own property; inherited properties are
// untouched. Reports whether the property is now absent.
func (vmi *VM) DeleteProperty(object Value, key PropertyKey) bool {
	base := object.base()
	if base == nil {
		return false
	}
	return base.DeleteOwn(key)
}

// PreventExtensions clears the extensible flag; new own properties can
// no longer be created, existing ones are unaffected.
func (vmi *VM) PreventExtensions(object Value) bool {
	base := object.base()
	if base == nil {
		return false
	}
	base.SetExtensible(false)
	return true
}

// DefineProperty is [[DefineOwnProperty]] with the validation an
// existing non-configurable property imposes. On failure it either
// raises TypeError or reports false, per the flag.
func (vmi *VM) DefineProperty(object Value, key PropertyKey, desc PropertyDescriptor, throwOnFailure bool) (bool, error) {
	base := object.base()
	if base == nil {
		return vmi.defineFailed(key, "not an object", throwOnFailure)
	}
	existing, ok := base.GetOwnDescriptor(key)
	if !ok {
		if !base.Extensible() {
			return vmi.defineFailed(key, "object is not extensible", throwOnFailure)
		}
		base.defineOwn(key, desc)
		return true, nil
	}
	if !existing.Configurable {
		if desc.Configurable ||
			existing.IsAccessor != desc.IsAccessor ||
			existing.Enumerable != desc.Enumerable {
			return vmi.defineFailed(key, "property is non-configurable", throwOnFailure)
		}
		if !existing.IsAccessor && !existing.Writable {
			if desc.Writable || !desc.Value.Is(existing.Value) {
				return vmi.defineFailed(key, "property is non-writable", throwOnFailure)
			}
		}
	}
	base.defineOwn(key, desc)
	return true, nil
}

func (vmi *VM) defineFailed(key PropertyKey, reason string, throwOnFailure bool) (bool, error) {
	if throwOnFailure {
		return false, vmi.NewTypeError("cannot define property " + key.String() + ": " + reason)
	}
	return false, nil
}

// SetIntegrityLevel prevents extensions, then locks every own
// property's attributes down to the requested level.
func (vmi *VM) SetIntegrityLevel(object Value, level IntegrityLevel) bool {
	base := object.base()
	if base == nil {
		return false
	}
	base.SetExtensible(false)
	for _, key := range base.OwnKeys() {
		desc, ok := base.GetOwnDescriptor(key)
		if !ok {
			continue
		}
		desc.Configurable = false
		if level == Frozen && !desc.IsAccessor {
			desc.Writable = false
		}
		base.defineOwn(key, desc)
	}
	return true
}

// TestIntegrityLevel reports whether the object already satisfies the
// given level: non-extensible, with every own property locked down
// accordingly.
func (vmi *VM) TestIntegrityLevel(object Value, level IntegrityLevel) bool {
	base := object.base()
	if base == nil {
		return false
	}
	if base.Extensible() {
		return false
	}
	for _, key := range base.OwnKeys() {
		desc, ok := base.GetOwnDescriptor(key)
		if !ok {
			continue
		}
		if desc.Configurable {
			return false
		}
		if level == Frozen && !desc.IsAccessor && desc.Writable {
			return false
		}
	}
	return true
}
