// Package runtime implements the minimum substrate the String builtin
// assumes: a tagged Value union, a shape-backed object/prototype model,
// the coercion library, and the process-local exception channel.
package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType tags the variant held by a Value.
type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeSymbol
	TypeObject
	TypeStringObject
	TypeArray
	TypeNativeFunction
	TypeRegExp
	// TypeEmpty is the sentinel "no value" produced after a short-circuited
	// exception; it must never escape to user-observable results.
	TypeEmpty
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeObject, TypeStringObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeNativeFunction:
		return "function"
	case TypeRegExp:
		return "regexp"
	case TypeEmpty:
		return "<empty>"
	default:
		return "<unknown>"
	}
}

// Value is a tagged union over the ECMAScript language types:
// Undefined, Null, Boolean, Number, String, Symbol, Object, and the
// internal Empty sentinel, plus the object sub-kinds (array, native
// function, regexp, boxed string) the String builtin needs. Primitive
// strings are stored inline by value rather than through a heap
// reference: Go's string header is already an immutable GC-owned byte
// view, so boxing it behind an extra pointer would only add an
// indirection.
type Value struct {
	typ ValueType
	num float64
	str string
	b   bool
	obj interface{}
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	// Empty is never returned to user code; it signals "a pending
	// exception already short-circuited this computation".
	Empty = Value{typ: TypeEmpty}
)

func Bool(b bool) Value { return Value{typ: TypeBoolean, b: b} }

func Number(n float64) Value { return Value{typ: TypeNumber, num: n} }

// NewString allocates a primitive string value. In this Go
// realization allocation is simply Go's own string construction,
// already immutable and GC-owned.
func NewString(s string) Value { return Value{typ: TypeString, str: s} }

// PinAcrossAllocation keeps a value alive across a subsequent
// allocation. Under a moving or non-conservative collector this would
// root v for the caller's scope; Go's garbage collector already scans
// goroutine stacks and keeps any reachable Value's referents alive,
// so there is deliberately nothing to do.
func PinAcrossAllocation(v Value) Value { return v }

func newSymbolValue(s *SymbolObject) Value { return Value{typ: TypeSymbol, obj: s} }

// NewSymbol allocates a new, globally unique Symbol with the given
// description (used by Symbol() and the well-known symbols).
func NewSymbol(description string) Value { return newSymbolValue(newSymbolObject(description)) }

func newObjectValueFrom(o *PlainObject) Value { return Value{typ: TypeObject, obj: o} }

func newStringObjectValue(o *StringObject) Value { return Value{typ: TypeStringObject, obj: o} }

func newArrayValueFrom(a *ArrayObject) Value { return Value{typ: TypeArray, obj: a} }

func newNativeFunctionValue(f *NativeFunctionObject) Value {
	return Value{typ: TypeNativeFunction, obj: f}
}

func newRegExpValueFrom(r *RegExpObject) Value { return Value{typ: TypeRegExp, obj: r} }

// Type reports the Value's variant tag.
func (v Value) Type() ValueType { return v.typ }

func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }
func (v Value) IsNull() bool      { return v.typ == TypeNull }
func (v Value) IsNullish() bool   { return v.typ == TypeUndefined || v.typ == TypeNull }
func (v Value) IsBoolean() bool   { return v.typ == TypeBoolean }
func (v Value) IsNumber() bool    { return v.typ == TypeNumber }
func (v Value) IsString() bool    { return v.typ == TypeString }
func (v Value) IsSymbol() bool    { return v.typ == TypeSymbol }
func (v Value) IsRegExp() bool    { return v.typ == TypeRegExp }
func (v Value) IsArray() bool     { return v.typ == TypeArray }
func (v Value) IsEmpty() bool     { return v.typ == TypeEmpty }
func (v Value) IsStringObject() bool {
	return v.typ == TypeStringObject
}

// IsObject is true for every object-family variant: plain objects,
// boxed strings, arrays, functions, and regexps all participate in
// the ordinary object protocol.
func (v Value) IsObject() bool {
	switch v.typ {
	case TypeObject, TypeStringObject, TypeArray, TypeNativeFunction, TypeRegExp:
		return true
	default:
		return false
	}
}

func (v Value) IsCallable() bool { return v.typ == TypeNativeFunction }

func (v Value) AsBoolean() bool { return v.b }

func (v Value) AsFloat() float64 { return v.num }

func (v Value) AsStringValue() string { return v.str }

func (v Value) AsSymbol() *SymbolObject {
	if v.typ != TypeSymbol {
		return nil
	}
	return v.obj.(*SymbolObject)
}

func (v Value) AsPlainObject() *PlainObject {
	if v.typ != TypeObject {
		return nil
	}
	return v.obj.(*PlainObject)
}

func (v Value) AsStringObject() *StringObject {
	if v.typ != TypeStringObject {
		return nil
	}
	return v.obj.(*StringObject)
}

func (v Value) AsArray() *ArrayObject {
	if v.typ != TypeArray {
		return nil
	}
	return v.obj.(*ArrayObject)
}

func (v Value) AsNativeFunction() *NativeFunctionObject {
	if v.typ != TypeNativeFunction {
		return nil
	}
	return v.obj.(*NativeFunctionObject)
}

func (v Value) AsRegExpObject() *RegExpObject {
	if v.typ != TypeRegExp {
		return nil
	}
	return v.obj.(*RegExpObject)
}

// base returns the PlainObject backing any object-family Value, used
// by the property protocol to walk the prototype chain uniformly
// regardless of the concrete object sub-kind.
func (v Value) base() *PlainObject {
	switch v.typ {
	case TypeObject:
		return v.obj.(*PlainObject)
	case TypeStringObject:
		return v.obj.(*StringObject).Base
	case TypeArray:
		return v.obj.(*ArrayObject).Base
	case TypeNativeFunction:
		return v.obj.(*NativeFunctionObject).Base
	case TypeRegExp:
		return v.obj.(*RegExpObject).Base
	default:
		return nil
	}
}

// Is implements the spec's SameValue (used by DefineProperty's
// non-writable check and by tests; not itself a String method).
func (v Value) Is(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull, TypeEmpty:
		return true
	case TypeBoolean:
		return v.b == other.b
	case TypeNumber:
		// SameValue distinguishes +0/-0 and treats NaN as equal to itself;
		// Go's == does neither, so both cases are handled explicitly.
		if math.IsNaN(v.num) && math.IsNaN(other.num) {
			return true
		}
		return v.num == other.num && math.Signbit(v.num) == math.Signbit(other.num)
	case TypeString:
		return v.str == other.str
	case TypeSymbol, TypeObject, TypeStringObject, TypeArray, TypeNativeFunction, TypeRegExp:
		return v.obj == other.obj
	default:
		return false
	}
}

// String is a debugging representation, not the ECMA-262 ToString
// algorithm (see coerce.go for that); it never raises and never
// invokes user code, so it is safe to use in logging and panics.
func (v Value) String() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeNumber:
		return formatNumber(v.num)
	case TypeString:
		return v.str
	case TypeSymbol:
		return v.AsSymbol().String()
	case TypeObject, TypeStringObject:
		return "[object Object]"
	case TypeArray:
		return "[object Array]"
	case TypeNativeFunction:
		return fmt.Sprintf("function %s() { [native code] }", v.AsNativeFunction().Name)
	case TypeRegExp:
		r := v.AsRegExpObject()
		return "/" + r.source + "/" + r.flags
	case TypeEmpty:
		return "<empty>"
	default:
		return "<unknown value>"
	}
}
