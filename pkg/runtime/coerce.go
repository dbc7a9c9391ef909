package runtime

import (
	"math"
	"strconv"
	"strings"
)

// RequireObjectCoercible raises TypeError for Undefined/Null and
// passes everything else through unchanged. Every String.prototype
// method opens with this call against its receiver.
func RequireObjectCoercible(vmi *VM, v Value) (Value, error) {
	if v.IsNullish() {
		return Empty, vmi.NewTypeError("cannot convert undefined or null to object")
	}
	return v, nil
}

// ToPrimitive implements the abstract operation ToString and ToNumber
// bottom out in for objects: probe @@toPrimitive first, then fall
// back to the hint-ordered valueOf/toString pair. hint is "string",
// "number", or "default".
func ToPrimitive(vmi *VM, v Value, hint string) (Value, error) {
	if !v.IsObject() {
		return v, nil
	}
	exotic, err := vmi.GetMethod(v, SymbolKey(vmi.Symbols.ToPrimitive))
	if err != nil {
		return Empty, err
	}
	if !exotic.IsUndefined() {
		result, err := vmi.Call(exotic, v, []Value{NewString(hint)})
		if err != nil {
			return Empty, err
		}
		if result.IsObject() {
			return Empty, vmi.NewTypeError("Symbol.toPrimitive must return a primitive")
		}
		return result, nil
	}

	methodNames := []string{"valueOf", "toString"}
	if hint == "string" {
		methodNames = []string{"toString", "valueOf"}
	}
	for _, name := range methodNames {
		method, err := vmi.GetMethod(v, StringKey(name))
		if err != nil {
			return Empty, err
		}
		if method.IsUndefined() {
			continue
		}
		result, err := vmi.Call(method, v, nil)
		if err != nil {
			return Empty, err
		}
		if !result.IsObject() {
			return result, nil
		}
	}
	return Empty, vmi.NewTypeError("cannot convert object to primitive value")
}

// ToString implements the ECMA-262 ToString table, including the
// Symbol→TypeError branch (distinct from the String constructor's
// call-form Symbol handling, which uses SymbolDescriptiveString
// instead).
func ToString(vmi *VM, v Value) (string, error) {
	switch v.typ {
	case TypeUndefined:
		return "undefined", nil
	case TypeNull:
		return "null", nil
	case TypeBoolean:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case TypeNumber:
		return formatNumber(v.num), nil
	case TypeString:
		return v.str, nil
	case TypeSymbol:
		return "", vmi.NewTypeError("cannot convert a Symbol value to a string")
	default:
		prim, err := ToPrimitive(vmi, v, "string")
		if err != nil {
			return "", err
		}
		return ToString(vmi, prim)
	}
}

// ToNumber backs ToIntegerOrInfinity, ToInt32, and ToUint32. Strings
// are parsed with the same leniency as ECMA-262's StringToNumber
// (surrounding whitespace trimmed, empty string is 0).
func ToNumber(vmi *VM, v Value) (float64, error) {
	switch v.typ {
	case TypeUndefined:
		return math.NaN(), nil
	case TypeNull:
		return 0, nil
	case TypeBoolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case TypeNumber:
		return v.num, nil
	case TypeString:
		return stringToNumber(v.str), nil
	case TypeSymbol:
		return 0, vmi.NewTypeError("cannot convert a Symbol value to a number")
	default:
		prim, err := ToPrimitive(vmi, v, "number")
		if err != nil {
			return 0, err
		}
		return ToNumber(vmi, prim)
	}
}

func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if t == "Infinity" || t == "+Infinity" {
		return math.Inf(1)
	}
	if t == "-Infinity" {
		return math.Inf(-1)
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToIntegerOrInfinity is ToNumber with NaN→0, ±∞ preserved, and
// everything else truncated toward zero.
func ToIntegerOrInfinity(vmi *VM, v Value) (float64, error) {
	n, err := ToNumber(vmi, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) {
		return 0, nil
	}
	if math.IsInf(n, 0) {
		return n, nil
	}
	return math.Trunc(n), nil
}

// ToLength is ToIntegerOrInfinity clamped to [0, 2^53-1].
func ToLength(vmi *VM, v Value) (float64, error) {
	n, err := ToIntegerOrInfinity(vmi, v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	const maxSafeInteger = 1<<53 - 1
	if n > maxSafeInteger {
		return maxSafeInteger, nil
	}
	return n, nil
}

// ToInt32 implements the modulo-2^32, sign-extended conversion.
func ToInt32(vmi *VM, v Value) (int32, error) {
	n, err := ToNumber(vmi, v)
	if err != nil {
		return 0, err
	}
	return int32(toUint32Bits(n)), nil
}

// ToUint32 implements the unsigned modulo-2^32 conversion.
func ToUint32(vmi *VM, v Value) (uint32, error) {
	n, err := ToNumber(vmi, v)
	if err != nil {
		return 0, err
	}
	return toUint32Bits(n), nil
}

func toUint32Bits(n float64) uint32 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n == 0 {
		return 0
	}
	n = math.Trunc(n)
	const twoPow32 = 4294967296
	m := math.Mod(n, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	return uint32(m)
}

// ToObject raises TypeError for Undefined/Null, boxes String/Boolean/
// Number/Symbol into a wrapper, and is identity on objects.
func ToObject(vmi *VM, v Value) (Value, error) {
	switch v.typ {
	case TypeUndefined, TypeNull:
		return Empty, vmi.NewTypeError("cannot convert undefined or null to object")
	case TypeString:
		return NewStringObject(vmi.StringPrototype, v.str), nil
	case TypeBoolean, TypeNumber, TypeSymbol:
		o := NewPlainObject(vmi.ObjectPrototype)
		o.SetOwn("[[PrimitiveData]]", v)
		return newObjectValueFrom(o), nil
	default:
		return v, nil
	}
}
