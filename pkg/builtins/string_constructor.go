package builtins

import (
	"math"
	"strconv"

	"strcore/pkg/runtime"
)

// CreateStringConstructor builds the String constructor/prototype
// pair (call form, construct form, and the three static methods),
// wires String.prototype's own "constructor" back-reference, and
// returns both so InstallOnGlobal can bind the identifier.
func CreateStringConstructor(vmi *runtime.VM) (runtime.Value, runtime.Value) {
	proto := vmi.StringPrototype
	installStringPrototype(vmi, proto)

	ctor := runtime.NewNativeFunction(vmi.FunctionPrototype, "String", 1, true, stringCall)
	ctorObj := ctor.AsNativeFunction().Base
	ctorObj.SetOwnFrozen("prototype", proto)
	ctorObj.SetOwnNonEnumerable("raw", runtime.NewNativeFunction(vmi.FunctionPrototype, "raw", 1, true, stringRaw))
	ctorObj.SetOwnNonEnumerable("fromCharCode", runtime.NewNativeFunction(vmi.FunctionPrototype, "fromCharCode", 1, true, stringFromCharCode))
	ctorObj.SetOwnNonEnumerable("fromCodePoint", runtime.NewNativeFunction(vmi.FunctionPrototype, "fromCodePoint", 1, true, stringFromCodePoint))

	proto.AsPlainObject().SetOwnNonEnumerable("constructor", ctor)

	vmi.StringConstructor = ctor
	return ctor, proto
}

// InstallOnGlobal binds the identifier "String" on globalObject to
// the constructor CreateStringConstructor built.
func InstallOnGlobal(globalObject *runtime.PlainObject, constructor runtime.Value) {
	globalObject.SetOwn("String", constructor)
}

// stringCall implements the call form `String(v)`. The native
// function convention in this core does not distinguish
// [[Call]]/[[Construct]], so the construct form `new String(v)` is the
// separate NewStringObjectFromArgs; both compute the primitive with
// stringPrimitiveOf.
func stringCall(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringPrimitiveOf(vmi, args)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(s), nil
}

// NewStringObjectFromArgs is the construct form `new String(v)`:
// compute the primitive per stringCall's algorithm, then box it.
func NewStringObjectFromArgs(vmi *runtime.VM, args []runtime.Value) (runtime.Value, error) {
	s, err := stringPrimitiveOf(vmi, args)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewStringObject(vmi.StringPrototype, s), nil
}

func stringPrimitiveOf(vmi *runtime.VM, args []runtime.Value) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	v := args[0]
	if v.IsSymbol() {
		return runtime.SymbolDescriptiveString(v.AsSymbol()), nil
	}
	return runtime.ToString(vmi, v)
}

// stringRaw implements the static `String.raw(template, ...substitutions)`.
func stringRaw(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	template := arg(args, 0)
	var substitutions []runtime.Value
	if len(args) > 1 {
		substitutions = args[1:]
	}

	cooked, err := runtime.ToObject(vmi, template)
	if err != nil {
		return runtime.Empty, err
	}
	rawVal, err := vmi.GetProperty(cooked, runtime.StringKey("raw"))
	if err != nil {
		return runtime.Empty, err
	}
	raw, err := runtime.ToObject(vmi, rawVal)
	if err != nil {
		return runtime.Empty, err
	}
	lengthVal, err := vmi.GetProperty(raw, runtime.StringKey("length"))
	if err != nil {
		return runtime.Empty, err
	}
	length, err := runtime.ToLength(vmi, lengthVal)
	if err != nil {
		return runtime.Empty, err
	}
	literalSegments := int(length)
	if literalSegments == 0 {
		return runtime.NewString(""), nil
	}

	var b []rune
	for i := 0; i < literalSegments; i++ {
		segVal, err := vmi.GetProperty(raw, runtime.StringKey(strconv.Itoa(i)))
		if err != nil {
			return runtime.Empty, err
		}
		seg, err := runtime.ToString(vmi, segVal)
		if err != nil {
			return runtime.Empty, err
		}
		b = append(b, []rune(seg)...)
		if i+1 == literalSegments {
			break
		}
		if i < len(substitutions) {
			sub, err := runtime.ToString(vmi, substitutions[i])
			if err != nil {
				return runtime.Empty, err
			}
			b = append(b, []rune(sub)...)
		}
	}
	return runtime.NewString(string(b)), nil
}

// stringFromCharCode implements the static `fromCharCode(...codeUnits)`:
// each argument is ToInt32'd, masked to 16 bits, and appended as an
// independent BMP code point. Surrogate halves are not paired up
// across arguments; see DESIGN.md on the code-point indexing model.
func stringFromCharCode(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	runes := make([]rune, len(args))
	for i, a := range args {
		n, err := runtime.ToInt32(vmi, a)
		if err != nil {
			return runtime.Empty, err
		}
		runes[i] = rune(uint16(n) & 0xFFFF)
	}
	return runtime.NewString(string(runes)), nil
}

// stringFromCodePoint implements the static `fromCodePoint(...codePoints)`.
func stringFromCodePoint(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	runes := make([]rune, len(args))
	for i, a := range args {
		n, err := runtime.ToNumber(vmi, a)
		if err != nil {
			return runtime.Empty, err
		}
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return runtime.Empty, vmi.NewRangeError("Invalid code point " + formatCodePointForError(n))
		}
		if n < 0 || n > 0x10FFFF {
			return runtime.Empty, vmi.NewRangeError("Invalid code point " + formatCodePointForError(n))
		}
		runes[i] = rune(int32(n))
	}
	return runtime.NewString(string(runes)), nil
}

func formatCodePointForError(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
