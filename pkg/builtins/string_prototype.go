package builtins

import (
	"math"
	"strings"

	"strcore/pkg/runtime"
)

// installStringPrototype installs the full ES2021 String.prototype
// method surface onto proto (vmi.StringPrototype). Positions and
// lengths are code-point-indexed throughout; see DESIGN.md on the
// indexing model.
func installStringPrototype(vmi *runtime.VM, protoVal runtime.Value) {
	proto := protoVal.AsPlainObject()
	def := func(name string, length int, fn runtime.NativeFn) {
		proto.SetOwnNonEnumerable(name, runtime.NewNativeFunction(vmi.FunctionPrototype, name, length, false, fn))
	}

	def("charAt", 1, stringCharAt)
	def("charCodeAt", 1, stringCharCodeAt)
	def("codePointAt", 1, stringCodePointAt)
	def("at", 1, stringAt)
	def("indexOf", 1, stringIndexOf)
	def("lastIndexOf", 1, stringLastIndexOf)
	def("includes", 1, stringIncludes)
	def("startsWith", 1, stringStartsWith)
	def("endsWith", 1, stringEndsWith)
	def("slice", 2, stringSlice)
	def("substring", 2, stringSubstring)
	def("substr", 2, stringSubstr)
	def("concat", 1, stringConcat)
	def("repeat", 1, stringRepeat)
	def("toLowerCase", 0, stringToLowerCase)
	def("toUpperCase", 0, stringToUpperCase)
	def("toString", 0, stringToStringMethod)
	def("valueOf", 0, stringValueOf)

	installStringTrimAndPad(vmi, proto, def)
	installStringSplitAndReplace(vmi, proto, def)
	installStringHTMLWrappers(vmi, proto, def)

	proto.SetOwnNonEnumerableByKey(runtime.SymbolKey(vmi.Symbols.Iterator), runtime.NewNativeFunction(vmi.FunctionPrototype, "[Symbol.iterator]", 0, false, stringIteratorMethod))
}

func stringCharAt(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	pos, err := runtime.ToIntegerOrInfinity(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	if pos < 0 || pos >= float64(len(runes)) {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(string(runes[int(pos)])), nil
}

func stringCharCodeAt(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	pos, err := runtime.ToIntegerOrInfinity(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	if pos < 0 || pos >= float64(len(runes)) {
		return runtime.Number(math.NaN()), nil
	}
	return runtime.Number(float64(runes[int(pos)])), nil
}

func stringCodePointAt(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	pos, err := runtime.ToIntegerOrInfinity(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	if pos < 0 || pos >= float64(len(runes)) {
		return runtime.Undefined, nil
	}
	return runtime.Number(float64(runes[int(pos)])), nil
}

func stringAt(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	relIndex, err := runtime.ToIntegerOrInfinity(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	if math.IsInf(relIndex, 0) {
		return runtime.Undefined, nil
	}
	runes := []rune(s)
	idx := relIndex
	if idx < 0 {
		idx += float64(len(runes))
	}
	if idx < 0 || idx >= float64(len(runes)) {
		return runtime.Undefined, nil
	}
	return runtime.NewString(string(runes[int(idx)])), nil
}

func stringIndexOf(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	search, err := runtime.ToString(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	pos := 0.0
	if len(args) > 1 {
		pos, err = runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	runes := []rune(s)
	searchRunes := []rune(search)
	start := clampFloatToInt(pos, 0, len(runes))
	for i := start; i+len(searchRunes) <= len(runes); i++ {
		if runesEqual(runes[i:i+len(searchRunes)], searchRunes) {
			return runtime.Number(float64(i)), nil
		}
	}
	return runtime.Number(-1), nil
}

func stringLastIndexOf(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	search, err := runtime.ToString(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	searchRunes := []rune(search)
	lenS := len(runes)
	lenSearch := len(searchRunes)
	if lenSearch > lenS {
		return runtime.Number(-1), nil
	}
	maxIndex := lenS - lenSearch
	posNum, err := runtime.ToNumber(vmi, arg(args, 1))
	if err != nil {
		return runtime.Empty, err
	}
	from := maxIndex
	if !math.IsNaN(posNum) {
		integer, err := runtime.ToIntegerOrInfinity(vmi, runtime.Number(posNum))
		if err != nil {
			return runtime.Empty, err
		}
		from = clampFloatToInt(integer, 0, maxIndex)
	}
	for i := from; i >= 0; i-- {
		if runesEqual(runes[i:i+lenSearch], searchRunes) {
			return runtime.Number(float64(i)), nil
		}
	}
	return runtime.Number(-1), nil
}

func stringIncludes(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	if arg(args, 0).IsRegExp() {
		return runtime.Empty, vmi.NewTypeError("First argument to String.prototype.includes must not be a regular expression")
	}
	search, err := runtime.ToString(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	pos := 0.0
	if len(args) > 1 {
		pos, err = runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	runes := []rune(s)
	start := clampFloatToInt(pos, 0, len(runes))
	return runtime.Bool(strings.Contains(string(runes[start:]), search)), nil
}

func stringStartsWith(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	if arg(args, 0).IsRegExp() {
		return runtime.Empty, vmi.NewTypeError("First argument to String.prototype.startsWith must not be a regular expression")
	}
	search, err := runtime.ToString(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	pos := 0.0
	if len(args) > 1 {
		pos, err = runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	runes := []rune(s)
	searchRunes := []rune(search)
	start := clampFloatToInt(pos, 0, len(runes))
	if start+len(searchRunes) > len(runes) {
		return runtime.Bool(false), nil
	}
	return runtime.Bool(runesEqual(runes[start:start+len(searchRunes)], searchRunes)), nil
}

func stringEndsWith(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	if arg(args, 0).IsRegExp() {
		return runtime.Empty, vmi.NewTypeError("First argument to String.prototype.endsWith must not be a regular expression")
	}
	search, err := runtime.ToString(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	endPos := len(runes)
	if len(args) > 1 && !args[1].IsUndefined() {
		n, err := runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
		endPos = clampFloatToInt(n, 0, len(runes))
	}
	searchRunes := []rune(search)
	if len(searchRunes) == 0 {
		return runtime.Bool(true), nil
	}
	start := endPos - len(searchRunes)
	if start < 0 {
		return runtime.Bool(false), nil
	}
	return runtime.Bool(runesEqual(runes[start:endPos], searchRunes)), nil
}

func stringSlice(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	length := len(runes)

	start := 0
	if len(args) > 0 {
		n, err := runtime.ToIntegerOrInfinity(vmi, args[0])
		if err != nil {
			return runtime.Empty, err
		}
		start = normalizeRelative(n, length)
	}
	end := length
	if len(args) > 1 && !args[1].IsUndefined() {
		n, err := runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
		end = normalizeRelative(n, length)
	}
	if start >= end {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(string(runes[start:end])), nil
}

func normalizeRelative(n float64, length int) int {
	if n < 0 {
		n += float64(length)
	}
	return clampFloatToInt(n, 0, length)
}

func stringSubstring(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	length := len(runes)

	start := 0.0
	if len(args) > 0 {
		start, err = runtime.ToIntegerOrInfinity(vmi, args[0])
		if err != nil {
			return runtime.Empty, err
		}
	}
	end := float64(length)
	if len(args) > 1 && !args[1].IsUndefined() {
		end, err = runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	startI := clampInt(int(clampFloat(start, 0, float64(length))), 0, length)
	endI := clampInt(int(clampFloat(end, 0, float64(length))), 0, length)
	if startI > endI {
		startI, endI = endI, startI
	}
	return runtime.NewString(string(runes[startI:endI])), nil
}

func clampFloat(n, lo, hi float64) float64 {
	if math.IsNaN(n) {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func stringSubstr(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	runes := []rune(s)
	length := len(runes)

	startF := 0.0
	if len(args) > 0 {
		startF, err = runtime.ToIntegerOrInfinity(vmi, args[0])
		if err != nil {
			return runtime.Empty, err
		}
	}
	if math.IsInf(startF, -1) {
		startF = 0
	} else if startF < 0 {
		startF = math.Max(float64(length)+startF, 0)
	}
	if math.IsInf(startF, 1) {
		return runtime.NewString(""), nil
	}
	lengthF := float64(length) - startF
	if len(args) > 1 && !args[1].IsUndefined() {
		lengthF, err = runtime.ToIntegerOrInfinity(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	if lengthF <= 0 || math.IsInf(lengthF, 1) {
		return runtime.NewString(""), nil
	}
	start := int(startF)
	end := start + int(lengthF)
	if end > length {
		end = length
	}
	if start >= end || start > length {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(string(runes[start:end])), nil
}

func stringConcat(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	var b strings.Builder
	b.WriteString(s)
	for _, a := range args {
		part, err := runtime.ToString(vmi, a)
		if err != nil {
			return runtime.Empty, err
		}
		b.WriteString(part)
	}
	return runtime.NewString(b.String()), nil
}

func stringRepeat(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	n, err := runtime.ToIntegerOrInfinity(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	if n < 0 || math.IsInf(n, 1) {
		return runtime.Empty, vmi.NewRangeError("Invalid count value")
	}
	if n == 0 || s == "" {
		return runtime.NewString(""), nil
	}
	return runtime.NewString(strings.Repeat(s, int(n))), nil
}

func stringToLowerCase(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(strings.ToLower(s)), nil
}

func stringToUpperCase(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(strings.ToUpper(s)), nil
}

func stringToStringMethod(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := thisStringValue(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(s), nil
}

func stringValueOf(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := thisStringValue(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(s), nil
}

func stringIteratorMethod(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewStringIterator(vmi, s), nil
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
