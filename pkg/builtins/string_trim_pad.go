package builtins

import (
	"strings"

	"strcore/pkg/runtime"
)

// installStringTrimAndPad wires trim/trimStart/trimEnd (plus their
// Annex B trimLeft/trimRight aliases, installed as references to the
// same function values) and padStart/padEnd.
func installStringTrimAndPad(vmi *runtime.VM, proto *runtime.PlainObject, def func(string, int, runtime.NativeFn)) {
	def("trim", 0, stringTrim)
	def("trimStart", 0, stringTrimStart)
	def("trimEnd", 0, stringTrimEnd)
	def("padStart", 1, stringPadStart)
	def("padEnd", 1, stringPadEnd)

	// trimLeft/trimRight alias the trimStart/trimEnd function values
	// captured at initialization time, matching Annex B's "the same
	// function object" requirement.
	if trimStart, ok := proto.GetOwn("trimStart"); ok {
		proto.SetOwnNonEnumerable("trimLeft", trimStart)
	}
	if trimEnd, ok := proto.GetOwn("trimEnd"); ok {
		proto.SetOwnNonEnumerable("trimRight", trimEnd)
	}
}

func stringTrim(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(strings.TrimFunc(s, isStringWhitespace)), nil
}

func stringTrimStart(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(strings.TrimLeftFunc(s, isStringWhitespace)), nil
}

func stringTrimEnd(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	return runtime.NewString(strings.TrimRightFunc(s, isStringWhitespace)), nil
}

func stringPadStart(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return stringPad(vmi, this, args, true)
}

func stringPadEnd(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return stringPad(vmi, this, args, false)
}

func stringPad(vmi *runtime.VM, this runtime.Value, args []runtime.Value, atStart bool) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	maxLength, err := runtime.ToLength(vmi, arg(args, 0))
	if err != nil {
		return runtime.Empty, err
	}
	length := len([]rune(s))
	if maxLength <= float64(length) {
		return runtime.NewString(s), nil
	}
	fillString := " "
	if len(args) > 1 && !args[1].IsUndefined() {
		fillString, err = runtime.ToString(vmi, args[1])
		if err != nil {
			return runtime.Empty, err
		}
	}
	if fillString == "" {
		return runtime.NewString(s), nil
	}
	return runtime.NewString(StringPad(s, fillString, int(maxLength), atStart)), nil
}
