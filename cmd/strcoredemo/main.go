// Command strcoredemo exercises the String builtin end to end: a
// small colorized pass/fail console runner over a handful of method
// invocations against a freshly built realm.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"strcore/pkg/builtins"
	"strcore/pkg/runtime"
)

type demoCase struct {
	name string
	run  func(vmi *runtime.VM) (string, error)
}

func main() {
	// Disable color when stdout isn't a terminal, same guard fatih/color
	// users commonly pair it with go-isatty for.
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	vmi := runtime.NewVM()
	ctor, _ := builtins.CreateStringConstructor(vmi)
	builtins.InstallOnGlobal(vmi.ObjectPrototype.AsPlainObject(), ctor)

	cases := []demoCase{
		{"padStart", func(vmi *runtime.VM) (string, error) {
			return callMethod(vmi, "abc", "padStart", runtime.Number(6), runtime.NewString("12"))
		}},
		{"repeat", func(vmi *runtime.VM) (string, error) { return callMethod(vmi, "ab", "repeat", runtime.Number(3)) }},
		{"slice", func(vmi *runtime.VM) (string, error) { return callMethod(vmi, "abcdef", "slice", runtime.Number(-2)) }},
		{"trim", func(vmi *runtime.VM) (string, error) { return callMethod(vmi, "  hi  ", "trim") }},
		{"anchor", func(vmi *runtime.VM) (string, error) { return callMethod(vmi, "ab", "anchor", runtime.NewString("x")) }},
		{"repeat-range-error", func(vmi *runtime.VM) (string, error) { return callMethod(vmi, "abc", "repeat", runtime.Number(-1)) }},
	}

	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	failures := 0
	for _, c := range cases {
		result, err := c.run(vmi)
		if err != nil {
			if c.name == "repeat-range-error" {
				green.Printf("PASS  %-20s raised %v (expected)\n", c.name, err)
				continue
			}
			red.Printf("FAIL  %-20s error: %v\n", c.name, err)
			failures++
			continue
		}
		green.Printf("PASS  %-20s -> %q\n", c.name, result)
	}

	if failures > 0 {
		os.Exit(1)
	}
	fmt.Println("all demo cases passed")
}

func callMethod(vmi *runtime.VM, receiver, method string, args ...runtime.Value) (string, error) {
	fn, err := vmi.GetProperty(vmi.StringPrototype, runtime.StringKey(method))
	if err != nil {
		return "", err
	}
	result, err := vmi.Call(fn, runtime.NewString(receiver), args)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}
