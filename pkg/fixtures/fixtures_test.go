package fixtures

import (
	"testing"

	"strcore/pkg/builtins"
	"strcore/pkg/runtime"
)

// goldenStringMethods is a checked-in-style golden fixture: a handful
// of String.prototype method vectors. Seeded into an in-memory
// filesystem so the test exercises NewMemLoader/Load exactly the way
// a real golden directory would be read by NewLoader, without
// touching disk.
const goldenStringMethods = `[
  {"method": "toUpperCase", "receiver": "abc", "args": [], "want": "ABC"},
  {"method": "repeat", "receiver": "ab", "args": [3], "want": "ababab"},
  {"method": "padStart", "receiver": "abc", "args": [6, "12"], "want": "121abc"},
  {"method": "padEnd", "receiver": "abc", "args": [6, "12"], "want": "abc121"},
  {"method": "slice", "receiver": "abcdef", "args": [-2], "want": "ef"},
  {"method": "trim", "receiver": "  hi  ", "args": [], "want": "hi"}
]`

func newStringVM(t *testing.T) *runtime.VM {
	t.Helper()
	vmi := runtime.NewVM()
	ctor, _ := builtins.CreateStringConstructor(vmi)
	builtins.InstallOnGlobal(vmi.ObjectPrototype.AsPlainObject(), ctor)
	return vmi
}

// argToValue converts a fixture argument (already JSON-decoded to a
// Go string/float64/bool/nil) to the runtime.Value a native method
// call expects.
func argToValue(a interface{}) runtime.Value {
	switch v := a.(type) {
	case string:
		return runtime.NewString(v)
	case float64:
		return runtime.Number(v)
	case bool:
		return runtime.Bool(v)
	default:
		return runtime.Undefined
	}
}

func TestLoaderRunsGoldenStringMethodCases(t *testing.T) {
	loader := NewMemLoader(map[string]string{
		"golden/string_methods.json": goldenStringMethods,
	})
	cases, err := loader.Load("golden/string_methods.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("expected at least one golden case")
	}

	vmi := newStringVM(t)
	for _, c := range cases {
		fn, err := vmi.GetProperty(vmi.StringPrototype, runtime.StringKey(c.Method))
		if err != nil {
			t.Fatalf("%s: lookup: %v", c.Method, err)
		}
		args := make([]runtime.Value, len(c.Args))
		for i, a := range c.Args {
			args[i] = argToValue(a)
		}
		got, err := vmi.Call(fn, runtime.NewString(c.Receiver), args)
		if err != nil {
			t.Fatalf("%s(%q, %v): %v", c.Method, c.Receiver, c.Args, err)
		}
		want, _ := c.Want.(string)
		if got.AsStringValue() != want {
			t.Errorf("%s(%q, %v) = %q, want %q", c.Method, c.Receiver, c.Args, got.AsStringValue(), want)
		}
	}
}

func TestLoaderMissingFileErrors(t *testing.T) {
	loader := NewMemLoader(nil)
	if _, err := loader.Load("golden/missing.json"); err == nil {
		t.Error("Load of a missing path should error")
	}
}

func TestNewLoaderUsesOsFs(t *testing.T) {
	loader := NewLoader()
	if got := loader.FS.Name(); got != "OsFs" {
		t.Fatalf("NewLoader backing filesystem = %q, want OsFs", got)
	}
}
