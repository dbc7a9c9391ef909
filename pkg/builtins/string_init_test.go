package builtins

import (
	"testing"

	"strcore/pkg/runtime"
)

func TestStringCallForm(t *testing.T) {
	vmi := newTestVM(t)
	got, err := vmi.Call(vmi.StringConstructor, runtime.Undefined, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "" {
		t.Errorf("String() = %q, want empty", got.AsStringValue())
	}

	got, err = vmi.Call(vmi.StringConstructor, runtime.Undefined, []runtime.Value{runtime.Number(42)})
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "42" {
		t.Errorf("String(42) = %q, want %q", got.AsStringValue(), "42")
	}
}

// String(Symbol("x")) returns "Symbol(x)" via the call form's
// SymbolDescriptiveString path, whereas coercing a Symbol (as
// ToString does for e.g. `"" + Symbol("x")`) must raise.
func TestStringCallVsCoerceSymbolDistinction(t *testing.T) {
	vmi := newTestVM(t)
	sym := runtime.NewSymbol("x")

	got, err := vmi.Call(vmi.StringConstructor, runtime.Undefined, []runtime.Value{sym})
	if err != nil {
		t.Fatalf("String(Symbol(x)) should not raise: %v", err)
	}
	if got.AsStringValue() != "Symbol(x)" {
		t.Errorf("String(Symbol(x)) = %q, want %q", got.AsStringValue(), "Symbol(x)")
	}

	if _, err := runtime.ToString(vmi, sym); err == nil {
		t.Error("ToString(Symbol) should raise TypeError")
	}
}

func TestStringConstructForm(t *testing.T) {
	vmi := newTestVM(t)
	obj, err := NewStringObjectFromArgs(vmi, []runtime.Value{runtime.NewString("abc")})
	if err != nil {
		t.Fatal(err)
	}
	if !obj.IsStringObject() {
		t.Fatalf("new String(...) did not produce a String object")
	}
	if obj.AsStringObject().StringData != "abc" {
		t.Errorf("[[StringData]] = %q, want %q", obj.AsStringObject().StringData, "abc")
	}
	toStringMethod, err := vmi.GetProperty(vmi.StringPrototype, runtime.StringKey("toString"))
	if err != nil {
		t.Fatal(err)
	}
	primitive, err := vmi.Call(toStringMethod, obj, nil)
	if err != nil {
		t.Fatal(err)
	}
	if primitive.AsStringValue() != "abc" {
		t.Errorf("boxed.toString() = %q, want %q", primitive.AsStringValue(), "abc")
	}
}

func TestStringRaw(t *testing.T) {
	vmi := newTestVM(t)
	rawFn, err := vmi.GetProperty(vmi.StringConstructor, runtime.StringKey("raw"))
	if err != nil {
		t.Fatal(err)
	}

	template := runtime.NewObject(vmi.ObjectPrototype)
	rawArr := runtime.NewArrayFrom(vmi.ArrayPrototype, []runtime.Value{
		runtime.NewString("foo"), runtime.NewString("bar"),
	})
	template.AsPlainObject().SetOwn("raw", rawArr)

	got, err := vmi.Call(rawFn, runtime.Undefined, []runtime.Value{template, runtime.NewString("X")})
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "fooXbar" {
		t.Errorf("String.raw(...) = %q, want %q", got.AsStringValue(), "fooXbar")
	}
}

func TestFromCharCodeEmptyArgs(t *testing.T) {
	vmi := newTestVM(t)
	fromCharCode, err := vmi.GetProperty(vmi.StringConstructor, runtime.StringKey("fromCharCode"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := vmi.Call(fromCharCode, runtime.Undefined, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "" {
		t.Errorf("fromCharCode() = %q, want empty", got.AsStringValue())
	}
}
