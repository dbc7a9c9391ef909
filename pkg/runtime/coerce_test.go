package runtime

import (
	"math"
	"testing"
)

func TestToStringTable(t *testing.T) {
	vmi := NewVM()
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"undefined", Undefined, "undefined"},
		{"null", Null, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"number", Number(42), "42"},
		{"string", NewString("x"), "x"},
	}
	for _, c := range cases {
		got, err := ToString(vmi, c.v)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: ToString = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestToStringSymbolRaises(t *testing.T) {
	vmi := NewVM()
	if _, err := ToString(vmi, NewSymbol("x")); err == nil {
		t.Error("ToString(Symbol) should raise TypeError")
	}
}

func TestToIntegerOrInfinity(t *testing.T) {
	vmi := NewVM()
	cases := []struct {
		in   Value
		want float64
	}{
		{Number(math.NaN()), 0},
		{Number(math.Inf(1)), math.Inf(1)},
		{Number(math.Inf(-1)), math.Inf(-1)},
		{Number(3.7), 3},
		{Number(-3.7), -3},
	}
	for _, c := range cases {
		got, err := ToIntegerOrInfinity(vmi, c.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want && !(math.IsNaN(got) && math.IsNaN(c.want)) {
			t.Errorf("ToIntegerOrInfinity(%v) = %v, want %v", c.in.AsFloat(), got, c.want)
		}
	}
}

func TestToLengthClamps(t *testing.T) {
	vmi := NewVM()
	got, err := ToLength(vmi, Number(-5))
	if err != nil || got != 0 {
		t.Errorf("ToLength(-5) = %v, %v, want 0, nil", got, err)
	}
	got, err = ToLength(vmi, Number(math.Inf(1)))
	if err != nil || got != (1<<53-1) {
		t.Errorf("ToLength(Infinity) = %v, %v, want 2^53-1", got, err)
	}
}

func TestToUint32Wraps(t *testing.T) {
	vmi := NewVM()
	got, err := ToUint32(vmi, Number(-1))
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFFFFFFFF {
		t.Errorf("ToUint32(-1) = %d, want 0xFFFFFFFF", got)
	}
}

func TestRequireObjectCoercible(t *testing.T) {
	vmi := NewVM()
	if _, err := RequireObjectCoercible(vmi, Undefined); err == nil {
		t.Error("RequireObjectCoercible(undefined) should raise")
	}
	if _, err := RequireObjectCoercible(vmi, Null); err == nil {
		t.Error("RequireObjectCoercible(null) should raise")
	}
	v, err := RequireObjectCoercible(vmi, NewString("x"))
	if err != nil || !v.IsString() {
		t.Errorf("RequireObjectCoercible(string) = %v, %v", v, err)
	}
}

func TestToObjectBoxesString(t *testing.T) {
	vmi := NewVM()
	o, err := ToObject(vmi, NewString("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !o.IsStringObject() || o.AsStringObject().StringData != "abc" {
		t.Errorf("ToObject(string) = %v, want boxed String", o)
	}
}
