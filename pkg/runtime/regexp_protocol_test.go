package runtime

import "testing"

func TestRegExpSymbolSearchAndMatch(t *testing.T) {
	vmi := NewVM()
	re, err := NewRegExp(vmi.RegExpPrototype, `b+`, "")
	if err != nil {
		t.Fatal(err)
	}
	searchMethod, err := vmi.GetProperty(re, SymbolKey(vmi.Symbols.Search))
	if err != nil {
		t.Fatal(err)
	}
	got, err := vmi.Call(searchMethod, re, []Value{NewString("abbbc")})
	if err != nil {
		t.Fatal(err)
	}
	if got.AsFloat() != 1 {
		t.Errorf("search index = %v, want 1", got.AsFloat())
	}

	matchMethod, err := vmi.GetProperty(re, SymbolKey(vmi.Symbols.Match))
	if err != nil {
		t.Fatal(err)
	}
	match, err := vmi.Call(matchMethod, re, []Value{NewString("abbbc")})
	if err != nil {
		t.Fatal(err)
	}
	if match.AsArray().Get(0).AsStringValue() != "bbb" {
		t.Errorf("match[0] = %v, want %q", match.AsArray().Get(0), "bbb")
	}
}

func TestRegExpSymbolReplaceGlobal(t *testing.T) {
	vmi := NewVM()
	re, err := NewRegExp(vmi.RegExpPrototype, `o`, "g")
	if err != nil {
		t.Fatal(err)
	}
	replaceMethod, err := vmi.GetProperty(re, SymbolKey(vmi.Symbols.Replace))
	if err != nil {
		t.Fatal(err)
	}
	got, err := vmi.Call(replaceMethod, re, []Value{NewString("foo"), NewString("0")})
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "f00" {
		t.Errorf("replace = %q, want %q", got.AsStringValue(), "f00")
	}
}

func TestGetSubstitutionBacksreferences(t *testing.T) {
	g1 := "X"
	m := &MatchResult{Match: "ab", Groups: []*string{&g1}, Index: 0}
	got := GetSubstitution("[$&]($1)($$)", "ab", m)
	want := "[ab](X)($)"
	if got != want {
		t.Errorf("GetSubstitution = %q, want %q", got, want)
	}
}
