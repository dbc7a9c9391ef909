// Package builtins installs the String constructor and the
// String.prototype method surface onto a runtime.VM realm.
package builtins

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"strcore/pkg/runtime"
)

// whitespaceTable is the ECMA-262 WhiteSpace ∪ LineTerminator set,
// built once at package init as a unicode.RangeTable so
// trim/trimStart/trimEnd's boundary scan is one unicode.Is call.
// stdlib unicode.IsSpace matches a different set (it excludes U+FEFF,
// includes other categories), so it cannot substitute.
var whitespaceTable *unicode.RangeTable

func init() {
	runes := []rune{
		0x0009, 0x000A, 0x000B, 0x000C, 0x000D, 0x0020, 0x00A0, 0x1680,
		0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF,
	}
	for r := rune(0x2000); r <= 0x200A; r++ {
		runes = append(runes, r)
	}
	whitespaceTable = rangetable.New(runes...)
}

func isStringWhitespace(r rune) bool { return unicode.Is(whitespaceTable, r) }

// thisStringValue implements the helper of the same name: used only
// by toString/valueOf. Returns the operative primitive string when
// `this` already is one, or a boxed String object's [[StringData]];
// anything else is a TypeError.
func thisStringValue(vmi *runtime.VM, this runtime.Value) (string, error) {
	if this.IsString() {
		return this.AsStringValue(), nil
	}
	if this.IsStringObject() {
		return this.AsStringObject().StringData, nil
	}
	return "", vmi.NewTypeError("String.prototype.toString requires that 'this' be a String")
}

// stringMethodReceiver implements every other method's uniform
// preamble: RequireObjectCoercible(this), then ToString(this) to
// obtain the operative string.
func stringMethodReceiver(vmi *runtime.VM, this runtime.Value) (string, error) {
	v, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return "", err
	}
	return runtime.ToString(vmi, v)
}

// StringPad implements the abstract operation behind padStart/padEnd:
// tile fillString until it reaches exactly `target` runes, then
// prepend (atStart) or append it to s. Caller has already verified
// target > len(s) and fillString is non-empty.
func StringPad(s, fillString string, target int, atStart bool) string {
	fillRunes := []rune(fillString)
	need := target - len([]rune(s))
	if need <= 0 {
		return s
	}
	filler := make([]rune, 0, need)
	for len(filler) < need {
		filler = append(filler, fillRunes...)
	}
	filler = filler[:need]
	if atStart {
		return string(filler) + s
	}
	return s + string(filler)
}

// SplitMatch implements the abstract operation `split` scans with:
// tests whether `sep` occurs in the code-point sequence `s` starting
// exactly at `pos`; returns the end position on a hit, or -1 on a
// miss. s and sep are passed as rune slices so callers can share one
// decoding of the subject string across the whole scan.
func SplitMatch(s []rune, pos int, sep []rune) int {
	if pos+len(sep) > len(s) {
		return -1
	}
	for i, r := range sep {
		if s[pos+i] != r {
			return -1
		}
	}
	return pos + len(sep)
}

// CreateHTML implements the Annex B helper: RequireObjectCoercible +
// ToString(this), then wraps the result in <tag [attr="value"]>…</tag>,
// escaping `"` in the attribute value.
func CreateHTML(vmi *runtime.VM, this runtime.Value, tag, attribute string, value runtime.Value) (runtime.Value, error) {
	s, err := stringMethodReceiver(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	if attribute != "" {
		v, err := runtime.ToString(vmi, value)
		if err != nil {
			return runtime.Empty, err
		}
		b.WriteByte(' ')
		b.WriteString(attribute)
		b.WriteString(`="`)
		b.WriteString(strings.ReplaceAll(v, `"`, "&quot;"))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(s)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return runtime.NewString(b.String()), nil
}

func arg(args []runtime.Value, i int) runtime.Value {
	if i < len(args) {
		return args[i]
	}
	return runtime.Undefined
}

// clampInt clamps n into [lo, hi].
func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// clampFloatToInt clamps a float64 position (possibly ±∞, as
// ToIntegerOrInfinity produces) into [lo, hi] before narrowing to int.
// Narrowing an out-of-range float64 with int(n) directly is undefined
// for +Inf/-Inf on amd64 (int(math.Inf(1)) comes out as the minimum
// int, not hi), so every clamp against a code-point length must clamp
// the float first.
func clampFloatToInt(n float64, lo, hi int) int {
	if n < float64(lo) {
		return lo
	}
	if n > float64(hi) {
		return hi
	}
	return int(n)
}
