package runtime

import "strconv"

// installRegExpPrototype wires the well-known-symbol methods
// (@@match, @@matchAll, @@replace, @@search, @@split) that
// String.prototype methods probe for and delegate to. The
// implementations are intentionally thin, built directly on
// RegExpObject's Exec/ExecAll (regexp.go).
func installRegExpPrototype(v *VM) {
	proto := v.RegExpPrototype.AsPlainObject()

	proto.DefineAccessorOwn(StringKey("flags"), NewNativeFunction(v.FunctionPrototype, "get flags", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			r := this.AsRegExpObject()
			if r == nil {
				return NewString(""), nil
			}
			return NewString(r.Flags()), nil
		}), Undefined, false, true)

	proto.SetOwnNonEnumerableByKey(SymbolKey(v.Symbols.Search), NewNativeFunction(v.FunctionPrototype, "[Symbol.search]", 1, false,
		regexpSymbolSearch))
	proto.SetOwnNonEnumerableByKey(SymbolKey(v.Symbols.Match), NewNativeFunction(v.FunctionPrototype, "[Symbol.match]", 1, false,
		regexpSymbolMatch))
	proto.SetOwnNonEnumerableByKey(SymbolKey(v.Symbols.MatchAll), NewNativeFunction(v.FunctionPrototype, "[Symbol.matchAll]", 1, false,
		regexpSymbolMatchAll))
	proto.SetOwnNonEnumerableByKey(SymbolKey(v.Symbols.Replace), NewNativeFunction(v.FunctionPrototype, "[Symbol.replace]", 2, false,
		regexpSymbolReplace))
	proto.SetOwnNonEnumerableByKey(SymbolKey(v.Symbols.Split), NewNativeFunction(v.FunctionPrototype, "[Symbol.split]", 2, false,
		regexpSymbolSplit))
}

func regexpSymbolSearch(vmi *VM, this Value, args []Value) (Value, error) {
	r := this.AsRegExpObject()
	if r == nil {
		return Empty, vmi.NewTypeError("Symbol.search called on non-RegExp receiver")
	}
	s, err := ToString(vmi, argOr(args, 0, Undefined))
	if err != nil {
		return Empty, err
	}
	m, err := r.Exec(s, 0)
	if err != nil {
		return Empty, err
	}
	if m == nil {
		return Number(-1), nil
	}
	return Number(float64(m.Index)), nil
}

func regexpSymbolMatch(vmi *VM, this Value, args []Value) (Value, error) {
	r := this.AsRegExpObject()
	if r == nil {
		return Empty, vmi.NewTypeError("Symbol.match called on non-RegExp receiver")
	}
	s, err := ToString(vmi, argOr(args, 0, Undefined))
	if err != nil {
		return Empty, err
	}
	if !r.IsGlobal() {
		m, err := r.Exec(s, 0)
		if err != nil {
			return Empty, err
		}
		if m == nil {
			return Null, nil
		}
		return matchResultArray(vmi, s, m), nil
	}
	matches, err := r.ExecAll(s)
	if err != nil {
		return Empty, err
	}
	if len(matches) == 0 {
		return Null, nil
	}
	elements := make([]Value, len(matches))
	for i, m := range matches {
		elements[i] = NewString(m.Match)
	}
	return NewArrayFrom(vmi.ArrayPrototype, elements), nil
}

func regexpSymbolMatchAll(vmi *VM, this Value, args []Value) (Value, error) {
	r := this.AsRegExpObject()
	if r == nil {
		return Empty, vmi.NewTypeError("Symbol.matchAll called on non-RegExp receiver")
	}
	s, err := ToString(vmi, argOr(args, 0, Undefined))
	if err != nil {
		return Empty, err
	}
	matches, err := r.ExecAll(s)
	if err != nil {
		return Empty, err
	}
	elements := make([]Value, len(matches))
	for i, m := range matches {
		elements[i] = matchResultArray(vmi, s, m)
	}
	return NewArrayFrom(vmi.ArrayPrototype, elements), nil
}

func regexpSymbolSplit(vmi *VM, this Value, args []Value) (Value, error) {
	r := this.AsRegExpObject()
	if r == nil {
		return Empty, vmi.NewTypeError("Symbol.split called on non-RegExp receiver")
	}
	s, err := ToString(vmi, argOr(args, 0, Undefined))
	if err != nil {
		return Empty, err
	}
	limit := uint32(0xFFFFFFFF)
	if len(args) > 1 && !args[1].IsUndefined() {
		limit, err = ToUint32(vmi, args[1])
		if err != nil {
			return Empty, err
		}
	}
	if limit == 0 {
		return NewArrayFrom(vmi.ArrayPrototype, nil), nil
	}
	matches, err := r.ExecAll(s)
	if err != nil {
		return Empty, err
	}
	runes := []rune(s)
	var out []Value
	last := 0
	for _, m := range matches {
		matchLen := len([]rune(m.Match))
		if m.Index == last && matchLen == 0 {
			continue
		}
		out = append(out, NewString(string(runes[last:m.Index])))
		if uint32(len(out)) >= limit {
			return NewArrayFrom(vmi.ArrayPrototype, out[:limit]), nil
		}
		for _, g := range m.Groups {
			if g == nil {
				out = append(out, Undefined)
			} else {
				out = append(out, NewString(*g))
			}
			if uint32(len(out)) >= limit {
				return NewArrayFrom(vmi.ArrayPrototype, out[:limit]), nil
			}
		}
		last = m.Index + matchLen
	}
	out = append(out, NewString(string(runes[last:])))
	if uint32(len(out)) > limit {
		out = out[:limit]
	}
	return NewArrayFrom(vmi.ArrayPrototype, out), nil
}

func regexpSymbolReplace(vmi *VM, this Value, args []Value) (Value, error) {
	r := this.AsRegExpObject()
	if r == nil {
		return Empty, vmi.NewTypeError("Symbol.replace called on non-RegExp receiver")
	}
	s, err := ToString(vmi, argOr(args, 0, Undefined))
	if err != nil {
		return Empty, err
	}
	replaceValue := argOr(args, 1, Undefined)

	var matches []*MatchResult
	if r.IsGlobal() {
		matches, err = r.ExecAll(s)
		if err != nil {
			return Empty, err
		}
	} else {
		m, err := r.Exec(s, 0)
		if err != nil {
			return Empty, err
		}
		if m != nil {
			matches = []*MatchResult{m}
		}
	}
	if len(matches) == 0 {
		return NewString(s), nil
	}

	runes := []rune(s)
	var b []rune
	last := 0
	for _, m := range matches {
		matchLen := len([]rune(m.Match))
		b = append(b, runes[last:m.Index]...)
		var replacement string
		if replaceValue.IsCallable() {
			callArgs := []Value{NewString(m.Match)}
			for _, g := range m.Groups {
				if g == nil {
					callArgs = append(callArgs, Undefined)
				} else {
					callArgs = append(callArgs, NewString(*g))
				}
			}
			callArgs = append(callArgs, Number(float64(m.Index)), NewString(s))
			res, err := vmi.Call(replaceValue, Undefined, callArgs)
			if err != nil {
				return Empty, err
			}
			replacement, err = ToString(vmi, res)
			if err != nil {
				return Empty, err
			}
		} else {
			tmpl, err := ToString(vmi, replaceValue)
			if err != nil {
				return Empty, err
			}
			replacement = GetSubstitution(tmpl, s, m)
		}
		b = append(b, []rune(replacement)...)
		last = m.Index + matchLen
	}
	b = append(b, runes[last:]...)
	return NewString(string(b)), nil
}

func matchResultArray(vmi *VM, subject string, m *MatchResult) Value {
	elements := make([]Value, 0, 1+len(m.Groups))
	elements = append(elements, NewString(m.Match))
	for _, g := range m.Groups {
		if g == nil {
			elements = append(elements, Undefined)
		} else {
			elements = append(elements, NewString(*g))
		}
	}
	arr := NewArrayFrom(vmi.ArrayPrototype, elements).AsArray()
	arr.Base.SetOwn("index", Number(float64(m.Index)))
	arr.Base.SetOwn("input", NewString(subject))
	return newArrayValueFrom(arr)
}

// GetSubstitution implements the ECMA-262 abstract operation of the
// same name for the `$`-pattern replacement grammar: `$$`, `$&`, and
// `$1`-`$9` against a match's capture groups. The preceding/following
// text forms and `$<name>` are not implemented.
func GetSubstitution(template, subject string, m *MatchResult) string {
	var b []rune
	r := []rune(template)
	for i := 0; i < len(r); i++ {
		if r[i] != '$' || i+1 >= len(r) {
			b = append(b, r[i])
			continue
		}
		next := r[i+1]
		switch {
		case next == '$':
			b = append(b, '$')
			i++
		case next == '&':
			b = append(b, []rune(m.Match)...)
			i++
		case next >= '1' && next <= '9':
			n, _ := strconv.Atoi(string(next))
			if n >= 1 && n <= len(m.Groups) && m.Groups[n-1] != nil {
				b = append(b, []rune(*m.Groups[n-1])...)
			}
			i++
		default:
			b = append(b, r[i])
		}
	}
	return string(b)
}
