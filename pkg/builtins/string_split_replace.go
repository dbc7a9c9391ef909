package builtins

import (
	"strcore/pkg/runtime"
)

// installStringSplitAndReplace wires split, replace, and the
// regexp-delegating trio search/match/matchAll. Every one of these
// probes its argument for the corresponding @@-symbol method before
// falling back to constructing an internal RegExp. The probe
// happens before the argument is observed any other way, so a
// delegating argument is never coerced twice.
func installStringSplitAndReplace(vmi *runtime.VM, proto *runtime.PlainObject, def func(string, int, runtime.NativeFn)) {
	def("split", 2, stringSplit)
	def("replace", 2, stringReplace)
	def("search", 1, stringSearch)
	def("match", 1, stringMatch)
	def("matchAll", 1, stringMatchAll)
}

func stringSplit(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	o, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	sepArg := arg(args, 0)
	limitArg := arg(args, 1)

	if !sepArg.IsNullish() {
		splitter, err := vmi.GetMethod(sepArg, runtime.SymbolKey(vmi.Symbols.Split))
		if err != nil {
			return runtime.Empty, err
		}
		if !splitter.IsUndefined() {
			vmi.Log.Debug("split: delegating to @@split")
			return vmi.Call(splitter, sepArg, []runtime.Value{o, limitArg})
		}
	}

	s, err := runtime.ToString(vmi, o)
	if err != nil {
		return runtime.Empty, err
	}
	limit := uint32(0xFFFFFFFF)
	if !limitArg.IsUndefined() {
		limit, err = runtime.ToUint32(vmi, limitArg)
		if err != nil {
			return runtime.Empty, err
		}
	}
	if limit == 0 {
		return runtime.NewArrayFrom(vmi.ArrayPrototype, nil), nil
	}
	if sepArg.IsUndefined() {
		return runtime.NewArrayFrom(vmi.ArrayPrototype, []runtime.Value{runtime.NewString(s)}), nil
	}
	sep, err := runtime.ToString(vmi, sepArg)
	if err != nil {
		return runtime.Empty, err
	}

	runes := []rune(s)
	if len(runes) == 0 {
		if sep != "" {
			return runtime.NewArrayFrom(vmi.ArrayPrototype, []runtime.Value{runtime.NewString(s)}), nil
		}
		return runtime.NewArrayFrom(vmi.ArrayPrototype, nil), nil
	}
	if sep == "" {
		var out []runtime.Value
		for _, r := range runes {
			if uint32(len(out)) >= limit {
				break
			}
			out = append(out, runtime.NewString(string(r)))
		}
		return runtime.NewArrayFrom(vmi.ArrayPrototype, out), nil
	}

	sepRunes := []rune(sep)
	var out []runtime.Value
	start, pos := 0, 0
	for pos < len(runes) {
		end := SplitMatch(runes, pos, sepRunes)
		if end == -1 {
			pos++
			continue
		}
		out = append(out, runtime.NewString(string(runes[start:pos])))
		if uint32(len(out)) == limit {
			return runtime.NewArrayFrom(vmi.ArrayPrototype, out), nil
		}
		start = end
		pos = end
	}
	out = append(out, runtime.NewString(string(runes[start:])))
	return runtime.NewArrayFrom(vmi.ArrayPrototype, out), nil
}

func stringReplace(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	o, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	searchValue := arg(args, 0)
	replaceValue := arg(args, 1)

	if !searchValue.IsNullish() {
		replacer, err := vmi.GetMethod(searchValue, runtime.SymbolKey(vmi.Symbols.Replace))
		if err != nil {
			return runtime.Empty, err
		}
		if !replacer.IsUndefined() {
			vmi.Log.Debug("replace: delegating to @@replace")
			return vmi.Call(replacer, searchValue, []runtime.Value{o, replaceValue})
		}
	}

	s, err := runtime.ToString(vmi, o)
	if err != nil {
		return runtime.Empty, err
	}
	search, err := runtime.ToString(vmi, searchValue)
	if err != nil {
		return runtime.Empty, err
	}

	runes := []rune(s)
	searchRunes := []rune(search)
	position := -1
	for i := 0; i+len(searchRunes) <= len(runes); i++ {
		if runesEqual(runes[i:i+len(searchRunes)], searchRunes) {
			position = i
			break
		}
	}
	if position == -1 {
		return runtime.NewString(s), nil
	}

	var replacement string
	if replaceValue.IsCallable() {
		res, err := vmi.Call(replaceValue, runtime.Undefined, []runtime.Value{
			runtime.NewString(search), runtime.Number(float64(position)), runtime.NewString(s),
		})
		if err != nil {
			return runtime.Empty, err
		}
		replacement, err = runtime.ToString(vmi, res)
		if err != nil {
			return runtime.Empty, err
		}
	} else {
		// Pattern-substitution placeholders ($&, $1, ...) are not
		// applied on the plain string-search branch; see DESIGN.md.
		replacement, err = runtime.ToString(vmi, replaceValue)
		if err != nil {
			return runtime.Empty, err
		}
	}

	var out []rune
	out = append(out, runes[:position]...)
	out = append(out, []rune(replacement)...)
	out = append(out, runes[position+len(searchRunes):]...)
	return runtime.NewString(string(out)), nil
}

// delegateOrRegExp implements the shared shape of search/match/matchAll:
// if regexp is not nullish, probe for its symbolKey method and
// delegate; otherwise construct a fresh internal RegExp with flags
// and invoke the same well-known method on it.
func delegateOrRegExp(vmi *runtime.VM, s runtime.Value, regexp runtime.Value, symbolKey runtime.PropertyKey, flags string) (runtime.Value, error) {
	if !regexp.IsNullish() {
		method, err := vmi.GetMethod(regexp, symbolKey)
		if err != nil {
			return runtime.Empty, err
		}
		if !method.IsUndefined() {
			return vmi.Call(method, regexp, []runtime.Value{s})
		}
	}
	pattern := ""
	if !regexp.IsUndefined() {
		p, err := runtime.ToString(vmi, regexp)
		if err != nil {
			return runtime.Empty, err
		}
		pattern = p
	}
	re, err := runtime.NewRegExp(vmi.RegExpPrototype, pattern, flags)
	if err != nil {
		return runtime.Empty, err
	}
	method, err := vmi.GetMethod(re, symbolKey)
	if err != nil {
		return runtime.Empty, err
	}
	return vmi.Call(method, re, []runtime.Value{s})
}

func stringSearch(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	o, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	s, err := runtime.ToString(vmi, o)
	if err != nil {
		return runtime.Empty, err
	}
	return delegateOrRegExp(vmi, runtime.NewString(s), arg(args, 0), runtime.SymbolKey(vmi.Symbols.Search), "")
}

func stringMatch(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	o, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	s, err := runtime.ToString(vmi, o)
	if err != nil {
		return runtime.Empty, err
	}
	return delegateOrRegExp(vmi, runtime.NewString(s), arg(args, 0), runtime.SymbolKey(vmi.Symbols.Match), "")
}

func stringMatchAll(vmi *runtime.VM, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	o, err := runtime.RequireObjectCoercible(vmi, this)
	if err != nil {
		return runtime.Empty, err
	}
	s, err := runtime.ToString(vmi, o)
	if err != nil {
		return runtime.Empty, err
	}
	regexp := arg(args, 0)
	if regexp.IsRegExp() {
		r := regexp.AsRegExpObject()
		if !r.IsGlobal() {
			return runtime.Empty, vmi.NewTypeError("String.prototype.matchAll called with a non-global RegExp argument")
		}
	}
	return delegateOrRegExp(vmi, runtime.NewString(s), regexp, runtime.SymbolKey(vmi.Symbols.MatchAll), "g")
}
