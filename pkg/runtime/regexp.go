package runtime

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// RegExpObject is the minimal regular-expression object backing the
// entry points `match`, `matchAll`, `replace`, `search`, and `split`
// consume. It is backed by regexp2 rather than
// the standard library's regexp package because regexp2 implements a
// .NET-style backtracking engine with lookaround and backreferences,
// features ECMAScript regular expressions support and Go's RE2-based
// stdlib engine structurally cannot, so no amount of flag translation
// over stdlib regexp would let this bridge hand back spec-faithful
// matches for patterns that use them.
type RegExpObject struct {
	Base       *PlainObject
	re         *regexp2.Regexp
	source     string
	flags      string
	global     bool
	ignoreCase bool
	multiline  bool
	dotAll     bool
	sticky     bool
	lastIndex  int
}

// NewRegExp is the RegExpCreate collaborator: compiles pattern with
// the given JS flag string and returns a RegExp value rooted at proto.
func NewRegExp(proto Value, pattern, flags string) (Value, error) {
	opts := regexp2.None
	if strings.Contains(flags, "i") {
		opts |= regexp2.IgnoreCase
	}
	if strings.Contains(flags, "m") {
		opts |= regexp2.Multiline
	}
	if strings.Contains(flags, "s") {
		opts |= regexp2.Singleline
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return Undefined, fmt.Errorf("invalid regular expression /%s/%s: %w", pattern, flags, err)
	}
	ro := &RegExpObject{
		Base:       NewPlainObject(proto),
		re:         re,
		source:     pattern,
		flags:      flags,
		global:     strings.Contains(flags, "g"),
		ignoreCase: strings.Contains(flags, "i"),
		multiline:  strings.Contains(flags, "m"),
		dotAll:     strings.Contains(flags, "s"),
		sticky:     strings.Contains(flags, "y"),
	}
	return newRegExpValueFrom(ro), nil
}

func (r *RegExpObject) Source() string     { return r.source }
func (r *RegExpObject) Flags() string      { return r.flags }
func (r *RegExpObject) IsGlobal() bool     { return r.global }
func (r *RegExpObject) IsSticky() bool     { return r.sticky }
func (r *RegExpObject) LastIndex() int     { return r.lastIndex }
func (r *RegExpObject) SetLastIndex(i int) { r.lastIndex = i }

// MatchResult is a single regexp match: the whole match plus capture
// groups (nil entries for unmatched optional groups, mirroring
// ECMAScript's `undefined` captures), and its code-point offset in
// the subject string.
type MatchResult struct {
	Match  string
	Groups []*string
	Index  int
}

// Exec finds the first match at or after `from` (a code-point
// offset). Returns nil, nil on no match.
func (r *RegExpObject) Exec(s string, from int) (*MatchResult, error) {
	runes := []rune(s)
	if from < 0 {
		from = 0
	}
	if from > len(runes) {
		return nil, nil
	}
	m, err := r.re.FindRunesMatchStartingAt(runes, from)
	if err != nil {
		return nil, fmt.Errorf("regexp exec failed: %w", err)
	}
	if m == nil {
		return nil, nil
	}
	return toMatchResult(m), nil
}

// ExecAll returns every non-overlapping match across the whole
// string, used by the non-capturing fast paths of @@match (global)
// and @@split.
func (r *RegExpObject) ExecAll(s string) ([]*MatchResult, error) {
	runes := []rune(s)
	var results []*MatchResult
	m, err := r.re.FindRunesMatch(runes)
	if err != nil {
		return nil, fmt.Errorf("regexp exec failed: %w", err)
	}
	for m != nil {
		results = append(results, toMatchResult(m))
		m, err = r.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("regexp exec failed: %w", err)
		}
	}
	return results, nil
}

func toMatchResult(m *regexp2.Match) *MatchResult {
	groups := m.Groups()
	out := &MatchResult{Match: m.String(), Index: m.Index}
	// groups[0] is the whole match; capture groups start at index 1.
	for i := 1; i < len(groups); i++ {
		g := groups[i]
		if len(g.Captures) == 0 {
			out.Groups = append(out.Groups, nil)
			continue
		}
		val := g.String()
		out.Groups = append(out.Groups, &val)
	}
	return out
}
