package runtime

import "sync/atomic"

// SymbolObject is the heap representation of a Symbol primitive.
// Identity, not description, is what makes two symbols distinct;
// the monotonic id exists only so two symbols with the same
// description remain observably different objects.
type SymbolObject struct {
	description string
	id          uint64
}

var symbolCounter uint64

func newSymbolObject(description string) *SymbolObject {
	id := atomic.AddUint64(&symbolCounter, 1)
	return &SymbolObject{description: description, id: id}
}

func (s *SymbolObject) Description() string { return s.description }

// String renders "Symbol(desc)", used both for debugging and as the
// basis of SymbolDescriptiveString consumed by the String
// constructor's call form.
func (s *SymbolObject) String() string { return "Symbol(" + s.description + ")" }

// SymbolDescriptiveString implements the abstract operation of the
// same name: String(sym) (call form) uses this, while ToString(sym)
// (coercion) must raise instead; see coerce.go.
func SymbolDescriptiveString(s *SymbolObject) string { return s.String() }

// WellKnownSymbols holds the protocol-hook symbols. They are created
// once per VM so that identity comparisons (used by property lookup)
// are stable across the realm's lifetime.
type WellKnownSymbols struct {
	Iterator    Value
	ToPrimitive Value
	Match       Value
	MatchAll    Value
	Replace     Value
	Search      Value
	Split       Value
}

func newWellKnownSymbols() WellKnownSymbols {
	return WellKnownSymbols{
		Iterator:    NewSymbol("Symbol.iterator"),
		ToPrimitive: NewSymbol("Symbol.toPrimitive"),
		Match:       NewSymbol("Symbol.match"),
		MatchAll:    NewSymbol("Symbol.matchAll"),
		Replace:     NewSymbol("Symbol.replace"),
		Search:      NewSymbol("Symbol.search"),
		Split:       NewSymbol("Symbol.split"),
	}
}
