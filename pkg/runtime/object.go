package runtime

import (
	"fmt"
	"sync"
)

// KeyKind distinguishes string-named from symbol-named properties.
type KeyKind uint8

const (
	KeyKindString KeyKind = iota
	KeyKindSymbol
)

// PropertyKey is a string or symbol property name.
type PropertyKey struct {
	kind   KeyKind
	name   string
	symbol *SymbolObject
}

func StringKey(name string) PropertyKey { return PropertyKey{kind: KeyKindString, name: name} }

func SymbolKey(sym Value) PropertyKey {
	return PropertyKey{kind: KeyKindSymbol, symbol: sym.AsSymbol()}
}

func (k PropertyKey) IsString() bool { return k.kind == KeyKindString }
func (k PropertyKey) IsSymbol() bool { return k.kind == KeyKindSymbol }

func (k PropertyKey) String() string {
	if k.kind == KeyKindSymbol {
		return k.symbol.String()
	}
	return k.name
}

// hash identifies the key in the transition table (combined there with
// the new field's attributes) and in the accessor maps: cheap, stable,
// and unique per (kind, identity).
func (k PropertyKey) hash() string {
	if k.kind == KeyKindSymbol {
		return fmt.Sprintf("y:%p", k.symbol)
	}
	return "s:" + k.name
}

func (k PropertyKey) equals(o PropertyKey) bool {
	if k.kind != o.kind {
		return false
	}
	if k.kind == KeyKindSymbol {
		return k.symbol == o.symbol
	}
	return k.name == o.name
}

// Field describes one property layout slot within a Shape.
type Field struct {
	offset       int
	key          PropertyKey
	writable     bool
	enumerable   bool
	configurable bool
	isAccessor   bool
}

// Shape is the immutable property-layout descriptor shared by every
// object with an identical key/attribute set. New own properties
// transition to a (possibly cached) successor shape rather than
// mutating this one in place. The transition cache below is a plain
// mutex-guarded map rather than the lock-free arena a bytecode VM's
// inline-cached hot path would want.
type Shape struct {
	parent      *Shape
	fields      []Field
	mu          sync.Mutex
	transitions map[string]*Shape
}

// emptyShape is the shared transition-graph root: every object starts
// here, so two objects built with the same key sequence end up on the
// same successor shape (the sharing TestShapeTransitionsAreCached pins).
var emptyShape = &Shape{transitions: make(map[string]*Shape)}

func rootShape() *Shape { return emptyShape }

func (s *Shape) find(key PropertyKey) (*Field, int) {
	for i := range s.fields {
		if s.fields[i].key.equals(key) {
			return &s.fields[i], i
		}
	}
	return nil, -1
}

// withAddedField returns the shape reached by adding a new data field,
// reusing a cached transition when one already exists for this key.
func (s *Shape) withAddedField(key PropertyKey, writable, enumerable, configurable bool) *Shape {
	h := fmt.Sprintf("%s|%t|%t|%t", key.hash(), writable, enumerable, configurable)
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, ok := s.transitions[h]; ok {
		return next
	}
	next := &Shape{
		parent: s,
		fields: append(append([]Field{}, s.fields...), Field{
			offset:       len(s.fields),
			key:          key,
			writable:     writable,
			enumerable:   enumerable,
			configurable: configurable,
		}),
		transitions: make(map[string]*Shape),
	}
	s.transitions[h] = next
	return next
}

func (s *Shape) withAddedAccessor(key PropertyKey, enumerable, configurable bool) *Shape {
	h := fmt.Sprintf("@%s|%t|%t", key.hash(), enumerable, configurable)
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, ok := s.transitions[h]; ok {
		return next
	}
	next := &Shape{
		parent: s,
		fields: append(append([]Field{}, s.fields...), Field{
			offset:       len(s.fields),
			key:          key,
			enumerable:   enumerable,
			configurable: configurable,
			isAccessor:   true,
		}),
		transitions: make(map[string]*Shape),
	}
	s.transitions[h] = next
	return next
}

// withUpdatedAttributes rebuilds a shape with one field's attributes
// changed in place (used by DefineProperty attribute rewrites, which
// are rare enough not to warrant a cache).
func (s *Shape) withUpdatedAttributes(idx int, f Field) *Shape {
	fields := append([]Field{}, s.fields...)
	fields[idx] = f
	return &Shape{parent: s.parent, fields: fields, transitions: make(map[string]*Shape)}
}

// PropertyDescriptor mirrors the ECMA-262 property descriptor record.
type PropertyDescriptor struct {
	Value        Value
	Get          Value
	Set          Value
	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool
}

// PlainObject is the ordinary object representation: a shape pointer
// plus a parallel slot array. Arrays, functions, regexps, and boxed
// strings all embed one of these as their shared property-storage
// substrate (see base() in value.go).
type PlainObject struct {
	shape      *Shape
	prototype  Value
	properties []Value
	getters    map[string]Value
	setters    map[string]Value
	extensible bool
}

// NewPlainObject allocates an object whose [[Prototype]] is proto.
func NewPlainObject(proto Value) *PlainObject {
	return &PlainObject{shape: rootShape(), prototype: proto, extensible: true}
}

// NewObject is the Value-returning convenience form used throughout
// the builtins package.
func NewObject(proto Value) Value { return newObjectValueFrom(NewPlainObject(proto)) }

func (o *PlainObject) Prototype() Value     { return o.prototype }
func (o *PlainObject) SetPrototype(p Value) { o.prototype = p }
func (o *PlainObject) Extensible() bool     { return o.extensible }
func (o *PlainObject) SetExtensible(e bool) { o.extensible = e }

// GetOwn looks up a direct (own) data or accessor value slot by
// string name, without walking the prototype chain and without
// invoking an accessor.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	return o.GetOwnByKey(StringKey(name))
}

func (o *PlainObject) GetOwnByKey(key PropertyKey) (Value, bool) {
	f, idx := o.shape.find(key)
	if f == nil {
		return Undefined, false
	}
	if f.isAccessor {
		return Undefined, true
	}
	if idx < len(o.properties) {
		return o.properties[idx], true
	}
	return Undefined, true
}

func (o *PlainObject) HasOwn(key PropertyKey) bool {
	_, idx := o.shape.find(key)
	return idx >= 0
}

// GetOwnDescriptor returns the full own-property record, if present.
func (o *PlainObject) GetOwnDescriptor(key PropertyKey) (PropertyDescriptor, bool) {
	f, idx := o.shape.find(key)
	if f == nil {
		return PropertyDescriptor{}, false
	}
	if f.isAccessor {
		h := key.hash()
		return PropertyDescriptor{
			Get:          o.getters[h],
			Set:          o.setters[h],
			Enumerable:   f.enumerable,
			Configurable: f.configurable,
			IsAccessor:   true,
		}, true
	}
	var v Value = Undefined
	if idx < len(o.properties) {
		v = o.properties[idx]
	}
	return PropertyDescriptor{
		Value:        v,
		Writable:     f.writable,
		Enumerable:   f.enumerable,
		Configurable: f.configurable,
	}, true
}

func (o *PlainObject) setSlot(key PropertyKey, value Value, writable, enumerable, configurable bool) {
	f, idx := o.shape.find(key)
	if f != nil && !f.isAccessor {
		o.properties[idx] = value
		return
	}
	o.shape = o.shape.withAddedField(key, writable, enumerable, configurable)
	o.properties = append(o.properties, value)
}

// SetOwn defines (or overwrites the value of) an own, writable,
// enumerable, configurable data property, the default JS property
// creation shape used by ordinary assignment.
func (o *PlainObject) SetOwn(name string, value Value) {
	o.setSlot(StringKey(name), value, true, true, true)
}

func (o *PlainObject) SetOwnByKey(key PropertyKey, value Value) {
	o.setSlot(key, value, true, true, true)
}

// SetOwnNonEnumerable installs a property with Writable+Configurable
// but not Enumerable, the attribute set every built-in prototype
// method carries.
func (o *PlainObject) SetOwnNonEnumerable(name string, value Value) {
	o.setSlot(StringKey(name), value, true, false, true)
}

func (o *PlainObject) SetOwnNonEnumerableByKey(key PropertyKey, value Value) {
	o.setSlot(key, value, true, false, true)
}

// SetOwnFrozen installs a non-writable, non-enumerable,
// non-configurable property (used for e.g. the constructor's
// "prototype").
func (o *PlainObject) SetOwnFrozen(name string, value Value) {
	o.setSlot(StringKey(name), value, false, false, false)
}

// DefineAccessorOwn installs an accessor pair under key.
func (o *PlainObject) DefineAccessorOwn(key PropertyKey, get, set Value, enumerable, configurable bool) {
	f, _ := o.shape.find(key)
	h := key.hash()
	if f == nil {
		o.shape = o.shape.withAddedAccessor(key, enumerable, configurable)
		// Keep the slot array aligned with the shape's field offsets;
		// accessor fields hold their values in the getter/setter maps,
		// but later data fields still index properties by offset.
		o.properties = append(o.properties, Undefined)
	}
	if o.getters == nil {
		o.getters = make(map[string]Value)
	}
	if o.setters == nil {
		o.setters = make(map[string]Value)
	}
	if !get.IsUndefined() {
		o.getters[h] = get
	}
	if !set.IsUndefined() {
		o.setters[h] = set
	}
}

// defineOwn installs or rewrites an own property from a full
// descriptor, attributes included. Validation (configurability,
// extensibility) is the caller's job; see (*VM).DefineProperty.
func (o *PlainObject) defineOwn(key PropertyKey, desc PropertyDescriptor) {
	f, idx := o.shape.find(key)
	if f == nil {
		if desc.IsAccessor {
			o.DefineAccessorOwn(key, desc.Get, desc.Set, desc.Enumerable, desc.Configurable)
			return
		}
		o.setSlot(key, desc.Value, desc.Writable, desc.Enumerable, desc.Configurable)
		return
	}
	o.shape = o.shape.withUpdatedAttributes(idx, Field{
		offset:       f.offset,
		key:          key,
		writable:     desc.Writable,
		enumerable:   desc.Enumerable,
		configurable: desc.Configurable,
		isAccessor:   desc.IsAccessor,
	})
	if desc.IsAccessor {
		h := key.hash()
		if o.getters == nil {
			o.getters = make(map[string]Value)
		}
		if o.setters == nil {
			o.setters = make(map[string]Value)
		}
		if !desc.Get.IsUndefined() {
			o.getters[h] = desc.Get
		}
		if !desc.Set.IsUndefined() {
			o.setters[h] = desc.Set
		}
		return
	}
	for idx >= len(o.properties) {
		o.properties = append(o.properties, Undefined)
	}
	o.properties[idx] = desc.Value
}

// DeleteOwn removes an own property, if configurable. Returns whether
// the property is now absent (true even if it was never present).
func (o *PlainObject) DeleteOwn(key PropertyKey) bool {
	f, idx := o.shape.find(key)
	if f == nil {
		return true
	}
	if !f.configurable {
		return false
	}
	// Rebuild a shape without this field; deletes are rare enough
	// that the fresh (uncached) shape is fine.
	fields := o.fieldsExcluding(idx)
	newShape := &Shape{parent: o.shape.parent, fields: fields, transitions: make(map[string]*Shape)}
	o.properties = append(append([]Value{}, o.properties[:idx]...), o.properties[idx+1:]...)
	for i := range newShape.fields {
		newShape.fields[i].offset = i
	}
	o.shape = newShape
	return true
}

func (o *PlainObject) fieldsExcluding(idx int) []Field {
	out := make([]Field, 0, len(o.shape.fields)-1)
	for i, f := range o.shape.fields {
		if i != idx {
			out = append(out, f)
		}
	}
	return out
}

// OwnKeys returns own property keys in insertion (shape field) order.
func (o *PlainObject) OwnKeys() []PropertyKey {
	keys := make([]PropertyKey, len(o.shape.fields))
	for i, f := range o.shape.fields {
		keys[i] = f.key
	}
	return keys
}
