package runtime

// StringObject is the boxed String wrapper: an ordinary object
// carrying a [[StringData]] internal slot, created by `new String(v)`
// and by ToObject on a primitive string.
type StringObject struct {
	Base       *PlainObject
	StringData string
}

// NewStringObject wraps a primitive string value behind an object
// whose [[Prototype]] is proto.
func NewStringObject(proto Value, primitive string) Value {
	return newStringObjectValue(&StringObject{Base: NewPlainObject(proto), StringData: primitive})
}
