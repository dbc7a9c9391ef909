package runtime

import "testing"

func TestSetPropertyCreatesAndOverwrites(t *testing.T) {
	vmi := NewVM()
	o := NewObject(vmi.ObjectPrototype)

	ok, err := vmi.SetProperty(o, StringKey("x"), Number(1), o)
	if err != nil || !ok {
		t.Fatalf("SetProperty create = %v, %v", ok, err)
	}
	ok, err = vmi.SetProperty(o, StringKey("x"), Number(2), o)
	if err != nil || !ok {
		t.Fatalf("SetProperty overwrite = %v, %v", ok, err)
	}
	got, err := vmi.GetProperty(o, StringKey("x"))
	if err != nil || got.AsFloat() != 2 {
		t.Errorf("x = %v, %v, want 2", got, err)
	}
}

func TestSetPropertyRespectsNonWritable(t *testing.T) {
	vmi := NewVM()
	o := NewObject(vmi.ObjectPrototype)
	o.AsPlainObject().SetOwnFrozen("x", Number(1))

	ok, err := vmi.SetProperty(o, StringKey("x"), Number(2), o)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("write to a non-writable property should not take effect")
	}
	got, _ := vmi.GetProperty(o, StringKey("x"))
	if got.AsFloat() != 1 {
		t.Errorf("x = %v, want unchanged 1", got)
	}
}

func TestSetPropertyInvokesInheritedSetter(t *testing.T) {
	vmi := NewVM()
	proto := NewObject(vmi.ObjectPrototype)
	var captured Value
	setter := NewNativeFunction(vmi.FunctionPrototype, "set x", 1, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			captured = args[0]
			return Undefined, nil
		})
	proto.AsPlainObject().DefineAccessorOwn(StringKey("x"), Undefined, setter, true, true)
	child := NewObject(proto)

	ok, err := vmi.SetProperty(child, StringKey("x"), Number(7), child)
	if err != nil || !ok {
		t.Fatalf("SetProperty through setter = %v, %v", ok, err)
	}
	if captured.AsFloat() != 7 {
		t.Errorf("setter captured %v, want 7", captured)
	}
	if child.AsPlainObject().HasOwn(StringKey("x")) {
		t.Error("accessor write must not create a shadowing data property")
	}
}

func TestSetPropertyRefusedOnNonExtensibleReceiver(t *testing.T) {
	vmi := NewVM()
	o := NewObject(vmi.ObjectPrototype)
	vmi.PreventExtensions(o)

	ok, err := vmi.SetProperty(o, StringKey("fresh"), Number(1), o)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("fresh property on a non-extensible object should be refused")
	}
}

func TestHasPropertyWalksChainAndExotics(t *testing.T) {
	vmi := NewVM()
	proto := NewObject(vmi.ObjectPrototype)
	proto.AsPlainObject().SetOwn("inherited", Number(1))
	child := NewObject(proto)

	if !vmi.HasProperty(child, StringKey("inherited")) {
		t.Error("HasProperty should find inherited properties")
	}
	if vmi.HasProperty(child, StringKey("absent")) {
		t.Error("HasProperty found a property that does not exist")
	}

	arr := NewArrayFrom(vmi.ArrayPrototype, []Value{NewString("a")})
	if !vmi.HasProperty(arr, StringKey("length")) || !vmi.HasProperty(arr, StringKey("0")) {
		t.Error("HasProperty should see array length and indexed elements")
	}
}

func TestGetPropertyReadsArrayAndBoxedStringExotics(t *testing.T) {
	vmi := NewVM()
	arr := NewArrayFrom(vmi.ArrayPrototype, []Value{NewString("a"), NewString("b")})
	length, err := vmi.GetProperty(arr, StringKey("length"))
	if err != nil || length.AsFloat() != 2 {
		t.Errorf("array length = %v, %v, want 2", length, err)
	}
	first, err := vmi.GetProperty(arr, StringKey("0"))
	if err != nil || first.AsStringValue() != "a" {
		t.Errorf("array[0] = %v, %v, want %q", first, err, "a")
	}

	boxed := NewStringObject(vmi.StringPrototype, "hi")
	length, err = vmi.GetProperty(boxed, StringKey("length"))
	if err != nil || length.AsFloat() != 2 {
		t.Errorf("boxed string length = %v, %v, want 2", length, err)
	}
	ch, err := vmi.GetProperty(boxed, StringKey("1"))
	if err != nil || ch.AsStringValue() != "i" {
		t.Errorf("boxed string[1] = %v, %v, want %q", ch, err, "i")
	}
}

func TestDefinePropertyRejectsNonConfigurableRedefinition(t *testing.T) {
	vmi := NewVM()
	o := NewObject(vmi.ObjectPrototype)
	desc := PropertyDescriptor{Value: Number(1)}
	ok, err := vmi.DefineProperty(o, StringKey("x"), desc, true)
	if err != nil || !ok {
		t.Fatalf("initial define = %v, %v", ok, err)
	}

	redefine := PropertyDescriptor{Value: Number(2), Configurable: true}
	ok, err = vmi.DefineProperty(o, StringKey("x"), redefine, false)
	if err != nil || ok {
		t.Errorf("non-throwing redefinition = %v, %v, want false, nil", ok, err)
	}
	if _, err = vmi.DefineProperty(o, StringKey("x"), redefine, true); err == nil {
		t.Error("throwing redefinition should raise TypeError")
	}
}

func TestSealAndFreeze(t *testing.T) {
	vmi := NewVM()
	o := NewObject(vmi.ObjectPrototype)
	o.AsPlainObject().SetOwn("x", Number(1))

	if vmi.TestIntegrityLevel(o, Sealed) {
		t.Error("fresh object should not test as sealed")
	}
	vmi.SetIntegrityLevel(o, Sealed)
	if !vmi.TestIntegrityLevel(o, Sealed) {
		t.Error("sealed object should test as sealed")
	}
	if vmi.TestIntegrityLevel(o, Frozen) {
		t.Error("sealed-but-writable object should not test as frozen")
	}
	ok, err := vmi.SetProperty(o, StringKey("x"), Number(2), o)
	if err != nil || !ok {
		t.Errorf("sealed object keeps writable data properties: %v, %v", ok, err)
	}

	vmi.SetIntegrityLevel(o, Frozen)
	if !vmi.TestIntegrityLevel(o, Frozen) {
		t.Error("frozen object should test as frozen")
	}
	ok, err = vmi.SetProperty(o, StringKey("x"), Number(3), o)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("write to a frozen object's property should be refused")
	}
	if vmi.DeleteProperty(o, StringKey("x")) {
		t.Error("delete of a frozen (non-configurable) property should fail")
	}
}

func TestDeletePropertyRemovesOwnOnly(t *testing.T) {
	vmi := NewVM()
	proto := NewObject(vmi.ObjectPrototype)
	proto.AsPlainObject().SetOwn("shared", Number(1))
	child := NewObject(proto)
	child.AsPlainObject().SetOwn("own", Number(2))

	if !vmi.DeleteProperty(child, StringKey("own")) {
		t.Error("delete of an own configurable property should succeed")
	}
	if !vmi.DeleteProperty(child, StringKey("shared")) {
		t.Error("delete of an absent own property vacuously succeeds")
	}
	got, _ := vmi.GetProperty(child, StringKey("shared"))
	if got.AsFloat() != 1 {
		t.Error("delete must not reach through to the prototype")
	}
}
