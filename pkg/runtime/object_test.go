package runtime

import "testing"

func TestPlainObjectOwnProperties(t *testing.T) {
	po := NewPlainObject(Null)
	if po.HasOwn(StringKey("foo")) {
		t.Errorf("expected HasOwn(foo) false on new object")
	}
	po.SetOwn("foo", Number(42))
	if !po.HasOwn(StringKey("foo")) {
		t.Errorf("expected HasOwn(foo) true after SetOwn")
	}
	v, ok := po.GetOwn("foo")
	if !ok || v.AsFloat() != 42 {
		t.Fatalf("GetOwn(foo) = %v, %v, want 42, true", v, ok)
	}
	po.SetOwn("foo", Number(7))
	v2, ok2 := po.GetOwn("foo")
	if !ok2 || v2.AsFloat() != 7 {
		t.Errorf("overwritten GetOwn(foo) = %v, %v, want 7, true", v2, ok2)
	}
	keys := po.OwnKeys()
	if len(keys) != 1 || keys[0].String() != "foo" {
		t.Errorf("OwnKeys = %v, want [foo]", keys)
	}
}

func TestPrototypeChainWalk(t *testing.T) {
	vmi := NewVM()
	parent := NewObject(vmi.ObjectPrototype)
	parent.AsPlainObject().SetOwn("inherited", NewString("yes"))
	child := NewObject(parent)

	got, err := vmi.GetProperty(child, StringKey("inherited"))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsStringValue() != "yes" {
		t.Errorf("inherited property = %v, want %q", got, "yes")
	}
}

func TestShapeTransitionsAreCached(t *testing.T) {
	a := NewPlainObject(Null)
	b := NewPlainObject(Null)
	a.SetOwn("x", Number(1))
	b.SetOwn("x", Number(2))
	if a.shape != b.shape {
		t.Errorf("expected two objects with identical key sets to share a shape")
	}
}

func TestDeleteOwnRespectsConfigurable(t *testing.T) {
	po := NewPlainObject(Null)
	po.SetOwnFrozen("frozen", NewString("x"))
	if po.DeleteOwn(StringKey("frozen")) {
		t.Errorf("DeleteOwn on a non-configurable property should fail")
	}
	po.SetOwn("mutable", NewString("y"))
	if !po.DeleteOwn(StringKey("mutable")) {
		t.Errorf("DeleteOwn on a configurable property should succeed")
	}
	if po.HasOwn(StringKey("mutable")) {
		t.Errorf("property should be gone after DeleteOwn")
	}
}

func TestAccessorRoundTrip(t *testing.T) {
	vmi := NewVM()
	po := NewPlainObject(vmi.ObjectPrototype)
	getCount := 0
	getter := NewNativeFunction(vmi.FunctionPrototype, "get x", 0, false,
		func(vmi *VM, this Value, args []Value) (Value, error) {
			getCount++
			return Number(99), nil
		})
	po.DefineAccessorOwn(StringKey("x"), getter, Undefined, true, true)

	got, err := vmi.GetProperty(newObjectValueFrom(po), StringKey("x"))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsFloat() != 99 || getCount != 1 {
		t.Errorf("accessor get = %v (count %d), want 99 (count 1)", got, getCount)
	}
}
