package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceClassification(t *testing.T) {
	r := NewRealm()
	obj := NewObject(r.ObjectPrototype)

	tests := []struct {
		name       string
		ref        *Reference
		property   bool
		primitive  bool
		unresolved bool
		super      bool
	}{
		{"environment", NewEnvironmentReference(NewDeclarativeRecord(), "x", false), false, false, false, false},
		{"object", NewPropertyReference(obj, StringKey("p"), false), true, false, false, false},
		{"primitive", NewPropertyReference(String("abc"), StringKey("length"), false), true, true, false, false},
		{"unresolvable", NewUnresolvableReference("x", true), false, false, true, false},
		{"super", NewSuperReference(obj, StringKey("p"), true, Number(1)), true, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.property, tt.ref.IsPropertyReference())
			assert.Equal(t, tt.primitive, tt.ref.HasPrimitiveBase())
			assert.Equal(t, tt.unresolved, tt.ref.IsUnresolvable())
			assert.Equal(t, tt.super, tt.ref.IsSuper())
			assert.Equal(t, KindReference, tt.ref.Kind())
		})
	}
}

func TestGetValueBoxesPrimitiveBase(t *testing.T) {
	r := NewRealm()
	ref := NewPropertyReference(String("héllo"), StringKey("length"), false)
	v, err := GetValue(r, ref)
	require.NoError(t, err)
	assert.Equal(t, Number(5), v)
	assert.Equal(t, String("héllo"), ref.ThisValue())

	passthrough, err := GetValue(r, Number(3))
	require.NoError(t, err)
	assert.Equal(t, Number(3), passthrough)
}

func TestGetValueUsesSuperThisValueAsReceiver(t *testing.T) {
	r := NewRealm()
	base := NewObject(r.ObjectPrototype)
	var seen Value
	getter := r.NewNativeFunction("p", 0, func(_ *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		seen = this
		return String("ok"), nil
	})
	base.DefineOwnProperty(StringKey("p"), Property{Accessor: true, Getter: getter, Configurable: true})
	receiver := NewObject(nil)

	v, err := GetValue(r, NewSuperReference(base, StringKey("p"), true, receiver))
	require.NoError(t, err)
	assert.Equal(t, String("ok"), v)
	assert.Same(t, receiver, seen)
}

func TestPutValue(t *testing.T) {
	r := NewRealm()

	require.NoError(t, PutValue(r, NewUnresolvableReference("sloppy", false), Number(1)))
	v, err := r.GlobalObject.Get(r, StringKey("sloppy"), r.GlobalObject)
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)

	requireThrows(t, PutValue(r, NewUnresolvableReference("strictly", true), Number(1)), "ReferenceError")
	requireThrows(t, PutValue(r, Number(1), Number(2)), "ReferenceError")

	frozen := NewObject(r.ObjectPrototype)
	frozen.DefineOwnProperty(StringKey("p"), Property{Value: Number(1)})
	require.NoError(t, PutValue(r, NewPropertyReference(frozen, StringKey("p"), false), Number(2)))
	requireThrows(t, PutValue(r, NewPropertyReference(frozen, StringKey("p"), true), Number(2)), "TypeError")

	prim := String("s")
	require.NoError(t, PutValue(r, NewPropertyReference(prim, StringKey("extra"), false), Number(1)))
	assert.Equal(t, String("s"), prim)
}

func TestInitializeReferencedBindingRequiresEnvironmentBase(t *testing.T) {
	r := NewRealm()
	env := NewDeclarativeEnvironment(r.GlobalEnv)
	require.NoError(t, env.Record.CreateMutableBinding(r, "x", false))
	ref, err := GetIdentifierReference(r, env, "x", true)
	require.NoError(t, err)
	require.NoError(t, InitializeReferencedBinding(r, ref, Number(9)))

	v, err := GetValue(r, ref)
	require.NoError(t, err)
	assert.Equal(t, Number(9), v)

	assert.Panics(t, func() {
		_ = InitializeReferencedBinding(r, NewUnresolvableReference("x", true), Number(1))
	})
	assert.Panics(t, func() {
		_ = InitializeReferencedBinding(r, NewPropertyReference(NewObject(nil), StringKey("x"), true), Number(1))
	})
}
