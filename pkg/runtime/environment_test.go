package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireThrows(t *testing.T, err error, name string) *ThrowCompletion {
	t.Helper()
	require.Error(t, err)
	tc, ok := AsThrow(err)
	require.True(t, ok, "expected throw completion, got %v", err)
	assert.Equal(t, name, ErrorName(tc.Value), "unexpected error %v", err)
	return tc
}

func TestDeclarativeRecordLifecycle(t *testing.T) {
	r := NewRealm()
	rec := NewDeclarativeRecord()

	require.NoError(t, rec.CreateMutableBinding(r, "x", false))
	require.NoError(t, rec.CreateImmutableBinding(r, "k", true))

	has, err := rec.HasBinding(r, "x")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = rec.GetBindingValue(r, "x", true)
	tc := requireThrows(t, err, "ReferenceError")
	assert.Contains(t, ErrorMessage(tc.Value), "before initialization")

	require.NoError(t, rec.InitializeBinding(r, "x", Number(1)))
	require.NoError(t, rec.InitializeBinding(r, "k", String("const")))
	require.NoError(t, rec.SetMutableBinding(r, "x", Number(2), true))

	v, err := rec.GetBindingValue(r, "x", true)
	require.NoError(t, err)
	assert.Equal(t, Number(2), v)

	err = rec.SetMutableBinding(r, "k", Number(3), false)
	requireThrows(t, err, "TypeError")

	assert.Equal(t, []string{"x", "k"}, rec.Names())

	deleted, err := rec.DeleteBinding(r, "x")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeclarativeRecordInvariants(t *testing.T) {
	r := NewRealm()
	rec := NewDeclarativeRecord()
	require.NoError(t, rec.CreateMutableBinding(r, "x", false))
	require.NoError(t, rec.InitializeBinding(r, "x", Undefined))

	assert.PanicsWithValue(t, InvariantError{Message: `binding "x" is already initialized`}, func() {
		_ = rec.InitializeBinding(r, "x", Number(1))
	})
	assert.Panics(t, func() {
		_ = rec.CreateMutableBinding(r, "x", false)
	})
}

func TestDeclarativeSetMutableBindingOnMissingName(t *testing.T) {
	r := NewRealm()
	rec := NewDeclarativeRecord()

	requireThrows(t, rec.SetMutableBinding(r, "ghost", Number(1), true), "ReferenceError")

	require.NoError(t, rec.SetMutableBinding(r, "ghost", Number(1), false))
	v, err := rec.GetBindingValue(r, "ghost", false)
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)
}

func TestObjectRecordHonoursUnscopables(t *testing.T) {
	r := NewRealm()
	obj := NewObject(r.ObjectPrototype)
	obj.CreateDataProperty(StringKey("hidden"), Number(1))
	obj.CreateDataProperty(StringKey("shown"), Number(2))
	blocked := NewObject(nil)
	blocked.CreateDataProperty(StringKey("hidden"), True)
	obj.CreateDataProperty(SymbolKey(r.SymbolUnscopables), blocked)

	env := NewObjectEnvironment(obj, r.GlobalEnv)
	rec := env.Record.(*ObjectRecord)

	has, err := rec.HasBinding(r, "hidden")
	require.NoError(t, err)
	assert.True(t, has)

	rec.WithEnvironment = true
	has, err = rec.HasBinding(r, "hidden")
	require.NoError(t, err)
	assert.False(t, has)
	has, err = rec.HasBinding(r, "shown")
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, obj, rec.WithBaseObject())

	v, err := rec.GetBindingValue(r, "missing", false)
	require.NoError(t, err)
	assert.Equal(t, Undefined, v)
	_, err = rec.GetBindingValue(r, "missing", true)
	requireThrows(t, err, "ReferenceError")
}

func TestFunctionRecordThisBinding(t *testing.T) {
	r := NewRealm()
	fn := r.NewFunctionObject(&FunctionData{ThisMode: ThisModeStrict, Environment: r.GlobalEnv})
	env := NewFunctionEnvironment(fn, nil)
	rec := env.Record.(*FunctionRecord)

	assert.Equal(t, r.GlobalEnv, env.Parent)
	assert.True(t, rec.HasThisBinding())
	assert.Equal(t, ThisUninitialized, rec.ThisBindingStatus)

	_, err := rec.GetThisBinding(r)
	requireThrows(t, err, "ReferenceError")

	_, err = rec.BindThisValue(r, Number(7))
	require.NoError(t, err)
	this, err := rec.GetThisBinding(r)
	require.NoError(t, err)
	assert.Equal(t, Number(7), this)

	_, err = rec.BindThisValue(r, Number(8))
	requireThrows(t, err, "ReferenceError")

	arrow := r.NewFunctionObject(&FunctionData{ThisMode: ThisModeLexical, Environment: env})
	arrowEnv := NewFunctionEnvironment(arrow, nil)
	assert.False(t, arrowEnv.Record.HasThisBinding())
	assert.Equal(t, env, arrowEnv.Parent)
}

func TestGlobalRecordKeepsNamesInOneSubRecord(t *testing.T) {
	r := NewRealm()
	g := r.GlobalEnv.Record.(*GlobalRecord)

	require.NoError(t, g.CreateGlobalVarBinding(r, "v", false))
	assert.True(t, g.HasVarDeclaration("v"))
	assert.True(t, r.GlobalObject.HasOwnProperty(StringKey("v")))

	requireThrows(t, g.CreateMutableBinding(r, "v", false), "TypeError")

	require.NoError(t, g.CreateMutableBinding(r, "lex", false))
	require.NoError(t, g.InitializeBinding(r, "lex", Number(1)))
	assert.True(t, g.HasLexicalDeclaration("lex"))
	assert.False(t, r.GlobalObject.HasOwnProperty(StringKey("lex")))
	requireThrows(t, g.CreateImmutableBinding(r, "lex", true), "TypeError")

	assert.Panics(t, func() { _ = g.CreateGlobalVarBinding(r, "lex", false) })

	assert.True(t, g.HasRestrictedGlobalProperty("undefined"))
	assert.False(t, g.CanDeclareGlobalFunction("undefined"))
	assert.True(t, g.CanDeclareGlobalFunction("fresh"))

	fn := r.NewNativeFunction("f", 0, func(*Realm, Value, []Value, *Object) (Value, error) { return Undefined, nil })
	require.NoError(t, g.CreateGlobalFunctionBinding(r, "f", fn, false))
	assert.Equal(t, []string{"v", "f"}, g.VarNames())

	this, err := g.GetThisBinding(r)
	require.NoError(t, err)
	assert.Equal(t, r.GlobalObject, this)
}

func TestGetIdentifierReferenceWalksChain(t *testing.T) {
	r := NewRealm()
	outer := NewDeclarativeEnvironment(r.GlobalEnv)
	inner := NewDeclarativeEnvironment(outer)
	require.NoError(t, outer.Record.CreateMutableBinding(r, "x", false))
	require.NoError(t, outer.Record.InitializeBinding(r, "x", String("outer")))

	ref, err := GetIdentifierReference(r, inner, "x", true)
	require.NoError(t, err)
	base, ok := ref.EnvironmentBase()
	require.True(t, ok)
	assert.Same(t, outer.Record, base)
	assert.True(t, ref.IsStrict())

	missing, err := GetIdentifierReference(r, inner, "nope", false)
	require.NoError(t, err)
	assert.True(t, missing.IsUnresolvable())
	assert.Nil(t, missing.Base())

	_, err = GetValue(r, missing)
	tc := requireThrows(t, err, "ReferenceError")
	assert.Equal(t, "nope is not defined", ErrorMessage(tc.Value))

	nilEnv, err := GetIdentifierReference(r, nil, "x", false)
	require.NoError(t, err)
	assert.True(t, nilEnv.IsUnresolvable())
}

func TestResolveThisBindingUsesNearestThisEnvironment(t *testing.T) {
	r := NewRealm()
	this, err := ResolveThisBinding(r)
	require.NoError(t, err)
	assert.Equal(t, r.GlobalObject, this)

	fn := r.NewFunctionObject(&FunctionData{ThisMode: ThisModeStrict, Environment: r.GlobalEnv})
	env := NewFunctionEnvironment(fn, nil)
	_, err = env.Record.(*FunctionRecord).BindThisValue(r, String("me"))
	require.NoError(t, err)
	block := NewDeclarativeEnvironment(env)
	r.PushContext(&ExecutionContext{Function: fn, LexicalEnvironment: block, VariableEnvironment: env})
	defer r.PopContext()

	this, err = ResolveThisBinding(r)
	require.NoError(t, err)
	assert.Equal(t, String("me"), this)
}
