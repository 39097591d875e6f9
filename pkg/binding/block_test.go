package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

func TestBlockDeclarationInstantiation(t *testing.T) {
	b, _ := newTestBinder()
	r := b.Realm()
	body := []ast.Statement{
		ast.Let(ast.ID("x"), ast.Call(ast.ID("f"))),
		ast.Const(ast.ObjP(ast.Short("y"), ast.Rest(ast.ID("z"))), ast.Obj()),
		ast.Var(ast.ID("hoisted"), nil),
		ast.FnDecl("f", nil, ast.Ret(ast.Num(1))),
	}
	env := runtime.NewDeclarativeEnvironment(r.GlobalEnv)
	require.NoError(t, b.BlockDeclarationInstantiation(false, body, env))

	rec := env.Record.(*runtime.DeclarativeRecord)
	assert.Equal(t, []string{"x", "y", "z", "f"}, rec.Names())
	assert.False(t, rec.IsInitialized("x"))
	assert.False(t, rec.IsMutable("y"))
	assert.False(t, rec.IsMutable("z"))

	// the function is callable before any statement of the block runs
	assert.True(t, rec.IsInitialized("f"))
	fn := lookup(t, b, env, "f")
	result, err := runtime.Call(r, fn, runtime.Undefined)
	require.NoError(t, err)
	assert.Equal(t, runtime.Number(42), result)

	_, err = env.Record.GetBindingValue(r, "x", true)
	requireThrows(t, err, "ReferenceError")
	err = env.Record.InitializeBinding(r, "y", runtime.Number(1))
	require.NoError(t, err)
	requireThrows(t, env.Record.SetMutableBinding(r, "y", runtime.Number(2), false), "TypeError")
}

func TestBlockDeclarationInstantiationRedeclaration(t *testing.T) {
	b, _ := newTestBinder()
	r := b.Realm()
	body := []ast.Statement{
		ast.Let(ast.ID("x"), nil),
		ast.Let(ast.ID("x"), nil),
	}
	err := b.BlockDeclarationInstantiation(false, body, runtime.NewDeclarativeEnvironment(r.GlobalEnv))
	requireThrows(t, err, "SyntaxError")
	tc, _ := runtime.AsThrow(err)
	assert.Equal(t, "Identifier 'x' has already been declared", runtime.ErrorMessage(tc.Value))

	outer := runtime.NewDeclarativeEnvironment(r.GlobalEnv)
	require.NoError(t, b.BlockDeclarationInstantiation(false, body[:1], outer))
	inner := runtime.NewDeclarativeEnvironment(outer)
	require.NoError(t, b.BlockDeclarationInstantiation(false, body[1:], inner))

	err = b.BlockDeclarationInstantiation(true, []ast.Statement{
		ast.FnDecl("g", nil),
		ast.Const(ast.ID("g"), ast.Num(1)),
	}, runtime.NewDeclarativeEnvironment(r.GlobalEnv))
	requireThrows(t, err, "SyntaxError")
}

func TestBlockDeclarationInstantiationRequiresDeclarativeRecord(t *testing.T) {
	b, _ := newTestBinder()
	r := b.Realm()
	assert.Panics(t, func() {
		_ = b.BlockDeclarationInstantiation(false, nil, r.GlobalEnv)
	})
}

func TestBlockDeclarationInstantiationInFunctionScope(t *testing.T) {
	b, _ := newTestBinder()
	r := b.Realm()
	fn := r.NewFunctionObject(&runtime.FunctionData{
		Environment: r.GlobalEnv,
		Call: func(*runtime.Realm, runtime.Value, []runtime.Value, *runtime.Object) (runtime.Value, error) {
			return runtime.Undefined, nil
		},
	})
	env := runtime.NewFunctionEnvironment(fn, runtime.Undefined)

	require.NoError(t, b.BlockDeclarationInstantiation(false, []ast.Statement{ast.Let(ast.ID("x"), nil)}, env))
	has, err := env.Record.HasBinding(r, "x")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestDeclareLexicalNames(t *testing.T) {
	b, _ := newTestBinder()
	r := b.Realm()
	env := runtime.NewDeclarativeEnvironment(r.GlobalEnv)
	require.NoError(t, b.DeclareLexicalNames(ast.ArrP(ast.ID("a"), ast.ObjP(ast.Short("b"))), env))
	assert.Equal(t, []string{"a", "b"}, env.Record.(*runtime.DeclarativeRecord).Names())

	err := b.DeclareLexicalNames(ast.ArrP(ast.ID("c"), ast.ID("c")), runtime.NewDeclarativeEnvironment(r.GlobalEnv))
	requireThrows(t, err, "SyntaxError")
	tc, _ := runtime.AsThrow(err)
	assert.Equal(t, "Identifier 'c' has already been declared", runtime.ErrorMessage(tc.Value))
}
