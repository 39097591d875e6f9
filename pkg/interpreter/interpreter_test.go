package interpreter

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/binding"
	"lexenv/interpreter-go/pkg/runtime"
)

func newTestInterpreter(t *testing.T, opts ...func(*Options)) (*Interpreter, *bytes.Buffer, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	var out bytes.Buffer
	options := Options{Logger: logger, Stdout: &out}
	for _, opt := range opts {
		opt(&options)
	}
	return NewWithOptions(options), &out, hook
}

func run(t *testing.T, interp *Interpreter, body ...ast.Statement) runtime.Value {
	t.Helper()
	v, err := interp.EvaluateProgram(ast.Prog(body...))
	require.NoError(t, err)
	return v
}

func requireThrown(t *testing.T, err error, name, message string) {
	t.Helper()
	require.Error(t, err)
	tc, ok := runtime.AsThrow(err)
	require.True(t, ok, "expected a throw completion, got %v", err)
	assert.Equal(t, name, runtime.ErrorName(tc.Value))
	assert.Equal(t, message, runtime.ErrorMessage(tc.Value))
}

func globalValue(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	ref, err := runtime.ResolveBinding(interp.Realm(), name, true, interp.Realm().GlobalEnv)
	require.NoError(t, err)
	v, err := runtime.GetValue(interp.Realm(), ref)
	require.NoError(t, err)
	return v
}

func elements(t *testing.T, interp *Interpreter, v runtime.Value) []runtime.Value {
	t.Helper()
	arr, ok := v.(*runtime.Object)
	require.True(t, ok, "expected an array, got %s", runtime.Describe(v))
	require.True(t, runtime.IsArray(arr))
	n, err := runtime.LengthOfArrayLike(interp.Realm(), arr)
	require.NoError(t, err)
	out := make([]runtime.Value, n)
	for idx := range out {
		out[idx], err = arr.Get(interp.Realm(), runtime.IndexKey(idx), arr)
		require.NoError(t, err)
	}
	return out
}

func TestGlobalDeclarationsLandInTheirRecords(t *testing.T) {
	interp, _, hook := newTestInterpreter(t)
	run(t, interp,
		ast.Var(ast.ID("a"), ast.Num(1)),
		ast.Let(ast.ID("b"), ast.Num(2)),
		ast.Const(ast.ID("c"), ast.Num(3)),
		ast.FnDecl("f", nil, ast.Ret(ast.Num(4))),
	)

	global := interp.Realm().GlobalEnv.Record.(*runtime.GlobalRecord)
	obj := interp.Realm().GlobalObject
	assert.True(t, obj.HasOwnProperty(runtime.StringKey("a")))
	assert.True(t, obj.HasOwnProperty(runtime.StringKey("f")))
	assert.False(t, obj.HasOwnProperty(runtime.StringKey("b")))
	assert.True(t, global.HasLexicalDeclaration("b"))
	assert.True(t, global.HasLexicalDeclaration("c"))
	assert.Equal(t, []string{"a", "b", "c", "f"}, interp.GlobalNames())

	v := run(t, interp, ast.Expr(ast.Bin("+", ast.ID("a"), ast.ID("b"))))
	assert.Equal(t, runtime.Number(3), v)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "evaluate program")
	assert.Contains(t, messages, "global declaration instantiation")
}

func TestHoisting(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Expr(ast.Call(ast.ID("early"))),
		ast.FnDecl("early", nil, ast.Ret(ast.Str("hoisted"))),
	)
	assert.Equal(t, runtime.String("hoisted"), v)

	v = run(t, interp,
		ast.Expr(ast.Unary("typeof", ast.ID("later"))),
		ast.Var(ast.ID("later"), ast.Num(1)),
	)
	assert.Equal(t, runtime.String("undefined"), v)
}

func TestDuplicateLexicalNamesThrowSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		body []ast.Statement
	}{
		{"catch parameter", []ast.Statement{
			ast.Try(ast.Block(ast.Throw(ast.Arr(ast.Num(1), ast.Num(2)))), ast.ArrP(ast.ID("a"), ast.ID("a")), ast.Block(), nil),
		}},
		{"for-of let head", []ast.Statement{
			ast.ForOf(ast.Let(ast.ArrP(ast.ID("a"), ast.ID("a")), nil), ast.Arr()),
		}},
		{"var in block with let", []ast.Statement{
			ast.Block(ast.Let(ast.ID("a"), nil), ast.Var(ast.ID("a"), nil)),
		}},
		{"var in nested block", []ast.Statement{
			ast.Block(ast.Let(ast.ID("a"), nil), ast.Block(ast.Var(ast.ID("a"), nil))),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			interp, _, _ := newTestInterpreter(t)
			_, err := interp.EvaluateProgram(ast.Prog(tc.body...))
			requireThrown(t, err, "SyntaxError", "Identifier 'a' has already been declared")
		})
	}

	interp, _, _ := newTestInterpreter(t)
	run(t, interp, ast.Block(ast.Var(ast.ID("b"), nil), ast.Block(ast.Let(ast.ID("b"), nil))))
}

func TestDeclaratorTargets(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(ast.Let(ast.ObjP(ast.Short("a")), nil)))
	requireThrown(t, err, "SyntaxError", "Missing initializer in destructuring declaration")

	interp, _, _ = newTestInterpreter(t)
	run(t, interp, ast.Var(ast.ObjP(ast.Short("a")), ast.Obj(ast.Prop("a", ast.Num(7)))))
	assert.Equal(t, runtime.Number(7), globalValue(t, interp, "a"))

	interp, _, _ = newTestInterpreter(t)
	_, err = interp.EvaluateProgram(ast.Prog(ast.Let(ast.Member(ast.ID("o"), "p"), ast.Num(1))))
	var unsupportedErr *binding.UnsupportedPatternError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, ast.NodeMemberExpression, unsupportedErr.Node.NodeType())
}

func TestVarHoistingSkipsNestedFunctions(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	run(t, interp,
		ast.If(ast.Bool(false),
			ast.Block(ast.Try(ast.Block(ast.Var(ast.ID("inBlock"), ast.Num(1))), nil, nil, ast.Block())),
			nil),
		ast.FnDecl("inner", nil, ast.Var(ast.ID("local"), ast.Num(2))),
	)

	global := interp.Realm().GlobalEnv.Record.(*runtime.GlobalRecord)
	assert.True(t, global.HasVarDeclaration("inBlock"))
	assert.Equal(t, runtime.Undefined, globalValue(t, interp, "inBlock"))
	assert.False(t, global.HasVarDeclaration("local"))
}

func TestTemporalDeadZone(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Expr(ast.ID("x")),
		ast.Let(ast.ID("x"), ast.Num(1)),
	))
	requireThrown(t, err, "ReferenceError", "Cannot access 'x' before initialization")

	_, err = interp.EvaluateProgram(ast.Prog(
		ast.Block(
			ast.Expr(ast.Assign(ast.ID("y"), ast.Num(2))),
			ast.Let(ast.ID("y"), nil),
		),
	))
	requireThrown(t, err, "ReferenceError", "Cannot access 'y' before initialization")
}

func TestGlobalRedeclaration(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Let(ast.ID("x"), nil),
		ast.Var(ast.ID("x"), nil),
	))
	requireThrown(t, err, "SyntaxError", "Identifier 'x' has already been declared")

	run(t, interp, ast.Let(ast.ID("y"), ast.Num(1)))
	_, err = interp.EvaluateProgram(ast.Prog(ast.Var(ast.ID("y"), nil)))
	requireThrown(t, err, "SyntaxError", "Identifier 'y' has already been declared")

	_, err = interp.EvaluateProgram(ast.Prog(ast.Let(ast.ID("undefined"), nil)))
	requireThrown(t, err, "SyntaxError", "Identifier 'undefined' has already been declared")
}

func TestConstAssignment(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Const(ast.ID("k"), ast.Num(1)),
		ast.Expr(ast.Assign(ast.ID("k"), ast.Num(2))),
	))
	requireThrown(t, err, "TypeError", "Assignment to constant variable.")
	assert.Equal(t, runtime.Number(1), globalValue(t, interp, "k"))
}

func TestDestructuringDeclaration(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	run(t, interp,
		ast.Const(
			ast.ObjP(
				ast.Short("a"),
				ast.PropP("b", ast.ArrP(ast.ID("c"), nil, ast.Default(ast.ID("d"), ast.Num(5)))),
				ast.Rest(ast.ID("rest")),
			),
			ast.Obj(
				ast.Prop("a", ast.Num(1)),
				ast.Prop("b", ast.Arr(ast.Num(2), ast.Num(3))),
				ast.Prop("e", ast.Num(6)),
				ast.Prop("f", ast.Num(7)),
			),
		),
	)
	assert.Equal(t, runtime.Number(1), globalValue(t, interp, "a"))
	assert.Equal(t, runtime.Number(2), globalValue(t, interp, "c"))
	assert.Equal(t, runtime.Number(5), globalValue(t, interp, "d"))

	keys := run(t, interp, ast.Expr(ast.Call(ast.Member(ast.ID("Object"), "keys"), ast.ID("rest"))))
	assert.Equal(t, []runtime.Value{runtime.String("e"), runtime.String("f")}, elements(t, interp, keys))
}

func TestDestructuringDeclarationNeedsInitializer(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(ast.Let(ast.ObjP(ast.Short("a")), nil)))
	requireThrown(t, err, "SyntaxError", "Missing initializer in destructuring declaration")
}

func TestDestructuringAssignmentToMembers(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Let(ast.ID("o"), ast.Obj()),
		ast.Expr(ast.Assign(
			ast.ArrP(ast.Member(ast.ID("o"), "x"), ast.Member(ast.ID("o"), "y")),
			ast.Arr(ast.Num(1), ast.Num(2)),
		)),
		ast.Expr(ast.Bin("+", ast.Member(ast.ID("o"), "x"), ast.Member(ast.ID("o"), "y"))),
	)
	assert.Equal(t, runtime.Number(3), v)
}

func TestLetLoopClosuresCaptureEachIteration(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Let(ast.ID("fs"), ast.Arr()),
		ast.NewForStatement(
			ast.Let(ast.ID("i"), ast.Num(0)),
			ast.Bin("<", ast.ID("i"), ast.Num(3)),
			ast.Inc(ast.ID("i")),
			ast.Block(ast.Expr(ast.Call(ast.Member(ast.ID("fs"), "push"), ast.Arrow(nil, ast.ID("i"))))),
		),
		ast.Expr(ast.Arr(
			ast.Call(ast.Index(ast.ID("fs"), ast.Num(0))),
			ast.Call(ast.Index(ast.ID("fs"), ast.Num(2))),
		)),
	)
	assert.Equal(t, []runtime.Value{runtime.Number(0), runtime.Number(2)}, elements(t, interp, v))
}

// countingSource yields 1..n and counts calls to its return method.
func countingSource(r *runtime.Realm, n int, closed *int) *runtime.Object {
	iterable := runtime.NewObject(r.ObjectPrototype)
	method := r.NewNativeFunction("[Symbol.iterator]", 0, func(r *runtime.Realm, _ runtime.Value, _ []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		it := runtime.NewObject(r.ObjectPrototype)
		count := 0
		r.DefineMethod(it, "next", 0, func(r *runtime.Realm, _ runtime.Value, _ []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
			count++
			if count > n {
				return runtime.CreateIterResultObject(r, runtime.Undefined, true), nil
			}
			return runtime.CreateIterResultObject(r, runtime.Number(float64(count)), false), nil
		})
		r.DefineMethod(it, "return", 0, func(r *runtime.Realm, _ runtime.Value, _ []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
			*closed++
			return runtime.CreateIterResultObject(r, runtime.Undefined, true), nil
		})
		return it, nil
	})
	iterable.DefineOwnProperty(runtime.SymbolKey(r.SymbolIterator), runtime.Property{Value: method, Writable: true, Configurable: true})
	return iterable
}

func TestForOfClosesIteratorOnEarlyExit(t *testing.T) {
	t.Run("break", func(t *testing.T) {
		interp, _, _ := newTestInterpreter(t)
		closed := 0
		interp.Realm().DefineGlobal("source", countingSource(interp.Realm(), 5, &closed))
		run(t, interp,
			ast.Let(ast.ID("seen"), ast.Num(0)),
			ast.ForOf(ast.Let(ast.ID("x"), nil), ast.ID("source"),
				ast.Expr(ast.AssignOp("+=", ast.ID("seen"), ast.ID("x"))),
				ast.If(ast.Bin("===", ast.ID("x"), ast.Num(2)), ast.Break(), nil),
			),
		)
		assert.Equal(t, 1, closed)
		assert.Equal(t, runtime.Number(3), globalValue(t, interp, "seen"))
	})

	t.Run("exhaustion", func(t *testing.T) {
		interp, _, _ := newTestInterpreter(t)
		closed := 0
		interp.Realm().DefineGlobal("source", countingSource(interp.Realm(), 3, &closed))
		run(t, interp, ast.ForOf(ast.Const(ast.ID("x"), nil), ast.ID("source")))
		assert.Equal(t, 0, closed)
	})

	t.Run("throw", func(t *testing.T) {
		interp, _, _ := newTestInterpreter(t)
		closed := 0
		interp.Realm().DefineGlobal("source", countingSource(interp.Realm(), 3, &closed))
		_, err := interp.EvaluateProgram(ast.Prog(
			ast.ForOf(ast.Const(ast.ID("x"), nil), ast.ID("source"), ast.Throw(ast.ID("x"))),
		))
		tc, ok := runtime.AsThrow(err)
		require.True(t, ok)
		assert.Equal(t, runtime.Number(1), tc.Value)
		assert.Equal(t, 1, closed)
	})

	t.Run("destructuring head", func(t *testing.T) {
		interp, _, _ := newTestInterpreter(t)
		v := run(t, interp,
			ast.Let(ast.ID("sum"), ast.Num(0)),
			ast.ForOf(ast.Const(ast.ArrP(ast.ID("k"), ast.ID("n")), nil),
				ast.Arr(ast.Arr(ast.Str("a"), ast.Num(1)), ast.Arr(ast.Str("b"), ast.Num(2))),
				ast.Expr(ast.AssignOp("+=", ast.ID("sum"), ast.ID("n"))),
			),
			ast.Expr(ast.ID("sum")),
		)
		assert.Equal(t, runtime.Number(3), v)
	})
}

func TestForInEnumeratesKeys(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Let(ast.ID("keys"), ast.Arr()),
		ast.ForIn(ast.Const(ast.ID("k"), nil), ast.Obj(ast.Prop("a", ast.Num(1)), ast.Prop("b", ast.Num(2))),
			ast.Expr(ast.Call(ast.Member(ast.ID("keys"), "push"), ast.ID("k"))),
		),
		ast.Expr(ast.Call(ast.Member(ast.ID("keys"), "join"), ast.Str(","))),
	)
	assert.Equal(t, runtime.String("a,b"), v)
}

func TestFunctionParameters(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	run(t, interp, ast.FnDecl("f",
		ast.Params(ast.ID("a"), ast.Default(ast.ID("b"), ast.Bin("+", ast.ID("a"), ast.Num(1))), ast.Rest(ast.ID("rest"))),
		ast.Ret(ast.Arr(ast.ID("a"), ast.ID("b"), ast.ID("rest"), ast.Member(ast.ID("arguments"), "length"))),
	))

	got := elements(t, interp, run(t, interp, ast.Expr(ast.Call(ast.ID("f"), ast.Num(1)))))
	require.Len(t, got, 4)
	assert.Equal(t, runtime.Number(1), got[0])
	assert.Equal(t, runtime.Number(2), got[1])
	assert.Empty(t, elements(t, interp, got[2]))
	assert.Equal(t, runtime.Number(1), got[3])

	got = elements(t, interp, run(t, interp, ast.Expr(ast.Call(ast.ID("f"), ast.Num(1), ast.Num(5), ast.Num(6), ast.Num(7)))))
	assert.Equal(t, runtime.Number(5), got[1])
	assert.Equal(t, []runtime.Value{runtime.Number(6), runtime.Number(7)}, elements(t, interp, got[2]))
	assert.Equal(t, runtime.Number(4), got[3])

	length := run(t, interp, ast.Expr(ast.Member(ast.ID("f"), "length")))
	assert.Equal(t, runtime.Number(1), length)
}

func TestParameterExpressionsGetTheirOwnScope(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.FnDecl("g",
			ast.Params(ast.ID("a"), ast.Default(ast.ID("read"), ast.Arrow(nil, ast.ID("a")))),
			ast.Var(ast.ID("a"), ast.Num(2)),
			ast.Ret(ast.Arr(ast.ID("a"), ast.Call(ast.ID("read")))),
		),
		ast.Expr(ast.Call(ast.ID("g"), ast.Num(1))),
	)
	assert.Equal(t, []runtime.Value{runtime.Number(2), runtime.Number(1)}, elements(t, interp, v))
}

func TestDuplicateParameters(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.FnDecl("h", ast.Params(ast.ID("x"), ast.ID("x")), ast.Ret(ast.ID("x"))),
		ast.Expr(ast.Call(ast.ID("h"), ast.Num(1), ast.Num(2))),
	)
	assert.Equal(t, runtime.Number(2), v)

	strict, _, _ := newTestInterpreter(t)
	_, err := strict.EvaluateProgram(ast.StrictProg(
		ast.FnDecl("h", ast.Params(ast.ID("x"), ast.ID("x"))),
		ast.Expr(ast.Call(ast.ID("h"))),
	))
	requireThrown(t, err, "SyntaxError", "Duplicate parameter name not allowed in this context")
}

func TestThisBinding(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.FnDecl("self", nil, ast.Ret(ast.This())),
		ast.Expr(ast.Bin("===", ast.Call(ast.ID("self")), ast.ID("globalThis"))),
	)
	assert.Equal(t, runtime.True, v)

	strict, _, _ := newTestInterpreter(t)
	v, err := strict.EvaluateProgram(ast.StrictProg(
		ast.FnDecl("self", nil, ast.Ret(ast.This())),
		ast.Expr(ast.Call(ast.ID("self"))),
	))
	require.NoError(t, err)
	assert.Equal(t, runtime.Undefined, v)

	v = run(t, interp,
		ast.Let(ast.ID("o"), ast.Obj(
			ast.Prop("v", ast.Num(7)),
			ast.Method("get", ast.Fn(nil, ast.Ret(ast.Member(ast.This(), "v")))),
			ast.Method("viaArrow", ast.Fn(nil, ast.Ret(ast.Call(ast.Arrow(nil, ast.Member(ast.This(), "v")))))),
		)),
		ast.Expr(ast.Bin("+", ast.Call(ast.Member(ast.ID("o"), "get")), ast.Call(ast.Member(ast.ID("o"), "viaArrow")))),
	)
	assert.Equal(t, runtime.Number(14), v)
}

func TestNamedFunctionExpressionBinding(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	factorial := ast.NamedFn("inner", ast.Params(ast.ID("n")),
		ast.Ret(ast.Cond(
			ast.Bin("<=", ast.ID("n"), ast.Num(1)),
			ast.Num(1),
			ast.Bin("*", ast.ID("n"), ast.Call(ast.ID("inner"), ast.Bin("-", ast.ID("n"), ast.Num(1)))),
		)),
	)
	v := run(t, interp,
		ast.Let(ast.ID("fact"), factorial),
		ast.Expr(ast.Call(ast.ID("fact"), ast.Num(5))),
	)
	assert.Equal(t, runtime.Number(120), v)
	assert.Equal(t, runtime.String("undefined"), run(t, interp, ast.Expr(ast.Unary("typeof", ast.ID("inner")))))
	assert.Equal(t, runtime.String("inner"), run(t, interp, ast.Expr(ast.Member(ast.ID("fact"), "name"))))
}

func TestAnonymousFunctionsAreNamedAfterTheirBinding(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Const(ast.ID("arrow"), ast.Arrow(nil, ast.Num(1))),
		ast.Let(ast.ObjP(ast.ShortDefault("fallback", ast.Fn(nil))), ast.Obj()),
		ast.Expr(ast.Arr(ast.Member(ast.ID("arrow"), "name"), ast.Member(ast.ID("fallback"), "name"))),
	)
	assert.Equal(t, []runtime.Value{runtime.String("arrow"), runtime.String("fallback")}, elements(t, interp, v))
}

func TestUnresolvableReferences(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	assert.Equal(t, runtime.String("undefined"), run(t, interp, ast.Expr(ast.Unary("typeof", ast.ID("nope")))))

	_, err := interp.EvaluateProgram(ast.Prog(ast.Expr(ast.ID("nope"))))
	requireThrown(t, err, "ReferenceError", "nope is not defined")

	run(t, interp, ast.Expr(ast.Assign(ast.ID("fresh"), ast.Num(1))))
	assert.True(t, interp.Realm().GlobalObject.HasOwnProperty(runtime.StringKey("fresh")))

	_, err = interp.EvaluateProgram(ast.StrictProg(ast.Expr(ast.Assign(ast.ID("fresh2"), ast.Num(1)))))
	requireThrown(t, err, "ReferenceError", "fresh2 is not defined")
}

func TestCatchParameterDestructuring(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	v := run(t, interp,
		ast.Try(
			ast.Block(ast.Throw(ast.Obj(ast.Prop("code", ast.Num(42))))),
			ast.ObjP(ast.Short("code")),
			ast.Block(ast.Expr(ast.ID("code"))),
			nil,
		),
	)
	assert.Equal(t, runtime.Number(42), v)
	assert.Equal(t, runtime.String("undefined"), run(t, interp, ast.Expr(ast.Unary("typeof", ast.ID("code")))))
}

func TestConsoleLogFormatsValues(t *testing.T) {
	interp, out, _ := newTestInterpreter(t)
	run(t, interp, ast.Expr(ast.Call(ast.Member(ast.ID("console"), "log"),
		ast.Str("hi"),
		ast.Num(1),
		ast.Arr(ast.Num(1), ast.Str("a")),
		ast.Obj(ast.Prop("k", ast.Bool(true))),
		ast.Arrow(nil, ast.Num(1)),
	)))
	assert.Equal(t, "hi 1 [ 1, 'a' ] { k: true } [Function (anonymous)]\n", out.String())
}

func TestTopLevelControlFlowIsRejected(t *testing.T) {
	interp, _, _ := newTestInterpreter(t)
	_, err := interp.EvaluateProgram(ast.Prog(ast.Ret(ast.Num(1))))
	require.EqualError(t, err, "interpreter: illegal return statement")

	_, err = interp.EvaluateProgram(ast.Prog(ast.Break()))
	require.EqualError(t, err, "interpreter: illegal break statement")
}

func TestCallDepthLimit(t *testing.T) {
	interp, _, _ := newTestInterpreter(t, func(o *Options) { o.MaxCallDepth = 40 })
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.FnDecl("loop", nil, ast.Ret(ast.Call(ast.ID("loop")))),
		ast.Expr(ast.Call(ast.ID("loop"))),
	))
	requireThrown(t, err, "RangeError", "Maximum call stack size exceeded")
	assert.Equal(t, 1, interp.Realm().ContextDepth())
}
