package interpreter

import (
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCallExpression(n *ast.CallExpression) (runtime.Value, error) {
	raw, err := i.evaluateExpression(n.Callee)
	if err != nil {
		return nil, err
	}
	var this runtime.Value = runtime.Undefined
	if ref, ok := raw.(*runtime.Reference); ok {
		if ref.IsPropertyReference() {
			this = ref.ThisValue()
		} else if rec, isEnv := ref.EnvironmentBase(); isEnv {
			this = rec.WithBaseObject()
		}
	}
	callee, err := runtime.GetValue(i.realm, raw)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	if !runtime.IsCallable(callee) {
		return nil, i.realm.ThrowTypeError("%s is not a function", calleeText(n.Callee))
	}
	return runtime.Call(i.realm, callee, this, args...)
}

func (i *Interpreter) evaluateNewExpression(n *ast.NewExpression) (runtime.Value, error) {
	callee, err := i.evaluateValue(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(n.Arguments)
	if err != nil {
		return nil, err
	}
	if !runtime.IsConstructor(callee) {
		return nil, i.realm.ThrowTypeError("%s is not a constructor", calleeText(n.Callee))
	}
	return runtime.Construct(i.realm, callee, args, nil)
}

// calleeText renders simple callee expressions for error messages.
func calleeText(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.ThisExpression:
		return "this"
	case *ast.MemberExpression:
		if id, ok := e.Property.(*ast.Identifier); ok && !e.Computed {
			return calleeText(e.Object) + "." + id.Name
		}
		return calleeText(e.Object) + "[...]"
	default:
		return "expression"
	}
}

func (i *Interpreter) evaluateFunctionExpression(n *ast.FunctionExpression) (runtime.Value, error) {
	outer := i.realm.CurrentLexicalEnvironment()
	if n.ID == nil {
		return i.ordinaryFunctionCreate(n, outer), nil
	}
	funcEnv := runtime.NewDeclarativeEnvironment(outer)
	if err := funcEnv.Record.CreateImmutableBinding(i.realm, n.ID.Name, false); err != nil {
		return nil, err
	}
	closure := i.ordinaryFunctionCreate(n, funcEnv)
	runtime.SetFunctionName(closure, runtime.StringKey(n.ID.Name), "")
	if err := funcEnv.Record.InitializeBinding(i.realm, n.ID.Name, closure); err != nil {
		return nil, err
	}
	return closure, nil
}

// ordinaryFunctionCreate builds a function object for node closed over env.
// Arrows capture this lexically and cannot be constructed.
func (i *Interpreter) ordinaryFunctionCreate(node ast.FunctionNode, env *runtime.LexicalEnvironment) *runtime.Object {
	parts := node.Parts()
	_, arrow := node.(*ast.ArrowFunctionExpression)
	strict := i.realm.IsStrict() || i.strict || hasUseStrictDirective(parts.Body)

	data := &runtime.FunctionData{
		Strict:      strict,
		Environment: env,
		Node:        node,
	}
	switch {
	case arrow:
		data.ThisMode = runtime.ThisModeLexical
	case strict:
		data.ThisMode = runtime.ThisModeStrict
	default:
		data.ThisMode = runtime.ThisModeGlobal
	}
	fn := i.realm.NewFunctionObject(data)
	data.Call = func(_ *runtime.Realm, this runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		return i.callFunction(fn, this, args, nil)
	}
	if !arrow && !parts.Generator && !parts.Async {
		data.Construct = func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, newTarget *runtime.Object) (runtime.Value, error) {
			this, err := runtime.OrdinaryCreateFromConstructor(r, newTarget, r.ObjectPrototype)
			if err != nil {
				return nil, err
			}
			result, err := i.callFunction(fn, this, args, newTarget)
			if err != nil {
				return nil, err
			}
			if runtime.IsObject(result) {
				return result, nil
			}
			return this, nil
		}
		proto := runtime.NewObject(i.realm.ObjectPrototype)
		proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.Property{Value: fn, Writable: true, Configurable: true})
		fn.DefineOwnProperty(runtime.StringKey("prototype"), runtime.Property{Value: proto, Writable: true})
	}
	fn.DefineOwnProperty(runtime.StringKey("length"), runtime.Property{
		Value:        runtime.Number(float64(expectedArgumentCount(parts.Params))),
		Configurable: true,
	})
	return fn
}

// expectedArgumentCount counts the parameters before the first default or
// rest element.
func expectedArgumentCount(params []ast.Pattern) int {
	for idx, p := range params {
		switch p.(type) {
		case *ast.AssignmentPattern, *ast.RestElement:
			return idx
		}
	}
	return len(params)
}

func hasUseStrictDirective(body *ast.BlockStatement) bool {
	if body == nil {
		return false
	}
	for _, stmt := range body.Body {
		expr, ok := stmt.(*ast.ExpressionStatement)
		if !ok || expr.Directive == "" {
			return false
		}
		if expr.Directive == "use strict" {
			return true
		}
	}
	return false
}

// callFunction runs the body of a source function in a fresh execution
// context. newTarget is nil for plain calls.
func (i *Interpreter) callFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value, newTarget *runtime.Object) (runtime.Value, error) {
	data := fn.Function
	parts := data.Node.Parts()
	if parts.Generator || parts.Async {
		return nil, i.realm.ThrowSyntaxError("Generators and async functions are not supported")
	}

	var target runtime.Value
	if newTarget != nil {
		target = newTarget
	}
	calleeEnv := runtime.NewFunctionEnvironment(fn, target)
	ctx := &runtime.ExecutionContext{
		Function:            fn,
		LexicalEnvironment:  calleeEnv,
		VariableEnvironment: calleeEnv,
		Strict:              data.Strict,
	}
	i.realm.PushContext(ctx)
	defer i.realm.PopContext()

	if data.ThisMode != runtime.ThisModeLexical {
		if err := i.bindThis(calleeEnv, data, this); err != nil {
			return nil, err
		}
	}
	i.logger.WithFields(logrus.Fields{"function": ctx.Name(), "args": len(args)}).Trace("call")
	if err := i.functionDeclarationInstantiation(fn, args); err != nil {
		return nil, err
	}
	_, err := i.evaluateStatementList(parts.Body.Body)
	if err == nil {
		return runtime.Undefined, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, scriptError(err)
}

// bindThis applies the this-mode of the callee to the receiver.
func (i *Interpreter) bindThis(env *runtime.LexicalEnvironment, data *runtime.FunctionData, this runtime.Value) error {
	rec, ok := env.Record.(*runtime.FunctionRecord)
	runtime.Invariant(ok, "call environment is %T, not a function record", env.Record)
	value := this
	if data.ThisMode == runtime.ThisModeGlobal {
		if runtime.IsNullish(this) {
			value = i.globalThis()
		} else {
			obj, err := runtime.ToObject(i.realm, this)
			if err != nil {
				return err
			}
			value = obj
		}
	}
	_, err := rec.BindThisValue(i.realm, value)
	return err
}

func (i *Interpreter) globalThis() runtime.Value {
	if global, ok := i.realm.GlobalEnv.Record.(*runtime.GlobalRecord); ok && global.GlobalThisValue != nil {
		return global.GlobalThisValue
	}
	return i.realm.GlobalObject
}
