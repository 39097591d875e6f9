package interpreter

import (
	"strings"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// evaluateExpression evaluates node in the running execution context.
// Identifiers and member accesses produce references; everything else
// produces a value.
func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return runtime.ResolveBinding(i.realm, n.Name, i.realm.IsStrict(), nil)
	case *ast.NumericLiteral:
		return runtime.Number(n.Value), nil
	case *ast.StringLiteral:
		return runtime.String(n.Value), nil
	case *ast.BooleanLiteral:
		return runtime.Bool(n.Value), nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.TemplateLiteral:
		return i.evaluateTemplateLiteral(n)
	case *ast.ArrayExpression:
		return i.evaluateArrayExpression(n)
	case *ast.ObjectExpression:
		return i.evaluateObjectExpression(n)
	case *ast.FunctionExpression:
		return i.evaluateFunctionExpression(n)
	case *ast.ArrowFunctionExpression:
		return i.ordinaryFunctionCreate(n, i.realm.CurrentLexicalEnvironment()), nil
	case *ast.CallExpression:
		return i.evaluateCallExpression(n)
	case *ast.NewExpression:
		return i.evaluateNewExpression(n)
	case *ast.MemberExpression:
		return i.evaluateMemberExpression(n)
	case *ast.AssignmentExpression:
		return i.evaluateAssignmentExpression(n)
	case *ast.BinaryExpression:
		left, err := i.evaluateValue(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateValue(n.Right)
		if err != nil {
			return nil, err
		}
		return i.applyBinaryOperator(n.Operator, left, right)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	case *ast.UpdateExpression:
		return i.evaluateUpdateExpression(n)
	case *ast.ConditionalExpression:
		test, err := i.evaluateValue(n.Test)
		if err != nil {
			return nil, err
		}
		if runtime.ToBoolean(test) {
			return i.evaluateValue(n.Consequent)
		}
		return i.evaluateValue(n.Alternate)
	case *ast.ThisExpression:
		return runtime.ResolveThisBinding(i.realm)
	case *ast.SequenceExpression:
		var v runtime.Value = runtime.Undefined
		for _, expr := range n.Expressions {
			next, err := i.evaluateValue(expr)
			if err != nil {
				return nil, err
			}
			v = next
		}
		return v, nil
	case *ast.YieldExpression:
		return nil, i.realm.ThrowSyntaxError("Generators are not supported")
	case *ast.SpreadElement:
		return nil, i.realm.ThrowSyntaxError("Unexpected spread element")
	case nil:
		return runtime.Undefined, nil
	default:
		return nil, i.realm.ThrowSyntaxError("Unsupported expression %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateTemplateLiteral(n *ast.TemplateLiteral) (runtime.Value, error) {
	var sb strings.Builder
	for idx, quasi := range n.Quasis {
		sb.WriteString(quasi)
		if idx >= len(n.Expressions) {
			continue
		}
		v, err := i.evaluateValue(n.Expressions[idx])
		if err != nil {
			return nil, err
		}
		s, err := runtime.ToString(i.realm, v)
		if err != nil {
			return nil, err
		}
		sb.WriteString(s)
	}
	return runtime.String(sb.String()), nil
}

func (i *Interpreter) evaluateArrayExpression(n *ast.ArrayExpression) (runtime.Value, error) {
	arr := i.realm.NewArray(nil)
	index := 0
	for _, element := range n.Elements {
		switch el := element.(type) {
		case nil:
			index++
		case *ast.SpreadElement:
			source, err := i.evaluateValue(el.Argument)
			if err != nil {
				return nil, err
			}
			items, err := runtime.IterableToList(i.realm, source, nil)
			if err != nil {
				return nil, err
			}
			for _, item := range items {
				arr.CreateDataProperty(runtime.IndexKey(index), item)
				index++
			}
		default:
			v, err := i.evaluateValue(el)
			if err != nil {
				return nil, err
			}
			arr.CreateDataProperty(runtime.IndexKey(index), v)
			index++
		}
	}
	if _, err := arr.Set(i.realm, runtime.StringKey("length"), runtime.Number(float64(index)), arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// evaluateArguments evaluates call arguments left to right, expanding
// spread elements.
func (i *Interpreter) evaluateArguments(args []ast.Expression) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(args))
	for _, arg := range args {
		if spread, ok := arg.(*ast.SpreadElement); ok {
			source, err := i.evaluateValue(spread.Argument)
			if err != nil {
				return nil, err
			}
			items, err := runtime.IterableToList(i.realm, source, nil)
			if err != nil {
				return nil, err
			}
			values = append(values, items...)
			continue
		}
		v, err := i.evaluateValue(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (i *Interpreter) evaluateLogicalExpression(n *ast.LogicalExpression) (runtime.Value, error) {
	left, err := i.evaluateValue(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "&&":
		if !runtime.ToBoolean(left) {
			return left, nil
		}
	case "||":
		if runtime.ToBoolean(left) {
			return left, nil
		}
	case "??":
		if !runtime.IsNullish(left) {
			return left, nil
		}
	default:
		return nil, i.realm.ThrowSyntaxError("Unknown logical operator %s", n.Operator)
	}
	return i.evaluateValue(n.Right)
}

func (i *Interpreter) evaluateAssignmentExpression(n *ast.AssignmentExpression) (runtime.Value, error) {
	switch n.Left.(type) {
	case *ast.ObjectPattern, *ast.ArrayPattern:
		if n.Operator != "=" {
			return nil, i.realm.ThrowSyntaxError("Invalid left-hand side in assignment")
		}
		v, err := i.evaluateValue(n.Right)
		if err != nil {
			return nil, err
		}
		if err := i.binder.BindingInitialization(n.Left, v, nil); err != nil {
			return nil, err
		}
		return v, nil
	}

	target, ok := n.Left.(ast.Expression)
	if !ok {
		return nil, i.realm.ThrowSyntaxError("Invalid left-hand side in assignment")
	}
	lref, err := i.evaluateExpression(target)
	if err != nil {
		return nil, err
	}
	if _, isRef := lref.(*runtime.Reference); !isRef {
		return nil, i.realm.ThrowSyntaxError("Invalid left-hand side in assignment")
	}

	id, isName := n.Left.(*ast.Identifier)
	rhs := func() (runtime.Value, error) {
		if isName {
			return i.evaluateNamed(n.Right, id.Name)
		}
		return i.evaluateValue(n.Right)
	}

	var value runtime.Value
	switch n.Operator {
	case "=":
		value, err = rhs()
		if err != nil {
			return nil, err
		}
	case "&&=", "||=", "??=":
		current, err := runtime.GetValue(i.realm, lref)
		if err != nil {
			return nil, err
		}
		switch {
		case n.Operator == "&&=" && !runtime.ToBoolean(current),
			n.Operator == "||=" && runtime.ToBoolean(current),
			n.Operator == "??=" && !runtime.IsNullish(current):
			return current, nil
		}
		value, err = rhs()
		if err != nil {
			return nil, err
		}
	default:
		op := strings.TrimSuffix(n.Operator, "=")
		if op == n.Operator {
			return nil, i.realm.ThrowSyntaxError("Unknown assignment operator %s", n.Operator)
		}
		current, err := runtime.GetValue(i.realm, lref)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluateValue(n.Right)
		if err != nil {
			return nil, err
		}
		value, err = i.applyBinaryOperator(op, current, right)
		if err != nil {
			return nil, err
		}
	}
	if err := runtime.PutValue(i.realm, lref, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateUnaryExpression(n *ast.UnaryExpression) (runtime.Value, error) {
	switch n.Operator {
	case "typeof":
		raw, err := i.evaluateExpression(n.Argument)
		if err != nil {
			return nil, err
		}
		if ref, ok := raw.(*runtime.Reference); ok && ref.IsUnresolvable() {
			return runtime.String("undefined"), nil
		}
		v, err := runtime.GetValue(i.realm, raw)
		if err != nil {
			return nil, err
		}
		return runtime.String(runtime.TypeOf(v)), nil
	case "delete":
		return i.evaluateDelete(n.Argument)
	}

	v, err := i.evaluateValue(n.Argument)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "void":
		return runtime.Undefined, nil
	case "!":
		return runtime.Bool(!runtime.ToBoolean(v)), nil
	case "-":
		num, err := runtime.ToNumber(i.realm, v)
		if err != nil {
			return nil, err
		}
		return runtime.Number(-num), nil
	case "+":
		num, err := runtime.ToNumber(i.realm, v)
		if err != nil {
			return nil, err
		}
		return runtime.Number(num), nil
	case "~":
		num, err := runtime.ToInt32(i.realm, v)
		if err != nil {
			return nil, err
		}
		return runtime.Number(float64(^num)), nil
	default:
		return nil, i.realm.ThrowSyntaxError("Unknown unary operator %s", n.Operator)
	}
}

func (i *Interpreter) evaluateDelete(argument ast.Expression) (runtime.Value, error) {
	raw, err := i.evaluateExpression(argument)
	if err != nil {
		return nil, err
	}
	ref, ok := raw.(*runtime.Reference)
	if !ok {
		return runtime.True, nil
	}
	if ref.IsUnresolvable() {
		if ref.IsStrict() {
			return nil, i.realm.ThrowSyntaxError("Delete of an unqualified identifier in strict mode.")
		}
		return runtime.True, nil
	}
	if rec, isEnv := ref.EnvironmentBase(); isEnv {
		deleted, err := rec.DeleteBinding(i.realm, ref.Name())
		if err != nil {
			return nil, err
		}
		return runtime.Bool(deleted), nil
	}
	base, err := runtime.ToObject(i.realm, ref.Base().(runtime.Value))
	if err != nil {
		return nil, err
	}
	deleted := base.Delete(ref.ReferencedName())
	if !deleted && ref.IsStrict() {
		return nil, i.realm.ThrowTypeError("Cannot delete property '%s' of %s", ref.Name(), runtime.Describe(base))
	}
	return runtime.Bool(deleted), nil
}

func (i *Interpreter) evaluateUpdateExpression(n *ast.UpdateExpression) (runtime.Value, error) {
	lref, err := i.evaluateExpression(n.Argument)
	if err != nil {
		return nil, err
	}
	if _, ok := lref.(*runtime.Reference); !ok {
		return nil, i.realm.ThrowSyntaxError("Invalid left-hand side expression in %s operation", updateKind(n.Prefix))
	}
	current, err := runtime.GetValue(i.realm, lref)
	if err != nil {
		return nil, err
	}
	old, err := runtime.ToNumber(i.realm, current)
	if err != nil {
		return nil, err
	}
	updated := old + 1
	if n.Operator == "--" {
		updated = old - 1
	}
	if err := runtime.PutValue(i.realm, lref, runtime.Number(updated)); err != nil {
		return nil, err
	}
	if n.Prefix {
		return runtime.Number(updated), nil
	}
	return runtime.Number(old), nil
}

func updateKind(prefix bool) string {
	if prefix {
		return "prefix"
	}
	return "postfix"
}
