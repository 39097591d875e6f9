package interpreter

import (
	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// evaluateMemberExpression produces a property reference. Reading through
// a nullish base fails later, in GetValue or PutValue.
func (i *Interpreter) evaluateMemberExpression(n *ast.MemberExpression) (runtime.Value, error) {
	base, err := i.evaluateValue(n.Object)
	if err != nil {
		return nil, err
	}
	key, err := i.propertyName(n.Property, n.Computed)
	if err != nil {
		return nil, err
	}
	return runtime.NewPropertyReference(base, key, i.realm.IsStrict()), nil
}

// propertyName evaluates the key of a member access or object literal
// property.
func (i *Interpreter) propertyName(key ast.Expression, computed bool) (runtime.PropertyKey, error) {
	if computed {
		v, err := i.evaluateValue(key)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		return runtime.ToPropertyKey(i.realm, v)
	}
	switch k := key.(type) {
	case *ast.Identifier:
		return runtime.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return runtime.StringKey(k.Value), nil
	case *ast.NumericLiteral:
		return runtime.StringKey(runtime.NumberToString(k.Value)), nil
	default:
		return runtime.PropertyKey{}, i.realm.ThrowSyntaxError("Unexpected property key %s", key.NodeType())
	}
}

func (i *Interpreter) evaluateObjectExpression(n *ast.ObjectExpression) (runtime.Value, error) {
	obj := runtime.NewObject(i.realm.ObjectPrototype)
	for _, member := range n.Properties {
		switch m := member.(type) {
		case *ast.SpreadElement:
			source, err := i.evaluateValue(m.Argument)
			if err != nil {
				return nil, err
			}
			if err := i.copyDataProperties(obj, source); err != nil {
				return nil, err
			}
		case *ast.Property:
			if err := i.defineLiteralProperty(obj, m); err != nil {
				return nil, err
			}
		default:
			return nil, i.realm.ThrowSyntaxError("Unexpected object member %s", member.NodeType())
		}
	}
	return obj, nil
}

func (i *Interpreter) defineLiteralProperty(obj *runtime.Object, p *ast.Property) error {
	key, err := i.propertyName(p.Key, p.Computed)
	if err != nil {
		return err
	}
	v, err := i.evaluateValue(p.Value)
	if err != nil {
		return err
	}
	fn, isFn := v.(*runtime.Object)
	isFn = isFn && fn.Function != nil && ast.IsAnonymousFunctionDefinition(p.Value)

	switch p.Kind {
	case ast.PropertyGet, ast.PropertySet:
		if !isFn {
			return i.realm.ThrowSyntaxError("Accessor property requires a function")
		}
		fn.Function.HomeObject = obj
		desc := runtime.Property{Accessor: true, Enumerable: true, Configurable: true}
		if existing := obj.GetOwnProperty(key); existing != nil && existing.Accessor {
			desc.Getter, desc.Setter = existing.Getter, existing.Setter
		}
		if p.Kind == ast.PropertyGet {
			runtime.SetFunctionName(fn, key, "get")
			desc.Getter = fn
		} else {
			runtime.SetFunctionName(fn, key, "set")
			desc.Setter = fn
		}
		obj.DefineOwnProperty(key, desc)
		return nil
	}

	if isFn {
		if p.Method {
			fn.Function.HomeObject = obj
		}
		if !runtime.HasOwnName(fn) {
			runtime.SetFunctionName(fn, key, "")
		}
	}
	obj.CreateDataProperty(key, v)
	return nil
}

// copyDataProperties copies the own enumerable properties of source onto
// target. Nullish sources copy nothing.
func (i *Interpreter) copyDataProperties(target *runtime.Object, source runtime.Value) error {
	if runtime.IsNullish(source) {
		return nil
	}
	from, err := runtime.ToObject(i.realm, source)
	if err != nil {
		return err
	}
	for _, key := range from.OwnPropertyKeys() {
		prop := from.GetOwnProperty(key)
		if prop == nil || !prop.Enumerable {
			continue
		}
		v, err := from.Get(i.realm, key, from)
		if err != nil {
			return err
		}
		target.CreateDataProperty(key, v)
	}
	return nil
}
