// Package binding implements declaration instantiation and the binding
// initialization family: identifiers, array and object patterns, rest
// elements and default values.
package binding

import (
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// Evaluator is the expression evaluator the binder calls back into for
// default values, computed keys, member targets and function declarations.
// Evaluate may return a *runtime.Reference.
type Evaluator interface {
	Evaluate(node ast.Expression) (runtime.Value, error)
	InstantiateFunction(decl *ast.FunctionDeclaration, env *runtime.LexicalEnvironment) (*runtime.Object, error)
}

// Binder runs binding initialization against one realm. A nil environment
// argument selects assignment semantics (PutValue through existing
// bindings); a non-nil one selects declaration semantics.
type Binder struct {
	realm     *runtime.Realm
	evaluator Evaluator
}

func NewBinder(realm *runtime.Realm, evaluator Evaluator) *Binder {
	return &Binder{realm: realm, evaluator: evaluator}
}

func (b *Binder) Realm() *runtime.Realm { return b.realm }

// BindingInitialization binds value to every name in node.
func (b *Binder) BindingInitialization(node ast.Node, value runtime.Value, env *runtime.LexicalEnvironment) error {
	if err := b.realm.EnterNesting(); err != nil {
		return err
	}
	defer b.realm.LeaveNesting()

	switch n := node.(type) {
	case *ast.Identifier:
		return b.InitializeBoundName(n.Name, value, env)
	case *ast.ArrayPattern:
		return b.arrayPattern(n, value, env)
	case *ast.ObjectPattern:
		if err := runtime.RequireObjectCoercible(b.realm, value); err != nil {
			return err
		}
		return b.objectPattern(n, value, env)
	case *ast.AssignmentPattern:
		return b.BindingInitialization(n.Left, value, env)
	case *ast.VariableDeclaration:
		for _, decl := range n.Declarations {
			if err := b.BindingInitialization(decl.ID, value, env); err != nil {
				return err
			}
		}
		return nil
	case *ast.MemberExpression:
		if env != nil {
			return unsupported(n, "member expression in a declaration")
		}
		return b.putMember(n, value)
	case nil:
		return unsupported(nil, "missing binding target")
	default:
		return unsupported(node, "")
	}
}

// InitializeBoundName initializes name in env, or assigns it through a
// non-strict reference when env is nil.
func (b *Binder) InitializeBoundName(name string, value runtime.Value, env *runtime.LexicalEnvironment) error {
	b.realm.Logger.WithFields(logrus.Fields{"name": name, "declaration": env != nil}).Trace("bind name")
	if env != nil {
		return env.Record.InitializeBinding(b.realm, name, value)
	}
	ref, err := runtime.ResolveBinding(b.realm, name, false, nil)
	if err != nil {
		return err
	}
	return runtime.PutValue(b.realm, ref, value)
}

func (b *Binder) arrayPattern(p *ast.ArrayPattern, value runtime.Value, env *runtime.LexicalEnvironment) error {
	rec, err := runtime.GetIterator(b.realm, value, nil)
	if err != nil {
		return err
	}
	result := b.IteratorBindingInitialization(p.Elements, rec, env)
	if !rec.Done {
		return runtime.IteratorClose(b.realm, rec, result)
	}
	return result
}

func (b *Binder) objectPattern(p *ast.ObjectPattern, value runtime.Value, env *runtime.LexicalEnvironment) error {
	var seen []runtime.PropertyKey
	for _, member := range p.Properties {
		switch prop := member.(type) {
		case *ast.BindingProperty:
			key, err := b.propertyKey(prop)
			if err != nil {
				return err
			}
			seen = append(seen, key)
			if err := b.KeyedBindingInitialization(prop.Value, value, env, key); err != nil {
				return err
			}
		case *ast.RestElement:
			var ref runtime.Value
			switch target := prop.Argument.(type) {
			case *ast.Identifier:
				r, err := runtime.ResolveBinding(b.realm, target.Name, env != nil, env)
				if err != nil {
					return err
				}
				ref = r
			case *ast.MemberExpression:
				if env != nil {
					return unsupported(target, "member expression in a declaration")
				}
				r, err := b.evaluator.Evaluate(target)
				if err != nil {
					return err
				}
				ref = r
			default:
				return unsupported(prop.Argument, "object rest target must be an identifier")
			}
			rest, err := b.copyDataProperties(value, seen)
			if err != nil {
				return err
			}
			if err := b.initializeReference(ref, rest, env); err != nil {
				return err
			}
		default:
			return unsupported(member, "")
		}
	}
	return nil
}

// KeyedBindingInitialization binds element to value[key], applying its
// default when the property reads as undefined.
func (b *Binder) KeyedBindingInitialization(element ast.Pattern, value runtime.Value, env *runtime.LexicalEnvironment, key runtime.PropertyKey) error {
	target, initializer := splitDefault(element)
	var ref runtime.Value
	switch t := target.(type) {
	case *ast.Identifier:
		r, err := runtime.ResolveBinding(b.realm, t.Name, env != nil, env)
		if err != nil {
			return err
		}
		ref = r
	case *ast.MemberExpression:
		if env != nil {
			return unsupported(t, "member expression in a declaration")
		}
		r, err := b.evaluator.Evaluate(t)
		if err != nil {
			return err
		}
		ref = r
	}
	v, err := runtime.GetV(b.realm, value, key)
	if err != nil {
		return err
	}
	if initializer != nil && runtime.IsUndefined(v) {
		v, err = b.defaultValue(initializer, target)
		if err != nil {
			return err
		}
	}
	if ref != nil {
		return b.initializeReference(ref, v, env)
	}
	return b.BindingInitialization(target, v, env)
}

func (b *Binder) initializeReference(ref runtime.Value, v runtime.Value, env *runtime.LexicalEnvironment) error {
	if r, ok := ref.(*runtime.Reference); ok {
		b.realm.Logger.WithFields(logrus.Fields{"name": r.Name(), "declaration": env != nil}).Trace("bind name")
	}
	if env == nil {
		return runtime.PutValue(b.realm, ref, v)
	}
	return runtime.InitializeReferencedBinding(b.realm, ref, v)
}

func (b *Binder) putMember(target *ast.MemberExpression, v runtime.Value) error {
	ref, err := b.evaluator.Evaluate(target)
	if err != nil {
		return err
	}
	return runtime.PutValue(b.realm, ref, v)
}

// defaultValue evaluates an initializer and names anonymous functions after
// the identifier they are bound to.
func (b *Binder) defaultValue(initializer ast.Expression, target ast.Pattern) (runtime.Value, error) {
	raw, err := b.evaluator.Evaluate(initializer)
	if err != nil {
		return nil, err
	}
	v, err := runtime.GetValue(b.realm, raw)
	if err != nil {
		return nil, err
	}
	id, ok := target.(*ast.Identifier)
	if !ok || !ast.IsAnonymousFunctionDefinition(initializer) {
		return v, nil
	}
	if fn, ok := v.(*runtime.Object); ok && !runtime.HasOwnName(fn) {
		runtime.SetFunctionName(fn, runtime.StringKey(id.Name), "")
	}
	return v, nil
}

func (b *Binder) propertyKey(prop *ast.BindingProperty) (runtime.PropertyKey, error) {
	if prop.Computed {
		raw, err := b.evaluator.Evaluate(prop.Key)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		v, err := runtime.GetValue(b.realm, raw)
		if err != nil {
			return runtime.PropertyKey{}, err
		}
		return runtime.ToPropertyKey(b.realm, v)
	}
	switch key := prop.Key.(type) {
	case *ast.Identifier:
		return runtime.StringKey(key.Name), nil
	case *ast.StringLiteral:
		return runtime.StringKey(key.Value), nil
	case *ast.NumericLiteral:
		return runtime.StringKey(runtime.NumberToString(key.Value)), nil
	default:
		return runtime.PropertyKey{}, unsupported(prop.Key, "property key")
	}
}

// copyDataProperties collects the own enumerable properties of value that
// are not in excluded into a fresh ordinary object.
func (b *Binder) copyDataProperties(value runtime.Value, excluded []runtime.PropertyKey) (*runtime.Object, error) {
	rest := runtime.NewObject(b.realm.ObjectPrototype)
	source, err := runtime.ToObject(b.realm, value)
	if err != nil {
		return nil, err
	}
	for _, key := range source.OwnPropertyKeys() {
		if containsKey(excluded, key) {
			continue
		}
		prop := source.GetOwnProperty(key)
		if prop == nil || !prop.Enumerable {
			continue
		}
		v, err := source.Get(b.realm, key, source)
		if err != nil {
			return nil, err
		}
		rest.CreateDataProperty(key, v)
	}
	return rest, nil
}

func containsKey(keys []runtime.PropertyKey, key runtime.PropertyKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// splitDefault separates `target = initializer`.
func splitDefault(element ast.Pattern) (ast.Pattern, ast.Expression) {
	if p, ok := element.(*ast.AssignmentPattern); ok {
		return p.Left, p.Right
	}
	return element, nil
}
