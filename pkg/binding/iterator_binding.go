package binding

import (
	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// IteratorBindingInitialization walks the elements of an array pattern (or
// a parameter list) against one shared iterator record. A failing step or
// value read marks the record done so that callers do not close an iterator
// that has already failed.
func (b *Binder) IteratorBindingInitialization(elements []ast.Pattern, rec *runtime.IteratorRecord, env *runtime.LexicalEnvironment) error {
	for _, element := range elements {
		if err := b.iteratorBindElement(element, rec, env); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) iteratorBindElement(element ast.Pattern, rec *runtime.IteratorRecord, env *runtime.LexicalEnvironment) error {
	if element == nil {
		_, err := b.step(rec)
		return err
	}
	if rest, ok := element.(*ast.RestElement); ok {
		return b.iteratorBindRest(rest, rec, env)
	}

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
	case *ast.ArrayPattern, *ast.ObjectPattern:
	default:
		return unsupported(target, "array element")
	}
	v, err := b.step(rec)
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

// step advances rec by one element. An exhausted iterator yields undefined.
func (b *Binder) step(rec *runtime.IteratorRecord) (runtime.Value, error) {
	if rec.Done {
		return runtime.Undefined, nil
	}
	next, err := runtime.IteratorStep(b.realm, rec)
	if err != nil {
		rec.Done = true
		return nil, err
	}
	if next == nil {
		rec.Done = true
		return runtime.Undefined, nil
	}
	v, err := runtime.IteratorValue(b.realm, next)
	if err != nil {
		rec.Done = true
		return nil, err
	}
	return v, nil
}

// iteratorBindRest drains rec into a fresh array and binds it. The target
// name is resolved before the iterator is touched.
func (b *Binder) iteratorBindRest(rest *ast.RestElement, rec *runtime.IteratorRecord, env *runtime.LexicalEnvironment) error {
	var ref runtime.Value
	switch target := rest.Argument.(type) {
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
	case *ast.ArrayPattern, *ast.ObjectPattern:
	default:
		return unsupported(rest.Argument, "rest element target")
	}

	var values []runtime.Value
	for !rec.Done {
		next, err := runtime.IteratorStep(b.realm, rec)
		if err != nil {
			rec.Done = true
			return err
		}
		if next == nil {
			rec.Done = true
			break
		}
		v, err := runtime.IteratorValue(b.realm, next)
		if err != nil {
			rec.Done = true
			return err
		}
		values = append(values, v)
	}
	array := runtime.CreateArrayFromList(b.realm, values)
	if ref != nil {
		return b.initializeReference(ref, array, env)
	}
	return b.BindingInitialization(rest.Argument, array, env)
}
