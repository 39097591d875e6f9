package interpreter

import (
	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/binding"
	"lexenv/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, labels labelSet) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateValue(n.Expression)
	case *ast.VariableDeclaration:
		return runtime.Empty, i.evaluateVariableDeclaration(n)
	case *ast.FunctionDeclaration:
		return runtime.Empty, nil
	case *ast.BlockStatement:
		return i.evaluateBlock(n)
	case *ast.EmptyStatement:
		return runtime.Empty, nil
	case *ast.IfStatement:
		return i.evaluateIfStatement(n)
	case *ast.ForStatement:
		return i.evaluateForStatement(n, labels)
	case *ast.ForOfStatement:
		return i.evaluateForInOf(n.Left, n.Right, n.Body, true, labels)
	case *ast.ForInStatement:
		return i.evaluateForInOf(n.Left, n.Right, n.Body, false, labels)
	case *ast.WhileStatement:
		return i.evaluateWhileStatement(n, labels)
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.Undefined
		if n.Argument != nil {
			v, err := i.evaluateValue(n.Argument)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return nil, returnSignal{value: value}
	case *ast.ThrowStatement:
		v, err := i.evaluateValue(n.Argument)
		if err != nil {
			return nil, err
		}
		return nil, i.realm.ThrowValue(v)
	case *ast.TryStatement:
		return i.evaluateTryStatement(n)
	case *ast.BreakStatement:
		return runtime.Empty, breakSignal{label: labelName(n.Label)}
	case *ast.ContinueStatement:
		return runtime.Empty, continueSignal{label: labelName(n.Label)}
	case *ast.LabeledStatement:
		name := labelName(n.Label)
		v, err := i.evaluateStatement(n.Body, append(labels[:len(labels):len(labels)], name))
		if sig, ok := err.(breakSignal); ok && sig.label == name {
			return completionValue(v), nil
		}
		return v, err
	case nil:
		return runtime.Empty, nil
	default:
		return nil, i.realm.ThrowSyntaxError("Unsupported statement %s", node.NodeType())
	}
}

func labelName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}

// completionValue replaces an empty completion value with undefined.
func completionValue(v runtime.Value) runtime.Value {
	if v == nil || v == runtime.Empty {
		return runtime.Undefined
	}
	return v
}

// evaluateStatementList returns the value of the last statement that
// produced one, together with the first abrupt completion.
func (i *Interpreter) evaluateStatementList(body []ast.Statement) (runtime.Value, error) {
	var last runtime.Value = runtime.Empty
	for _, stmt := range body {
		v, err := i.evaluateStatement(stmt, nil)
		if v != nil && v != runtime.Empty {
			last = v
		}
		if err != nil {
			return last, err
		}
	}
	return last, nil
}

func (i *Interpreter) evaluateBlock(block *ast.BlockStatement) (runtime.Value, error) {
	if name, ok := varShadowsLexical(block.Body); ok {
		return nil, i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
	}
	outer := i.realm.CurrentLexicalEnvironment()
	blockEnv := runtime.NewDeclarativeEnvironment(outer)
	if err := i.binder.BlockDeclarationInstantiation(i.realm.IsStrict(), block.Body, blockEnv); err != nil {
		return nil, err
	}
	return i.withLexicalEnvironment(blockEnv, func() (runtime.Value, error) {
		return i.evaluateStatementList(block.Body)
	})
}

func (i *Interpreter) evaluateIfStatement(n *ast.IfStatement) (runtime.Value, error) {
	test, err := i.evaluateValue(n.Test)
	if err != nil {
		return nil, err
	}
	branch := n.Alternate
	if runtime.ToBoolean(test) {
		branch = n.Consequent
	}
	if branch == nil {
		return runtime.Undefined, nil
	}
	v, err := i.evaluateStatement(branch, nil)
	return completionValue(v), err
}

func (i *Interpreter) evaluateWhileStatement(n *ast.WhileStatement, labels labelSet) (runtime.Value, error) {
	var v runtime.Value = runtime.Undefined
	for {
		test, err := i.evaluateValue(n.Test)
		if err != nil {
			return nil, err
		}
		if !runtime.ToBoolean(test) {
			return v, nil
		}
		result, err := i.evaluateStatement(n.Body, nil)
		if result != nil && result != runtime.Empty {
			v = result
		}
		if !loopContinues(err, labels) {
			return v, consumeBreak(err, labels)
		}
	}
}

func (i *Interpreter) evaluateForStatement(n *ast.ForStatement, labels labelSet) (runtime.Value, error) {
	outer := i.realm.CurrentLexicalEnvironment()
	defer i.realm.SetLexicalEnvironment(outer)

	var perIteration []string
	if decl, ok := n.Init.(*ast.VariableDeclaration); ok && decl.IsLexical() {
		loopEnv := runtime.NewDeclarativeEnvironment(outer)
		if err := i.binder.BlockDeclarationInstantiation(i.realm.IsStrict(), []ast.Statement{decl}, loopEnv); err != nil {
			return nil, err
		}
		i.realm.SetLexicalEnvironment(loopEnv)
		if decl.Kind == ast.DeclarationLet {
			perIteration = binding.BoundNames(decl)
		}
	}
	if n.Init != nil {
		if _, err := i.evaluateStatement(n.Init, nil); err != nil {
			return nil, err
		}
	}

	var v runtime.Value = runtime.Undefined
	if err := i.createPerIterationEnvironment(perIteration); err != nil {
		return nil, err
	}
	for {
		if n.Test != nil {
			test, err := i.evaluateValue(n.Test)
			if err != nil {
				return nil, err
			}
			if !runtime.ToBoolean(test) {
				return v, nil
			}
		}
		result, err := i.evaluateStatement(n.Body, nil)
		if result != nil && result != runtime.Empty {
			v = result
		}
		if !loopContinues(err, labels) {
			return v, consumeBreak(err, labels)
		}
		if err := i.createPerIterationEnvironment(perIteration); err != nil {
			return nil, err
		}
		if n.Update != nil {
			if _, err := i.evaluateValue(n.Update); err != nil {
				return nil, err
			}
		}
	}
}

// createPerIterationEnvironment copies the loop's let bindings into a fresh
// scope so closures created in one iteration keep that iteration's values.
func (i *Interpreter) createPerIterationEnvironment(names []string) error {
	if len(names) == 0 {
		return nil
	}
	last := i.realm.CurrentLexicalEnvironment()
	next := runtime.NewDeclarativeEnvironment(last.Parent)
	for _, name := range names {
		v, err := last.Record.GetBindingValue(i.realm, name, true)
		if err != nil {
			return err
		}
		if err := next.Record.CreateMutableBinding(i.realm, name, false); err != nil {
			return err
		}
		if err := next.Record.InitializeBinding(i.realm, name, v); err != nil {
			return err
		}
	}
	i.realm.SetLexicalEnvironment(next)
	return nil
}

// evaluateForInOf runs for-of (iterate) and for-in (enumerate) loops. The
// iterator of a for-of loop is closed whenever the loop ends early.
func (i *Interpreter) evaluateForInOf(left ast.Node, right ast.Expression, body ast.Statement, iterate bool, labels labelSet) (runtime.Value, error) {
	outer := i.realm.CurrentLexicalEnvironment()
	decl, _ := left.(*ast.VariableDeclaration)
	if decl != nil && len(decl.Declarations) != 1 {
		return nil, i.realm.ThrowSyntaxError("Invalid left-hand side in for-%s loop: must have a single binding.", loopKind(iterate))
	}
	lexical := decl != nil && decl.IsLexical()

	subject, err := i.forHeadValue(right, decl, lexical, outer)
	if err != nil {
		return nil, err
	}
	var rec *runtime.IteratorRecord
	if iterate {
		rec, err = runtime.GetIterator(i.realm, subject, nil)
		if err != nil {
			return nil, err
		}
	} else {
		if runtime.IsNullish(subject) {
			return runtime.Undefined, nil
		}
		rec, err = i.enumerateObjectProperties(subject)
		if err != nil {
			return nil, err
		}
	}

	var v runtime.Value = runtime.Undefined
	for {
		next, err := runtime.IteratorStep(i.realm, rec)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return v, nil
		}
		value, err := runtime.IteratorValue(i.realm, next)
		if err != nil {
			return nil, err
		}

		iterEnv := outer
		if lexical {
			iterEnv = runtime.NewDeclarativeEnvironment(outer)
			if err := i.binder.BlockDeclarationInstantiation(i.realm.IsStrict(), []ast.Statement{decl}, iterEnv); err != nil {
				return nil, err
			}
		}
		result, err := i.withLexicalEnvironment(iterEnv, func() (runtime.Value, error) {
			if err := i.bindForHead(left, decl, lexical, value, iterEnv); err != nil {
				return nil, err
			}
			return i.evaluateStatement(body, nil)
		})
		if result != nil && result != runtime.Empty {
			v = result
		}
		if !loopContinues(err, labels) {
			if iterate {
				err = runtime.IteratorClose(i.realm, rec, err)
			}
			return v, consumeBreak(err, labels)
		}
	}
}

func loopKind(iterate bool) string {
	if iterate {
		return "of"
	}
	return "in"
}

// forHeadValue evaluates the loop subject. Names declared by a lexical head
// are visible but uninitialized while it runs.
func (i *Interpreter) forHeadValue(right ast.Expression, decl *ast.VariableDeclaration, lexical bool, outer *runtime.LexicalEnvironment) (runtime.Value, error) {
	if !lexical {
		return i.evaluateValue(right)
	}
	tdz := runtime.NewDeclarativeEnvironment(outer)
	if err := i.binder.DeclareLexicalNames(decl, tdz); err != nil {
		return nil, err
	}
	return i.withLexicalEnvironment(tdz, func() (runtime.Value, error) {
		return i.evaluateValue(right)
	})
}

func (i *Interpreter) bindForHead(left ast.Node, decl *ast.VariableDeclaration, lexical bool, value runtime.Value, iterEnv *runtime.LexicalEnvironment) error {
	switch {
	case lexical:
		return i.binder.BindingInitialization(decl, value, iterEnv)
	case decl != nil:
		return i.binder.BindingInitialization(decl, value, nil)
	}
	switch target := left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		ref, err := i.evaluateExpression(target.(ast.Expression))
		if err != nil {
			return err
		}
		return runtime.PutValue(i.realm, ref, value)
	case ast.Pattern:
		return i.binder.BindingInitialization(target, value, nil)
	default:
		return i.realm.ThrowSyntaxError("Invalid left-hand side in for loop")
	}
}

// enumerateObjectProperties lists the enumerable string keys of subject and
// its prototypes, shadowed names once, as a list iterator.
func (i *Interpreter) enumerateObjectProperties(subject runtime.Value) (*runtime.IteratorRecord, error) {
	obj, err := runtime.ToObject(i.realm, subject)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var keys []runtime.Value
	for o := obj; o != nil; o = o.Prototype {
		for _, key := range o.OwnPropertyKeys() {
			if key.IsSymbol() || seen[key.Name] {
				continue
			}
			seen[key.Name] = true
			if prop := o.GetOwnProperty(key); prop != nil && prop.Enumerable {
				keys = append(keys, runtime.String(key.Name))
			}
		}
	}
	iterator := i.realm.CreateListIterator(keys)
	next, err := iterator.Get(i.realm, runtime.StringKey("next"), iterator)
	if err != nil {
		return nil, err
	}
	return &runtime.IteratorRecord{Iterator: iterator, NextMethod: next}, nil
}

func (i *Interpreter) evaluateTryStatement(n *ast.TryStatement) (runtime.Value, error) {
	v, err := i.evaluateBlock(n.Block)
	if tc, ok := runtime.AsThrow(err); ok && n.Handler != nil {
		v, err = i.evaluateCatchClause(n.Handler, tc.Value)
	}
	if n.Finalizer != nil {
		fv, ferr := i.evaluateBlock(n.Finalizer)
		if ferr != nil {
			return fv, ferr
		}
	}
	return completionValue(v), err
}

func (i *Interpreter) evaluateCatchClause(clause *ast.CatchClause, thrown runtime.Value) (runtime.Value, error) {
	if clause.Param == nil {
		return i.evaluateBlock(clause.Body)
	}
	outer := i.realm.CurrentLexicalEnvironment()
	catchEnv := runtime.NewDeclarativeEnvironment(outer)
	if err := i.binder.DeclareLexicalNames(clause.Param, catchEnv); err != nil {
		return nil, err
	}
	return i.withLexicalEnvironment(catchEnv, func() (runtime.Value, error) {
		if err := i.binder.BindingInitialization(clause.Param, thrown, catchEnv); err != nil {
			return nil, err
		}
		return i.evaluateBlock(clause.Body)
	})
}
