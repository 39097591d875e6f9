package interpreter

import (
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/binding"
	"lexenv/interpreter-go/pkg/runtime"
)

// evaluateVariableDeclaration runs the initializers of a var, let or const
// statement. The bindings themselves were created when the enclosing scope
// was instantiated.
func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration) error {
	for _, d := range decl.Declarations {
		if err := i.evaluateDeclarator(decl.Kind, d); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateDeclarator(kind ast.DeclarationKind, d *ast.VariableDeclarator) error {
	strict := i.realm.IsStrict()
	if binding.IsDestructuring(d.ID) {
		if d.Init == nil {
			return i.realm.ThrowSyntaxError("Missing initializer in destructuring declaration")
		}
		value, err := i.evaluateValue(d.Init)
		if err != nil {
			return err
		}
		var env *runtime.LexicalEnvironment
		if kind != ast.DeclarationVar {
			env = i.realm.CurrentLexicalEnvironment()
		}
		return i.binder.BindingInitialization(d.ID, value, env)
	}
	id, ok := d.ID.(*ast.Identifier)
	if !ok {
		return &binding.UnsupportedPatternError{Node: d.ID, Reason: "declarator target"}
	}

	if d.Init == nil {
		if kind == ast.DeclarationVar {
			return nil
		}
		lhs, err := runtime.ResolveBinding(i.realm, id.Name, strict, nil)
		if err != nil {
			return err
		}
		return runtime.InitializeReferencedBinding(i.realm, lhs, runtime.Undefined)
	}

	lhs, err := runtime.ResolveBinding(i.realm, id.Name, strict, nil)
	if err != nil {
		return err
	}
	value, err := i.evaluateNamed(d.Init, id.Name)
	if err != nil {
		return err
	}
	if kind == ast.DeclarationVar {
		return runtime.PutValue(i.realm, lhs, value)
	}
	return runtime.InitializeReferencedBinding(i.realm, lhs, value)
}

// evaluateNamed evaluates an initializer, naming an anonymous function after
// the binding it initializes.
func (i *Interpreter) evaluateNamed(init ast.Expression, name string) (runtime.Value, error) {
	value, err := i.evaluateValue(init)
	if err != nil {
		return nil, err
	}
	if ast.IsAnonymousFunctionDefinition(init) {
		if fn, ok := value.(*runtime.Object); ok && !runtime.HasOwnName(fn) {
			runtime.SetFunctionName(fn, runtime.StringKey(name), "")
		}
	}
	return value, nil
}

// varScopedDeclarations collects var declarations anywhere in body, not
// descending into nested functions.
func varScopedDeclarations(body []ast.Statement) []*ast.VariableDeclaration {
	var out []*ast.VariableDeclaration
	visit := func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.FunctionDeclaration, *ast.FunctionExpression, *ast.ArrowFunctionExpression:
			return false
		case *ast.VariableDeclaration:
			if n.Kind == ast.DeclarationVar {
				out = append(out, n)
			}
			return false
		}
		return true
	}
	for _, stmt := range body {
		ast.Walk(stmt, visit)
	}
	return out
}

func varDeclaredNames(body []ast.Statement) []string {
	var names []string
	for _, decl := range varScopedDeclarations(body) {
		names = append(names, binding.BoundNames(decl)...)
	}
	return names
}

// varShadowsLexical finds a var declared anywhere in body under a name the
// same body declares lexically.
func varShadowsLexical(body []ast.Statement) (string, bool) {
	lexNames := make(map[string]bool)
	for _, decl := range binding.LexicallyScopedDeclarations(body) {
		for _, name := range binding.BoundNames(decl) {
			lexNames[name] = true
		}
	}
	if len(lexNames) == 0 {
		return "", false
	}
	for _, name := range varDeclaredNames(body) {
		if lexNames[name] {
			return name, true
		}
	}
	return "", false
}

// topLevelFunctions returns the function declarations of a function or
// script body, the last declaration of each name winning, in source order.
func topLevelFunctions(body []ast.Statement) []*ast.FunctionDeclaration {
	seen := make(map[string]bool)
	var reversed []*ast.FunctionDeclaration
	for idx := len(body) - 1; idx >= 0; idx-- {
		fn, ok := body[idx].(*ast.FunctionDeclaration)
		if !ok || fn.ID == nil || seen[fn.ID.Name] {
			continue
		}
		seen[fn.ID.Name] = true
		reversed = append(reversed, fn)
	}
	out := make([]*ast.FunctionDeclaration, len(reversed))
	for idx, fn := range reversed {
		out[len(reversed)-1-idx] = fn
	}
	return out
}

// lexicalDeclarations returns the top-level let and const statements.
func lexicalDeclarations(body []ast.Statement) []ast.Statement {
	var out []ast.Statement
	for _, stmt := range body {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok && decl.IsLexical() {
			out = append(out, decl)
		}
	}
	return out
}

// conflictingName finds a lexically declared name that is declared twice or
// also declared with var.
func conflictingName(lexNames, varNames []string) (string, bool) {
	seen := make(map[string]bool, len(lexNames))
	for _, name := range lexNames {
		if seen[name] {
			return name, true
		}
		seen[name] = true
	}
	for _, name := range varNames {
		if seen[name] {
			return name, true
		}
	}
	return "", false
}

func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// globalDeclarationInstantiation hoists the declarations of a script into
// the global environment.
func (i *Interpreter) globalDeclarationInstantiation(body []ast.Statement, env *runtime.LexicalEnvironment) error {
	global, ok := env.Record.(*runtime.GlobalRecord)
	runtime.Invariant(ok, "script instantiation requires a global record, got %T", env.Record)

	lexDecls := lexicalDeclarations(body)
	var lexNames []string
	for _, decl := range lexDecls {
		lexNames = append(lexNames, binding.BoundNames(decl)...)
	}
	functions := topLevelFunctions(body)
	varNames := varDeclaredNames(body)
	for _, fn := range functions {
		varNames = append(varNames, fn.ID.Name)
	}

	if name, ok := conflictingName(lexNames, varNames); ok {
		return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
	}
	for _, name := range lexNames {
		if global.HasVarDeclaration(name) || global.HasLexicalDeclaration(name) || global.HasRestrictedGlobalProperty(name) {
			return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
	}
	for _, name := range varNames {
		if global.HasLexicalDeclaration(name) {
			return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
	}
	declaredFunctions := make(map[string]bool)
	for _, fn := range functions {
		if !global.CanDeclareGlobalFunction(fn.ID.Name) {
			return i.realm.ThrowTypeError("Cannot declare global function '%s'", fn.ID.Name)
		}
		declaredFunctions[fn.ID.Name] = true
	}
	var declaredVars []string
	for _, name := range uniqueNames(varDeclaredNames(body)) {
		if declaredFunctions[name] {
			continue
		}
		if !global.CanDeclareGlobalVar(name) {
			return i.realm.ThrowTypeError("Cannot declare global variable '%s'", name)
		}
		declaredVars = append(declaredVars, name)
	}

	i.logger.WithFields(logrus.Fields{
		"lexical":   len(lexNames),
		"functions": len(functions),
		"vars":      len(declaredVars),
	}).Debug("global declaration instantiation")

	for _, decl := range lexDecls {
		constant := decl.(*ast.VariableDeclaration).Kind == ast.DeclarationConst
		for _, name := range binding.BoundNames(decl) {
			var err error
			if constant {
				err = global.CreateImmutableBinding(i.realm, name, true)
			} else {
				err = global.CreateMutableBinding(i.realm, name, false)
			}
			if err != nil {
				return err
			}
		}
	}
	for _, fn := range functions {
		fo, err := i.InstantiateFunction(fn, env)
		if err != nil {
			return err
		}
		if err := global.CreateGlobalFunctionBinding(i.realm, fn.ID.Name, fo, false); err != nil {
			return err
		}
	}
	for _, name := range declaredVars {
		if err := global.CreateGlobalVarBinding(i.realm, name, false); err != nil {
			return err
		}
	}
	return nil
}

// functionDeclarationInstantiation binds parameters, hoists var and function
// declarations and creates the body's lexical scope. The running context is
// the callee's.
func (i *Interpreter) functionDeclarationInstantiation(fn *runtime.Object, args []runtime.Value) error {
	ctx := i.realm.RunningContext()
	data := fn.Function
	parts := data.Node.Parts()
	env := ctx.LexicalEnvironment
	rec := env.Record
	body := parts.Body.Body
	strict := data.Strict

	parameterNames := binding.BoundNames(paramsNode(parts.Params))
	hasDuplicates := len(uniqueNames(parameterNames)) != len(parameterNames)
	simple := isSimpleParameterList(parts.Params)
	hasParameterExpressions := false
	for _, p := range parts.Params {
		if binding.ContainsExpression(p) {
			hasParameterExpressions = true
			break
		}
	}
	if hasDuplicates && (strict || !simple) {
		return i.realm.ThrowSyntaxError("Duplicate parameter name not allowed in this context")
	}

	varNames := uniqueNames(varDeclaredNames(body))
	functions := topLevelFunctions(body)
	lexDecls := lexicalDeclarations(body)
	lexNames := make(map[string]bool)
	for _, decl := range lexDecls {
		for _, name := range binding.BoundNames(decl) {
			lexNames[name] = true
		}
	}
	functionNames := make(map[string]bool)
	for _, f := range functions {
		functionNames[f.ID.Name] = true
	}
	for _, name := range parameterNames {
		if lexNames[name] {
			return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
	}
	for _, name := range varNames {
		if lexNames[name] {
			return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
	}
	for name := range functionNames {
		if lexNames[name] {
			return i.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
	}

	for _, name := range uniqueNames(parameterNames) {
		exists, err := rec.HasBinding(i.realm, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := rec.CreateMutableBinding(i.realm, name, false); err != nil {
			return err
		}
		if hasDuplicates {
			if err := rec.InitializeBinding(i.realm, name, runtime.Undefined); err != nil {
				return err
			}
		}
	}

	argumentsNeeded := data.ThisMode != runtime.ThisModeLexical
	for _, name := range parameterNames {
		if name == "arguments" {
			argumentsNeeded = false
		}
	}
	if functionNames["arguments"] || lexNames["arguments"] {
		argumentsNeeded = false
	}
	if argumentsNeeded {
		if err := rec.CreateMutableBinding(i.realm, "arguments", false); err != nil {
			return err
		}
		if err := rec.InitializeBinding(i.realm, "arguments", i.createArgumentsObject(args)); err != nil {
			return err
		}
		parameterNames = append(parameterNames, "arguments")
	}

	iterator := i.realm.CreateListIterator(args)
	next, err := iterator.Get(i.realm, runtime.StringKey("next"), iterator)
	if err != nil {
		return err
	}
	argsRecord := &runtime.IteratorRecord{Iterator: iterator, NextMethod: next}
	bindEnv := env
	if hasDuplicates {
		bindEnv = nil
	}
	if err := i.binder.IteratorBindingInitialization(parts.Params, argsRecord, bindEnv); err != nil {
		return err
	}

	isParam := make(map[string]bool, len(parameterNames))
	for _, name := range parameterNames {
		isParam[name] = true
	}
	varEnv := env
	if !hasParameterExpressions {
		for _, name := range varNames {
			if isParam[name] {
				continue
			}
			if err := rec.CreateMutableBinding(i.realm, name, false); err != nil {
				return err
			}
			if err := rec.InitializeBinding(i.realm, name, runtime.Undefined); err != nil {
				return err
			}
			isParam[name] = true
		}
	} else {
		varEnv = runtime.NewDeclarativeEnvironment(env)
		for _, name := range varNames {
			initial := runtime.Value(runtime.Undefined)
			if isParam[name] && !functionNames[name] {
				v, err := rec.GetBindingValue(i.realm, name, false)
				if err != nil {
					return err
				}
				initial = v
			}
			if err := varEnv.Record.CreateMutableBinding(i.realm, name, false); err != nil {
				return err
			}
			if err := varEnv.Record.InitializeBinding(i.realm, name, initial); err != nil {
				return err
			}
		}
	}
	ctx.VariableEnvironment = varEnv

	lexEnv := runtime.NewDeclarativeEnvironment(varEnv)
	ctx.LexicalEnvironment = lexEnv
	if err := i.binder.BlockDeclarationInstantiation(strict, lexDecls, lexEnv); err != nil {
		return err
	}

	for _, f := range functions {
		fo, err := i.InstantiateFunction(f, lexEnv)
		if err != nil {
			return err
		}
		name := f.ID.Name
		exists, err := varEnv.Record.HasBinding(i.realm, name)
		if err != nil {
			return err
		}
		if !exists {
			if err := varEnv.Record.CreateMutableBinding(i.realm, name, false); err != nil {
				return err
			}
			if err := varEnv.Record.InitializeBinding(i.realm, name, fo); err != nil {
				return err
			}
			continue
		}
		if err := varEnv.Record.SetMutableBinding(i.realm, name, fo, false); err != nil {
			return err
		}
	}
	return nil
}

// paramsNode wraps a parameter list so BoundNames can walk it.
func paramsNode(params []ast.Pattern) ast.Node {
	return ast.NewArrayPattern(params)
}

func isSimpleParameterList(params []ast.Pattern) bool {
	for _, p := range params {
		if _, ok := p.(*ast.Identifier); !ok {
			return false
		}
	}
	return true
}

// createArgumentsObject builds an unmapped arguments object.
func (i *Interpreter) createArgumentsObject(args []runtime.Value) *runtime.Object {
	obj := runtime.NewObject(i.realm.ObjectPrototype)
	obj.Class = "Arguments"
	for idx, arg := range args {
		obj.CreateDataProperty(runtime.IndexKey(idx), arg)
	}
	obj.DefineOwnProperty(runtime.StringKey("length"), runtime.Property{
		Value:        runtime.Number(float64(len(args))),
		Writable:     true,
		Configurable: true,
	})
	obj.DefineOwnProperty(runtime.SymbolKey(i.realm.SymbolIterator), runtime.Property{
		Value:        i.arrayValues(),
		Writable:     true,
		Configurable: true,
	})
	return obj
}

func (i *Interpreter) arrayValues() runtime.Value {
	if prop := i.realm.ArrayPrototype.GetOwnProperty(runtime.SymbolKey(i.realm.SymbolIterator)); prop != nil {
		return prop.Value
	}
	return runtime.Undefined
}
