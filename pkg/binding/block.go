package binding

import (
	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// LexicallyScopedDeclarations returns the let, const and function
// declarations at the top level of body.
func LexicallyScopedDeclarations(body []ast.Statement) []ast.Statement {
	var decls []ast.Statement
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.FunctionDeclaration:
			decls = append(decls, s)
		case *ast.VariableDeclaration:
			if s.IsLexical() {
				decls = append(decls, s)
			}
		}
	}
	return decls
}

// BlockDeclarationInstantiation creates the bindings of a block in env.
// Lexical bindings stay uninitialized; function declarations are
// instantiated and initialized at once.
func (b *Binder) BlockDeclarationInstantiation(strict bool, body []ast.Statement, env *runtime.LexicalEnvironment) error {
	rec, ok := runtime.AsDeclarative(env.Record)
	runtime.Invariant(ok, "block instantiation requires a declarative record, got %T", env.Record)

	decls := LexicallyScopedDeclarations(body)
	b.realm.Logger.WithFields(logrus.Fields{"declarations": len(decls), "strict": strict}).Debug("block declaration instantiation")
	for _, decl := range decls {
		constant := false
		if v, ok := decl.(*ast.VariableDeclaration); ok {
			constant = v.Kind == ast.DeclarationConst
		}
		if err := b.declare(rec, BoundNames(decl), constant); err != nil {
			return err
		}
		fn, ok := decl.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		obj, err := b.evaluator.InstantiateFunction(fn, env)
		if err != nil {
			return err
		}
		if err := rec.InitializeBinding(b.realm, fn.ID.Name, obj); err != nil {
			return err
		}
	}
	return nil
}

// DeclareLexicalNames creates uninitialized mutable bindings for the names
// bound by pattern, as catch parameters need. A repeated name is a
// SyntaxError.
func (b *Binder) DeclareLexicalNames(pattern ast.Node, env *runtime.LexicalEnvironment) error {
	rec, ok := runtime.AsDeclarative(env.Record)
	runtime.Invariant(ok, "lexical names require a declarative record, got %T", env.Record)
	return b.declare(rec, BoundNames(pattern), false)
}

func (b *Binder) declare(rec *runtime.DeclarativeRecord, names []string, constant bool) error {
	for _, name := range names {
		exists, err := rec.HasBinding(b.realm, name)
		if err != nil {
			return err
		}
		if exists {
			return b.realm.ThrowSyntaxError("Identifier '%s' has already been declared", name)
		}
		if constant {
			err = rec.CreateImmutableBinding(b.realm, name, true)
		} else {
			err = rec.CreateMutableBinding(b.realm, name, false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
