package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/binding"
	"lexenv/interpreter-go/pkg/runtime"
)

// Interpreter evaluates programs against one realm. It is the evaluator the
// binding core calls back into for initializers, computed keys and function
// declarations.
type Interpreter struct {
	realm  *runtime.Realm
	binder *binding.Binder
	logger logrus.FieldLogger
	stdout io.Writer

	strict bool
}

// Options configures a new interpreter.
type Options struct {
	Strict       bool
	MaxDepth     int
	MaxCallDepth int
	Logger       logrus.FieldLogger
	Stdout       io.Writer
}

// New creates an interpreter with a fresh realm and the default globals.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Interpreter {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	realm := runtime.NewRealm(
		runtime.WithLogger(logger),
		runtime.WithMaxDepth(opts.MaxDepth),
		runtime.WithMaxCallDepth(opts.MaxCallDepth),
	)
	i := &Interpreter{
		realm:  realm,
		logger: logger,
		stdout: stdout,
		strict: opts.Strict,
	}
	i.binder = binding.NewBinder(realm, i)
	i.initBuiltins()
	return i
}

func (i *Interpreter) Realm() *runtime.Realm { return i.realm }

func (i *Interpreter) Binder() *binding.Binder { return i.binder }

// Evaluate evaluates an expression in the running execution context. The
// result may be a *runtime.Reference.
func (i *Interpreter) Evaluate(node ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(node)
}

// InstantiateFunction creates the function object for a declaration closed
// over env.
func (i *Interpreter) InstantiateFunction(decl *ast.FunctionDeclaration, env *runtime.LexicalEnvironment) (*runtime.Object, error) {
	if decl.ID == nil {
		return nil, i.realm.ThrowSyntaxError("Function statements require a function name")
	}
	fn := i.ordinaryFunctionCreate(decl, env)
	runtime.SetFunctionName(fn, runtime.StringKey(decl.ID.Name), "")
	return fn, nil
}

// evaluateValue evaluates an expression and dereferences the result.
func (i *Interpreter) evaluateValue(node ast.Expression) (runtime.Value, error) {
	raw, err := i.evaluateExpression(node)
	if err != nil {
		return nil, err
	}
	return runtime.GetValue(i.realm, raw)
}

// withLexicalEnvironment runs fn with env as the running lexical
// environment and restores the previous one afterwards.
func (i *Interpreter) withLexicalEnvironment(env *runtime.LexicalEnvironment, fn func() (runtime.Value, error)) (runtime.Value, error) {
	prev := i.realm.SetLexicalEnvironment(env)
	defer i.realm.SetLexicalEnvironment(prev)
	return fn()
}
