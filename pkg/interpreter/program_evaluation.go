package interpreter

import (
	"errors"
	"fmt"

	"lexenv/interpreter-go/pkg/ast"
	"lexenv/interpreter-go/pkg/runtime"
)

// EvaluateProgram instantiates the script's declarations in the global
// environment and runs its statements. The result is the completion value of
// the last statement that produced one.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return nil, fmt.Errorf("interpreter: program is nil")
	}
	ctx := i.realm.RunningContext()
	runtime.Invariant(ctx != nil && ctx.Function == nil, "scripts run in the script context")

	prevStrict := ctx.Strict
	ctx.Strict = program.Strict || i.strict
	defer func() { ctx.Strict = prevStrict }()

	env := i.realm.GlobalEnv
	prevEnv := i.realm.SetLexicalEnvironment(env)
	defer i.realm.SetLexicalEnvironment(prevEnv)

	i.logger.WithField("strict", ctx.Strict).Debug("evaluate program")
	if err := i.globalDeclarationInstantiation(program.Body, env); err != nil {
		return nil, err
	}
	v, err := i.evaluateStatementList(program.Body)
	if err != nil {
		return nil, scriptError(err)
	}
	return completionValue(v), nil
}

// scriptError rejects control-flow signals that escaped to the top level.
func scriptError(err error) error {
	var ret returnSignal
	if errors.As(err, &ret) {
		return fmt.Errorf("interpreter: illegal return statement")
	}
	var brk breakSignal
	if errors.As(err, &brk) {
		if brk.label != "" {
			return fmt.Errorf("interpreter: undefined label '%s'", brk.label)
		}
		return fmt.Errorf("interpreter: illegal break statement")
	}
	var cont continueSignal
	if errors.As(err, &cont) {
		return fmt.Errorf("interpreter: illegal continue statement")
	}
	return err
}
