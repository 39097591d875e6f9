package runtime

import (
	"errors"
	"fmt"

	"src.elv.sh/pkg/persistent/vector"
)

// CompletionType tags how a statement or operation finished.
type CompletionType int

const (
	CompletionNormal CompletionType = iota
	CompletionThrow
	CompletionReturn
	CompletionBreak
	CompletionContinue
)

func (c CompletionType) String() string {
	switch c {
	case CompletionNormal:
		return "normal"
	case CompletionThrow:
		return "throw"
	case CompletionReturn:
		return "return"
	case CompletionBreak:
		return "break"
	case CompletionContinue:
		return "continue"
	default:
		return fmt.Sprintf("completion_%d", int(c))
	}
}

// AbruptCompletion is implemented by the control-flow signals of the
// evaluator (return, break, continue).
type AbruptCompletion interface {
	error
	CompletionType() CompletionType
}

// ThrowCompletion carries a thrown language value. The context stack at the
// throw point is kept as a persistent snapshot.
type ThrowCompletion struct {
	Value Value
	stack vector.Vector
}

func (t *ThrowCompletion) CompletionType() CompletionType { return CompletionThrow }

func (t *ThrowCompletion) Error() string {
	return "Uncaught " + describeThrown(t.Value)
}

// StackTrace lists the running function names, innermost first.
func (t *ThrowCompletion) StackTrace() []string {
	if t.stack == nil {
		return nil
	}
	out := make([]string, 0, t.stack.Len())
	for i := t.stack.Len() - 1; i >= 0; i-- {
		raw, _ := t.stack.Index(i)
		ctx := raw.(*ExecutionContext)
		out = append(out, ctx.Name())
	}
	return out
}

// Throw wraps a language value as a throw completion.
func Throw(v Value) error {
	return &ThrowCompletion{Value: v}
}

// AsThrow unwraps a throw completion.
func AsThrow(err error) (*ThrowCompletion, bool) {
	var tc *ThrowCompletion
	if errors.As(err, &tc) {
		return tc, true
	}
	return nil, false
}

// CompletionTypeOf classifies an error returned by an evaluation step. Host
// errors that are not completions count as throws.
func CompletionTypeOf(err error) CompletionType {
	if err == nil {
		return CompletionNormal
	}
	var abrupt AbruptCompletion
	if errors.As(err, &abrupt) {
		return abrupt.CompletionType()
	}
	return CompletionThrow
}

// InvariantError is raised (as a panic) when a collaborator breaks a
// precondition of the core.
type InvariantError struct {
	Message string
}

func (e InvariantError) Error() string {
	return "invariant violation: " + e.Message
}

// Invariant panics with an InvariantError when cond is false.
func Invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(InvariantError{Message: fmt.Sprintf(format, args...)})
	}
}

// NewError creates an error instance with the given prototype.
func (r *Realm) NewError(proto *Object, message string) *Object {
	obj := NewObject(proto)
	obj.Class = "Error"
	obj.ErrorData = true
	if message != "" {
		obj.defineBuiltin(StringKey("message"), String(message))
	}
	return obj
}

func (r *Realm) throwError(proto *Object, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	r.Logger.WithField("error", msg).Trace("throw")
	return &ThrowCompletion{Value: r.NewError(proto, msg), stack: r.contexts}
}

func (r *Realm) ThrowTypeError(format string, args ...any) error {
	return r.throwError(r.TypeErrorPrototype, format, args...)
}

func (r *Realm) ThrowReferenceError(format string, args ...any) error {
	return r.throwError(r.ReferenceErrorPrototype, format, args...)
}

func (r *Realm) ThrowSyntaxError(format string, args ...any) error {
	return r.throwError(r.SyntaxErrorPrototype, format, args...)
}

func (r *Realm) ThrowRangeError(format string, args ...any) error {
	return r.throwError(r.RangeErrorPrototype, format, args...)
}

// ThrowValue raises an arbitrary value, recording the current stack.
func (r *Realm) ThrowValue(v Value) error {
	return &ThrowCompletion{Value: v, stack: r.contexts}
}

// ErrorName returns "TypeError" and friends for error instances.
func ErrorName(v Value) string {
	obj, ok := v.(*Object)
	if !ok || !obj.ErrorData {
		return ""
	}
	for cur := obj; cur != nil; cur = cur.Prototype {
		if prop := cur.GetOwnProperty(nameKey); prop != nil && !prop.Accessor {
			if s, ok := prop.Value.(StringValue); ok {
				return s.Val
			}
		}
	}
	return "Error"
}

// ErrorMessage returns the message of an error instance.
func ErrorMessage(v Value) string {
	obj, ok := v.(*Object)
	if !ok {
		return ""
	}
	for cur := obj; cur != nil; cur = cur.Prototype {
		if prop := cur.GetOwnProperty(StringKey("message")); prop != nil && !prop.Accessor {
			if s, ok := prop.Value.(StringValue); ok {
				return s.Val
			}
		}
	}
	return ""
}

func describeThrown(v Value) string {
	if name := ErrorName(v); name != "" {
		if msg := ErrorMessage(v); msg != "" {
			return name + ": " + msg
		}
		return name
	}
	return Describe(v)
}
