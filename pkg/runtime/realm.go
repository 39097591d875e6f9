package runtime

import (
	"github.com/sirupsen/logrus"
	"src.elv.sh/pkg/persistent/vector"
)

const (
	DefaultMaxDepth     = 512
	DefaultMaxCallDepth = 256
)

// Intrinsics are the well-known objects of a realm.
type Intrinsics struct {
	ObjectPrototype         *Object
	FunctionPrototype       *Object
	ArrayPrototype          *Object
	StringPrototype         *Object
	NumberPrototype         *Object
	BooleanPrototype        *Object
	SymbolPrototype         *Object
	ErrorPrototype          *Object
	TypeErrorPrototype      *Object
	ReferenceErrorPrototype *Object
	SyntaxErrorPrototype    *Object
	RangeErrorPrototype     *Object
	IteratorPrototype       *Object
	ArrayIteratorPrototype  *Object
	MapIteratorPrototype    *Object
	SetIteratorPrototype    *Object
	MapPrototype            *Object
	SetPrototype            *Object

	Object         *Object
	Function       *Object
	Array          *Object
	Error          *Object
	TypeError      *Object
	ReferenceError *Object
	SyntaxError    *Object
	RangeError     *Object
	Map            *Object
	Set            *Object
	Symbol         *Object

	SymbolIterator    *SymbolValue
	SymbolUnscopables *SymbolValue
	SymbolToStringTag *SymbolValue
}

// ExecutionContext is one entry of the realm's context stack.
type ExecutionContext struct {
	Function            *Object
	LexicalEnvironment  *LexicalEnvironment
	VariableEnvironment *LexicalEnvironment
	Strict              bool
}

// Name labels the context in stack traces.
func (c *ExecutionContext) Name() string {
	if c.Function == nil {
		return "<script>"
	}
	if name := FunctionName(c.Function); name != "" {
		return name
	}
	return "<anonymous>"
}

// Realm owns the intrinsics, the global environment and the execution
// context stack. A realm is used by one goroutine at a time.
type Realm struct {
	Intrinsics

	GlobalObject *Object
	GlobalEnv    *LexicalEnvironment

	MaxDepth     int
	MaxCallDepth int
	Logger       logrus.FieldLogger

	contexts  vector.Vector
	depth     int
	callDepth int
}

type Option func(*Realm)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Realm) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(r *Realm) {
		if depth > 0 {
			r.MaxDepth = depth
		}
	}
}

func WithMaxCallDepth(depth int) Option {
	return func(r *Realm) {
		if depth > 0 {
			r.MaxCallDepth = depth
		}
	}
}

// NewRealm builds the intrinsics, the global object and the global
// environment, and pushes the script context.
func NewRealm(opts ...Option) *Realm {
	r := &Realm{
		MaxDepth:     DefaultMaxDepth,
		MaxCallDepth: DefaultMaxCallDepth,
		Logger:       logrus.StandardLogger(),
		contexts:     vector.Empty,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.createIntrinsics()
	r.GlobalObject = NewObject(r.ObjectPrototype)
	r.GlobalObject.Class = "global"
	r.GlobalEnv = NewGlobalEnvironment(r.GlobalObject, r.GlobalObject)
	r.setDefaultGlobalBindings()
	r.PushContext(&ExecutionContext{
		LexicalEnvironment:  r.GlobalEnv,
		VariableEnvironment: r.GlobalEnv,
	})
	return r
}

// PushContext makes ctx the running execution context.
func (r *Realm) PushContext(ctx *ExecutionContext) {
	r.contexts = r.contexts.Conj(ctx)
	r.Logger.WithFields(logrus.Fields{"context": ctx.Name(), "depth": r.contexts.Len()}).Trace("push context")
}

// PopContext removes the running execution context.
func (r *Realm) PopContext() *ExecutionContext {
	Invariant(r.contexts.Len() > 0, "pop from empty context stack")
	ctx := r.RunningContext()
	r.contexts = r.contexts.Pop()
	return ctx
}

// RunningContext returns the top of the context stack, or nil.
func (r *Realm) RunningContext() *ExecutionContext {
	n := r.contexts.Len()
	if n == 0 {
		return nil
	}
	raw, _ := r.contexts.Index(n - 1)
	return raw.(*ExecutionContext)
}

func (r *Realm) ContextDepth() int {
	return r.contexts.Len()
}

// SetLexicalEnvironment replaces the running context's lexical environment
// and returns the previous one.
func (r *Realm) SetLexicalEnvironment(env *LexicalEnvironment) *LexicalEnvironment {
	ctx := r.RunningContext()
	Invariant(ctx != nil, "no running execution context")
	prev := ctx.LexicalEnvironment
	ctx.LexicalEnvironment = env
	return prev
}

// CurrentLexicalEnvironment is the running context's lexical environment.
func (r *Realm) CurrentLexicalEnvironment() *LexicalEnvironment {
	if ctx := r.RunningContext(); ctx != nil {
		return ctx.LexicalEnvironment
	}
	return r.GlobalEnv
}

// IsStrict reports whether the running context is strict code.
func (r *Realm) IsStrict() bool {
	ctx := r.RunningContext()
	return ctx != nil && ctx.Strict
}

// EnterNesting guards recursion over nested patterns and blocks.
func (r *Realm) EnterNesting() error {
	if r.depth >= r.MaxDepth {
		return r.ThrowRangeError("Maximum pattern nesting depth exceeded")
	}
	r.depth++
	return nil
}

func (r *Realm) LeaveNesting() {
	r.depth--
}

func (r *Realm) enterCall() error {
	if r.callDepth >= r.MaxCallDepth {
		return r.ThrowRangeError("Maximum call stack size exceeded")
	}
	r.callDepth++
	return nil
}

func (r *Realm) leaveCall() {
	r.callDepth--
}
