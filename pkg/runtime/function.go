package runtime

import (
	"lexenv/interpreter-go/pkg/ast"
)

// ThisMode records how a function binds `this`.
type ThisMode int

const (
	ThisModeGlobal ThisMode = iota
	ThisModeStrict
	ThisModeLexical
)

// NativeFunc is the call/construct behaviour of a function object.
// newTarget is nil for plain calls.
type NativeFunc func(r *Realm, this Value, args []Value, newTarget *Object) (Value, error)

// FunctionData holds the internal slots of a function object.
type FunctionData struct {
	ThisMode    ThisMode
	Strict      bool
	Environment *LexicalEnvironment
	HomeObject  *Object
	Node        ast.FunctionNode
	Call        NativeFunc
	Construct   NativeFunc
}

// NewFunctionObject allocates a function object with %Function.prototype%.
func (r *Realm) NewFunctionObject(data *FunctionData) *Object {
	fn := NewObject(r.FunctionPrototype)
	fn.Class = "Function"
	fn.Function = data
	return fn
}

// NewNativeFunction builds a builtin function with its name and length.
func (r *Realm) NewNativeFunction(name string, length int, call NativeFunc) *Object {
	fn := r.NewFunctionObject(&FunctionData{ThisMode: ThisModeStrict, Strict: true, Call: call})
	fn.DefineOwnProperty(lengthKey, Property{Value: Number(float64(length)), Configurable: true})
	SetFunctionName(fn, StringKey(name), "")
	return fn
}

// NewNativeConstructor is NewNativeFunction with [[Construct]] and a
// prototype object whose constructor points back at the function.
func (r *Realm) NewNativeConstructor(name string, length int, proto *Object, call, construct NativeFunc) *Object {
	fn := r.NewNativeFunction(name, length, call)
	fn.Function.Construct = construct
	if proto != nil {
		fn.DefineOwnProperty(StringKey("prototype"), Property{Value: proto})
		proto.defineBuiltin(StringKey("constructor"), fn)
	}
	return fn
}

var nameKey = StringKey("name")

// SetFunctionName defines the own "name" property. Symbol keys become
// "[description]".
func SetFunctionName(fn *Object, key PropertyKey, prefix string) bool {
	name := key.Name
	if key.Symbol != nil {
		name = ""
		if key.Symbol.HasDescription {
			name = "[" + key.Symbol.Description + "]"
		}
	}
	if prefix != "" {
		name = prefix + " " + name
	}
	return fn.DefineOwnProperty(nameKey, Property{Value: String(name), Configurable: true})
}

// HasOwnName reports whether a function already carries an own "name".
func HasOwnName(fn *Object) bool {
	return fn.HasOwnProperty(nameKey)
}

// FunctionName reads the own name without running accessors.
func FunctionName(fn *Object) string {
	if prop := fn.GetOwnProperty(nameKey); prop != nil && !prop.Accessor {
		if s, ok := prop.Value.(StringValue); ok {
			return s.Val
		}
	}
	return ""
}

// Call invokes f with the given receiver.
func Call(r *Realm, f Value, this Value, args ...Value) (Value, error) {
	if !IsCallable(f) {
		return nil, r.ThrowTypeError("%s is not a function", Describe(f))
	}
	if err := r.enterCall(); err != nil {
		return nil, err
	}
	defer r.leaveCall()
	fn := f.(*Object)
	return fn.Function.Call(r, this, args, nil)
}

// Construct invokes [[Construct]]; newTarget defaults to f.
func Construct(r *Realm, f Value, args []Value, newTarget *Object) (Value, error) {
	if !IsConstructor(f) {
		return nil, r.ThrowTypeError("%s is not a constructor", Describe(f))
	}
	if err := r.enterCall(); err != nil {
		return nil, err
	}
	defer r.leaveCall()
	fn := f.(*Object)
	if newTarget == nil {
		newTarget = fn
	}
	return fn.Function.Construct(r, Undefined, args, newTarget)
}

// OrdinaryCreateFromConstructor reads newTarget.prototype, falling back to
// the given intrinsic prototype.
func OrdinaryCreateFromConstructor(r *Realm, newTarget *Object, fallback *Object) (*Object, error) {
	proto := fallback
	if newTarget != nil {
		p, err := newTarget.Get(r, StringKey("prototype"), newTarget)
		if err != nil {
			return nil, err
		}
		if obj, ok := p.(*Object); ok {
			proto = obj
		}
	}
	return NewObject(proto), nil
}

// Argument returns args[i] or undefined.
func Argument(args []Value, i int) Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return Undefined
}
