package runtime

import (
	"fmt"
	"math"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindEmpty
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindEmpty:
		return "empty"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. A *Reference is also
// a Value so evaluators can hand back either one.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type BooleanValue struct {
	Val bool
}

func (v BooleanValue) Kind() Kind { return KindBoolean }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// SymbolValue compares by pointer identity.
type SymbolValue struct {
	Description    string
	HasDescription bool
}

func (*SymbolValue) Kind() Kind { return KindSymbol }

func (s *SymbolValue) String() string {
	return "Symbol(" + s.Description + ")"
}

// EmptyValue marks the absence of a completion value.
type EmptyValue struct{}

func (EmptyValue) Kind() Kind { return KindEmpty }

var (
	Undefined Value = UndefinedValue{}
	Null      Value = NullValue{}
	Empty     Value = EmptyValue{}
	True            = BooleanValue{Val: true}
	False           = BooleanValue{Val: false}
	NaN             = NumberValue{Val: math.NaN()}
)

func Bool(b bool) BooleanValue {
	return BooleanValue{Val: b}
}

func Number(f float64) NumberValue {
	return NumberValue{Val: f}
}

func String(s string) StringValue {
	return StringValue{Val: s}
}

func NewSymbol(description string) *SymbolValue {
	return &SymbolValue{Description: description, HasDescription: true}
}

// IsUndefined treats a nil Value as undefined.
func IsUndefined(v Value) bool {
	return v == nil || v.Kind() == KindUndefined
}

func IsNullish(v Value) bool {
	return IsUndefined(v) || v.Kind() == KindNull
}

func IsPrimitive(v Value) bool {
	switch v.Kind() {
	case KindBoolean, KindNumber, KindString, KindSymbol:
		return true
	default:
		return false
	}
}

func IsObject(v Value) bool {
	_, ok := v.(*Object)
	return ok
}

func IsCallable(v Value) bool {
	obj, ok := v.(*Object)
	return ok && obj.Function != nil && obj.Function.Call != nil
}

func IsConstructor(v Value) bool {
	obj, ok := v.(*Object)
	return ok && obj.Function != nil && obj.Function.Construct != nil
}

// TypeOf implements the typeof operator.
func TypeOf(v Value) string {
	switch v.Kind() {
	case KindUndefined, KindEmpty:
		return "undefined"
	case KindNull:
		return "object"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		if IsCallable(v) {
			return "function"
		}
		return "object"
	default:
		return "undefined"
	}
}
