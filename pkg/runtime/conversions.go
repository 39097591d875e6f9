package runtime

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

func ToBoolean(v Value) bool {
	switch val := v.(type) {
	case BooleanValue:
		return val.Val
	case NumberValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case StringValue:
		return val.Val != ""
	case *SymbolValue, *Object:
		return true
	default:
		return false
	}
}

// ToPrimitive converts objects via valueOf/toString; hint is "number",
// "string" or "default".
func ToPrimitive(r *Realm, v Value, hint string) (Value, error) {
	obj, ok := v.(*Object)
	if !ok {
		return v, nil
	}
	order := []string{"valueOf", "toString"}
	if hint == "string" {
		order = []string{"toString", "valueOf"}
	}
	for _, name := range order {
		method, err := obj.Get(r, StringKey(name), obj)
		if err != nil {
			return nil, err
		}
		if !IsCallable(method) {
			continue
		}
		result, err := Call(r, method, obj)
		if err != nil {
			return nil, err
		}
		if !IsObject(result) {
			return result, nil
		}
	}
	return nil, r.ThrowTypeError("Cannot convert object to primitive value")
}

func ToNumber(r *Realm, v Value) (float64, error) {
	switch val := v.(type) {
	case UndefinedValue, EmptyValue:
		return math.NaN(), nil
	case NullValue:
		return 0, nil
	case BooleanValue:
		if val.Val {
			return 1, nil
		}
		return 0, nil
	case NumberValue:
		return val.Val, nil
	case StringValue:
		return StringToNumber(val.Val), nil
	case *SymbolValue:
		return 0, r.ThrowTypeError("Cannot convert a Symbol value to a number")
	case *Object:
		prim, err := ToPrimitive(r, val, "number")
		if err != nil {
			return 0, err
		}
		return ToNumber(r, prim)
	default:
		return math.NaN(), nil
	}
}

// StringToNumber parses a numeric string; malformed input is NaN.
func StringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if strings.ContainsAny(s, "xXpP_") || strings.HasPrefix(strings.ToLower(strings.TrimLeft(s, "+-")), "inf") || strings.EqualFold(s, "nan") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

var leadingZeroExponent = regexp.MustCompile(`([eE][\+\-])0+([1-9])`)

// NumberToString formats a number the way Number.prototype.toString does for
// radix 10.
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	exponent := math.Log10(math.Abs(f))
	if exponent >= 21 || exponent < -6 {
		return leadingZeroExponent.ReplaceAllString(strconv.FormatFloat(f, 'g', -1, 64), "$1$2")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func ToString(r *Realm, v Value) (string, error) {
	switch val := v.(type) {
	case UndefinedValue, EmptyValue:
		return "undefined", nil
	case NullValue:
		return "null", nil
	case BooleanValue:
		if val.Val {
			return "true", nil
		}
		return "false", nil
	case NumberValue:
		return NumberToString(val.Val), nil
	case StringValue:
		return val.Val, nil
	case *SymbolValue:
		return "", r.ThrowTypeError("Cannot convert a Symbol value to a string")
	case *Object:
		prim, err := ToPrimitive(r, val, "string")
		if err != nil {
			return "", err
		}
		return ToString(r, prim)
	default:
		return "", r.ThrowTypeError("Cannot convert %s to a string", v.Kind())
	}
}

func ToPropertyKey(r *Realm, v Value) (PropertyKey, error) {
	prim, err := ToPrimitive(r, v, "string")
	if err != nil {
		return PropertyKey{}, err
	}
	if sym, ok := prim.(*SymbolValue); ok {
		return SymbolKey(sym), nil
	}
	s, err := ToString(r, prim)
	if err != nil {
		return PropertyKey{}, err
	}
	return StringKey(s), nil
}

// ToObject boxes primitives into fresh wrapper objects.
func ToObject(r *Realm, v Value) (*Object, error) {
	switch val := v.(type) {
	case *Object:
		return val, nil
	case UndefinedValue, NullValue, EmptyValue, nil:
		return nil, r.ThrowTypeError("Cannot convert undefined or null to object")
	case BooleanValue:
		return r.boxPrimitive("Boolean", r.BooleanPrototype, val), nil
	case NumberValue:
		return r.boxPrimitive("Number", r.NumberPrototype, val), nil
	case *SymbolValue:
		return r.boxPrimitive("Symbol", r.SymbolPrototype, val), nil
	case StringValue:
		obj := r.boxPrimitive("String", r.StringPrototype, val)
		idx := 0
		for _, ch := range val.Val {
			obj.DefineOwnProperty(IndexKey(idx), Property{Value: String(string(ch)), Enumerable: true})
			idx++
		}
		obj.DefineOwnProperty(lengthKey, Property{Value: Number(float64(idx))})
		return obj, nil
	default:
		return nil, r.ThrowTypeError("Cannot convert %s to object", v.Kind())
	}
}

func (r *Realm) boxPrimitive(class string, proto *Object, v Value) *Object {
	obj := NewObject(proto)
	obj.Class = class
	obj.Primitive = v
	return obj
}

// RequireObjectCoercible rejects undefined and null.
func RequireObjectCoercible(r *Realm, v Value) error {
	if IsNullish(v) {
		return r.ThrowTypeError("Cannot destructure '%s' as it is %s.", Describe(v), Describe(v))
	}
	return nil
}

// GetV reads a property off any value, boxing primitives.
func GetV(r *Realm, v Value, key PropertyKey) (Value, error) {
	obj, err := ToObject(r, v)
	if err != nil {
		return nil, err
	}
	return obj.Get(r, key, v)
}

// GetMethod returns undefined for absent methods and a TypeError for
// non-callable ones.
func GetMethod(r *Realm, v Value, key PropertyKey) (Value, error) {
	fn, err := GetV(r, v, key)
	if err != nil {
		return nil, err
	}
	if IsNullish(fn) {
		return Undefined, nil
	}
	if !IsCallable(fn) {
		return nil, r.ThrowTypeError("%s is not a function", key)
	}
	return fn, nil
}

// Invoke calls the method named key on v.
func Invoke(r *Realm, v Value, key PropertyKey, args ...Value) (Value, error) {
	fn, err := GetV(r, v, key)
	if err != nil {
		return nil, err
	}
	return Call(r, fn, v, args...)
}

func SameValue(a, b Value) bool {
	if x, ok := a.(NumberValue); ok {
		y, ok := b.(NumberValue)
		if !ok {
			return false
		}
		if math.IsNaN(x.Val) && math.IsNaN(y.Val) {
			return true
		}
		if x.Val == 0 && y.Val == 0 {
			return math.Signbit(x.Val) == math.Signbit(y.Val)
		}
		return x.Val == y.Val
	}
	return sameNonNumber(a, b)
}

func SameValueZero(a, b Value) bool {
	if x, ok := a.(NumberValue); ok {
		y, ok := b.(NumberValue)
		if !ok {
			return false
		}
		if math.IsNaN(x.Val) && math.IsNaN(y.Val) {
			return true
		}
		return x.Val == y.Val
	}
	return sameNonNumber(a, b)
}

// StrictEquals implements ===.
func StrictEquals(a, b Value) bool {
	if x, ok := a.(NumberValue); ok {
		y, ok := b.(NumberValue)
		return ok && x.Val == y.Val
	}
	return sameNonNumber(a, b)
}

func sameNonNumber(a, b Value) bool {
	if a == nil || b == nil {
		return IsUndefined(a) && IsUndefined(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case UndefinedValue, NullValue, EmptyValue:
		return true
	case BooleanValue:
		return x.Val == b.(BooleanValue).Val
	case StringValue:
		return x.Val == b.(StringValue).Val
	case *SymbolValue:
		return x == b.(*SymbolValue)
	case *Object:
		return x == b.(*Object)
	default:
		return false
	}
}

// LooseEquals implements ==.
func LooseEquals(r *Realm, a, b Value) (bool, error) {
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b), nil
	}
	if IsNullish(a) && IsNullish(b) {
		return true, nil
	}
	if IsNullish(a) || IsNullish(b) {
		return false, nil
	}
	switch {
	case a.Kind() == KindNumber && b.Kind() == KindString:
		return a.(NumberValue).Val == StringToNumber(b.(StringValue).Val), nil
	case a.Kind() == KindString && b.Kind() == KindNumber:
		return StringToNumber(a.(StringValue).Val) == b.(NumberValue).Val, nil
	case a.Kind() == KindBoolean:
		n, _ := ToNumber(r, a)
		return LooseEquals(r, Number(n), b)
	case b.Kind() == KindBoolean:
		n, _ := ToNumber(r, b)
		return LooseEquals(r, a, Number(n))
	case a.Kind() == KindObject && b.Kind() != KindObject:
		prim, err := ToPrimitive(r, a, "default")
		if err != nil {
			return false, err
		}
		return LooseEquals(r, prim, b)
	case b.Kind() == KindObject && a.Kind() != KindObject:
		prim, err := ToPrimitive(r, b, "default")
		if err != nil {
			return false, err
		}
		return LooseEquals(r, a, prim)
	}
	return false, nil
}

// ToIntegerOrInfinity truncates toward zero; NaN becomes 0.
func ToIntegerOrInfinity(r *Realm, v Value) (float64, error) {
	n, err := ToNumber(r, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) {
		return 0, nil
	}
	return math.Trunc(n), nil
}

func ToInt32(r *Realm, v Value) (int32, error) {
	n, err := ToNumber(r, v)
	if err != nil {
		return 0, err
	}
	return float64ToInt32(n), nil
}

func ToUint32(r *Realm, v Value) (uint32, error) {
	n, err := ToNumber(r, v)
	if err != nil {
		return 0, err
	}
	return uint32(float64ToInt32(n)), nil
}

func float64ToInt32(n float64) int32 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int32(uint32(int64(math.Mod(math.Trunc(n), 4294967296))))
}

// LengthOfArrayLike reads and clamps the length property.
func LengthOfArrayLike(r *Realm, obj *Object) (int, error) {
	v, err := obj.Get(r, lengthKey, obj)
	if err != nil {
		return 0, err
	}
	n, err := ToIntegerOrInfinity(r, v)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	if n > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(n), nil
}

// Describe renders a value for error messages without running user code.
func Describe(v Value) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case StringValue:
		if utf8.RuneCountInString(val.Val) > 40 {
			return strconv.Quote(string([]rune(val.Val)[:40]) + "...")
		}
		return strconv.Quote(val.Val)
	case *SymbolValue:
		return val.String()
	case *Object:
		if val.Function != nil {
			if name := FunctionName(val); name != "" {
				return name
			}
			return "function"
		}
		if val.Class == "Array" {
			return "array"
		}
		return "#<" + val.Class + ">"
	case *Reference:
		return val.ReferencedName().String()
	default:
		s, _ := ToString(nil, v)
		return s
	}
}
