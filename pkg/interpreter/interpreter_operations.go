package interpreter

import (
	"math"

	"lexenv/interpreter-go/pkg/runtime"
)

// applyBinaryOperator evaluates a binary operator on two values. Compound
// assignment reuses it with the operator minus its trailing "=".
func (i *Interpreter) applyBinaryOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return i.addValues(left, right)
	case "-", "*", "/", "%", "**":
		l, r, err := i.numericOperands(left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Number(arithmetic(op, l, r)), nil
	case "<", ">", "<=", ">=":
		return i.compareValues(op, left, right)
	case "==", "!=":
		eq, err := runtime.LooseEquals(i.realm, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(eq == (op == "==")), nil
	case "===":
		return runtime.Bool(runtime.StrictEquals(left, right)), nil
	case "!==":
		return runtime.Bool(!runtime.StrictEquals(left, right)), nil
	case "&", "|", "^", "<<", ">>":
		l, err := runtime.ToInt32(i.realm, left)
		if err != nil {
			return nil, err
		}
		r, err := runtime.ToInt32(i.realm, right)
		if err != nil {
			return nil, err
		}
		return runtime.Number(float64(bitwise(op, l, r))), nil
	case ">>>":
		l, err := runtime.ToUint32(i.realm, left)
		if err != nil {
			return nil, err
		}
		r, err := runtime.ToUint32(i.realm, right)
		if err != nil {
			return nil, err
		}
		return runtime.Number(float64(l >> (r & 31))), nil
	case "instanceof":
		return i.instanceOf(left, right)
	case "in":
		obj, ok := right.(*runtime.Object)
		if !ok {
			return nil, i.realm.ThrowTypeError("Cannot use 'in' operator to search for %s in %s", runtime.Describe(left), runtime.Describe(right))
		}
		key, err := runtime.ToPropertyKey(i.realm, left)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(obj.HasProperty(key)), nil
	default:
		return nil, i.realm.ThrowSyntaxError("Unknown binary operator %s", op)
	}
}

func (i *Interpreter) addValues(left, right runtime.Value) (runtime.Value, error) {
	lp, err := runtime.ToPrimitive(i.realm, left, "default")
	if err != nil {
		return nil, err
	}
	rp, err := runtime.ToPrimitive(i.realm, right, "default")
	if err != nil {
		return nil, err
	}
	_, lstr := lp.(runtime.StringValue)
	_, rstr := rp.(runtime.StringValue)
	if lstr || rstr {
		ls, err := runtime.ToString(i.realm, lp)
		if err != nil {
			return nil, err
		}
		rs, err := runtime.ToString(i.realm, rp)
		if err != nil {
			return nil, err
		}
		return runtime.String(ls + rs), nil
	}
	l, r, err := i.numericOperands(lp, rp)
	if err != nil {
		return nil, err
	}
	return runtime.Number(l + r), nil
}

func (i *Interpreter) numericOperands(left, right runtime.Value) (float64, float64, error) {
	l, err := runtime.ToNumber(i.realm, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := runtime.ToNumber(i.realm, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func arithmetic(op string, l, r float64) float64 {
	switch op {
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	case "%":
		if math.IsInf(r, 0) && !math.IsInf(l, 0) {
			return l
		}
		return math.Mod(l, r)
	default:
		if math.IsNaN(r) || (math.Abs(l) == 1 && math.IsInf(r, 0)) {
			return math.NaN()
		}
		return math.Pow(l, r)
	}
}

func bitwise(op string, l, r int32) int32 {
	switch op {
	case "&":
		return l & r
	case "|":
		return l | r
	case "^":
		return l ^ r
	case "<<":
		return l << (uint32(r) & 31)
	default:
		return l >> (uint32(r) & 31)
	}
}

// compareValues implements the relational operators. Any comparison with
// NaN is false.
func (i *Interpreter) compareValues(op string, left, right runtime.Value) (runtime.Value, error) {
	lp, err := runtime.ToPrimitive(i.realm, left, "number")
	if err != nil {
		return nil, err
	}
	rp, err := runtime.ToPrimitive(i.realm, right, "number")
	if err != nil {
		return nil, err
	}
	ls, lstr := lp.(runtime.StringValue)
	rs, rstr := rp.(runtime.StringValue)
	if lstr && rstr {
		switch op {
		case "<":
			return runtime.Bool(ls.Val < rs.Val), nil
		case ">":
			return runtime.Bool(ls.Val > rs.Val), nil
		case "<=":
			return runtime.Bool(ls.Val <= rs.Val), nil
		default:
			return runtime.Bool(ls.Val >= rs.Val), nil
		}
	}
	l, r, err := i.numericOperands(lp, rp)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(l) || math.IsNaN(r) {
		return runtime.False, nil
	}
	switch op {
	case "<":
		return runtime.Bool(l < r), nil
	case ">":
		return runtime.Bool(l > r), nil
	case "<=":
		return runtime.Bool(l <= r), nil
	default:
		return runtime.Bool(l >= r), nil
	}
}

// instanceOf walks the prototype chain of left looking for right.prototype.
func (i *Interpreter) instanceOf(left, right runtime.Value) (runtime.Value, error) {
	ctor, ok := right.(*runtime.Object)
	if !ok || !runtime.IsCallable(ctor) {
		return nil, i.realm.ThrowTypeError("Right-hand side of 'instanceof' is not callable")
	}
	obj, ok := left.(*runtime.Object)
	if !ok {
		return runtime.False, nil
	}
	protoValue, err := ctor.Get(i.realm, runtime.StringKey("prototype"), ctor)
	if err != nil {
		return nil, err
	}
	proto, ok := protoValue.(*runtime.Object)
	if !ok {
		return nil, i.realm.ThrowTypeError("Function has non-object prototype '%s' in instanceof check", runtime.Describe(protoValue))
	}
	for cur := obj.Prototype; cur != nil; cur = cur.Prototype {
		if cur == proto {
			return runtime.True, nil
		}
	}
	return runtime.False, nil
}
