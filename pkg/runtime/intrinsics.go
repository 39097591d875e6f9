package runtime

import (
	"math"
	"strings"
)

func (r *Realm) createIntrinsics() {
	r.SymbolIterator = NewSymbol("Symbol.iterator")
	r.SymbolUnscopables = NewSymbol("Symbol.unscopables")
	r.SymbolToStringTag = NewSymbol("Symbol.toStringTag")

	r.ObjectPrototype = NewObject(nil)
	r.FunctionPrototype = NewObject(r.ObjectPrototype)
	r.FunctionPrototype.Class = "Function"
	r.FunctionPrototype.Function = &FunctionData{
		ThisMode: ThisModeStrict,
		Call: func(*Realm, Value, []Value, *Object) (Value, error) {
			return Undefined, nil
		},
	}

	r.ArrayPrototype = NewObject(r.ObjectPrototype)
	r.ArrayPrototype.Class = "Array"
	r.ArrayPrototype.DefineOwnProperty(lengthKey, Property{Value: Number(0), Writable: true})

	r.StringPrototype = r.boxPrimitive("String", r.ObjectPrototype, String(""))
	r.NumberPrototype = r.boxPrimitive("Number", r.ObjectPrototype, Number(0))
	r.BooleanPrototype = r.boxPrimitive("Boolean", r.ObjectPrototype, False)
	r.SymbolPrototype = NewObject(r.ObjectPrototype)

	r.IteratorPrototype = NewObject(r.ObjectPrototype)
	r.ArrayIteratorPrototype = NewObject(r.IteratorPrototype)
	r.MapIteratorPrototype = NewObject(r.IteratorPrototype)
	r.SetIteratorPrototype = NewObject(r.IteratorPrototype)
	r.MapPrototype = NewObject(r.ObjectPrototype)
	r.SetPrototype = NewObject(r.ObjectPrototype)

	r.setupObject()
	r.setupFunction()
	r.setupArray()
	r.setupPrimitiveWrappers()
	r.setupErrors()
	r.setupIterators()
	r.setupCollections()
}

// defineMethod installs a builtin method on obj.
func (r *Realm) defineMethod(obj *Object, name string, length int, fn NativeFunc) *Object {
	method := r.NewNativeFunction(name, length, fn)
	obj.defineBuiltin(StringKey(name), method)
	return method
}

func (r *Realm) defineSymbolMethod(obj *Object, sym *SymbolValue, length int, fn NativeFunc) *Object {
	method := r.NewNativeFunction("", length, fn)
	SetFunctionName(method, SymbolKey(sym), "")
	obj.defineBuiltin(SymbolKey(sym), method)
	return method
}

func (r *Realm) defineGetter(obj *Object, name string, fn NativeFunc) {
	getter := r.NewNativeFunction(name, 0, fn)
	SetFunctionName(getter, StringKey(name), "get")
	obj.DefineOwnProperty(StringKey(name), Property{Accessor: true, Getter: getter, Configurable: true})
}

func (r *Realm) setupObject() {
	proto := r.ObjectPrototype
	r.defineMethod(proto, "hasOwnProperty", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		key, err := ToPropertyKey(r, Argument(args, 0))
		if err != nil {
			return nil, err
		}
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return Bool(obj.HasOwnProperty(key)), nil
	})
	r.defineMethod(proto, "toString", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		switch this.Kind() {
		case KindUndefined:
			return String("[object Undefined]"), nil
		case KindNull:
			return String("[object Null]"), nil
		}
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		tag := obj.Class
		if tag == "global" || tag == "Iterator" {
			tag = "Object"
		}
		if obj.Function != nil {
			tag = "Function"
		}
		if custom, err := obj.Get(r, SymbolKey(r.SymbolToStringTag), obj); err != nil {
			return nil, err
		} else if s, ok := custom.(StringValue); ok {
			tag = s.Val
		}
		return String("[object " + tag + "]"), nil
	})
	r.defineMethod(proto, "valueOf", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return obj, nil
	})

	r.Object = r.NewNativeConstructor("Object", 1, proto,
		func(r *Realm, _ Value, args []Value, _ *Object) (Value, error) {
			v := Argument(args, 0)
			if IsNullish(v) {
				return NewObject(r.ObjectPrototype), nil
			}
			return ToObject(r, v)
		},
		func(r *Realm, _ Value, args []Value, newTarget *Object) (Value, error) {
			v := Argument(args, 0)
			if !IsNullish(v) {
				return ToObject(r, v)
			}
			return OrdinaryCreateFromConstructor(r, newTarget, r.ObjectPrototype)
		})
}

func (r *Realm) setupFunction() {
	proto := r.FunctionPrototype
	r.defineMethod(proto, "call", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		var rest []Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return Call(r, this, Argument(args, 0), rest...)
	})
	r.defineMethod(proto, "apply", 2, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		var list []Value
		if arr, ok := Argument(args, 1).(*Object); ok {
			n, err := LengthOfArrayLike(r, arr)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				v, err := arr.Get(r, IndexKey(i), arr)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
		}
		return Call(r, this, Argument(args, 0), list...)
	})
	r.defineMethod(proto, "toString", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		if !IsCallable(this) {
			return nil, r.ThrowTypeError("Function.prototype.toString requires that 'this' be a Function")
		}
		return String("function " + FunctionName(this.(*Object)) + "() { [native code] }"), nil
	})
	r.Function = r.NewNativeConstructor("Function", 1, proto,
		func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return nil, r.ThrowSyntaxError("dynamic function creation is not supported")
		},
		func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return nil, r.ThrowSyntaxError("dynamic function creation is not supported")
		})
}

// NewArray creates an array exotic object holding values.
func (r *Realm) NewArray(values []Value) *Object {
	arr := NewObject(r.ArrayPrototype)
	arr.Class = "Array"
	arr.DefineOwnProperty(lengthKey, Property{Value: Number(0), Writable: true})
	for i, v := range values {
		arr.CreateDataProperty(IndexKey(i), v)
	}
	return arr
}

// CreateArrayFromList wraps NewArray.
func CreateArrayFromList(r *Realm, values []Value) *Object {
	return r.NewArray(values)
}

func IsArray(v Value) bool {
	obj, ok := v.(*Object)
	return ok && obj.Class == "Array"
}

func (r *Realm) setupArray() {
	proto := r.ArrayPrototype
	r.defineMethod(proto, "push", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		n, err := LengthOfArrayLike(r, obj)
		if err != nil {
			return nil, err
		}
		for _, arg := range args {
			if _, err := obj.Set(r, IndexKey(n), arg, obj); err != nil {
				return nil, err
			}
			n++
		}
		if _, err := obj.Set(r, lengthKey, Number(float64(n)), obj); err != nil {
			return nil, err
		}
		return Number(float64(n)), nil
	})
	r.defineMethod(proto, "pop", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		n, err := LengthOfArrayLike(r, obj)
		if err != nil || n == 0 {
			return Undefined, err
		}
		v, err := obj.Get(r, IndexKey(n-1), obj)
		if err != nil {
			return nil, err
		}
		obj.Delete(IndexKey(n - 1))
		if _, err := obj.Set(r, lengthKey, Number(float64(n-1)), obj); err != nil {
			return nil, err
		}
		return v, nil
	})
	join := r.defineMethod(proto, "join", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		sep := ","
		if !IsUndefined(Argument(args, 0)) {
			if sep, err = ToString(r, args[0]); err != nil {
				return nil, err
			}
		}
		n, err := LengthOfArrayLike(r, obj)
		if err != nil {
			return nil, err
		}
		parts := make([]string, n)
		for i := 0; i < n; i++ {
			v, err := obj.Get(r, IndexKey(i), obj)
			if err != nil {
				return nil, err
			}
			if IsNullish(v) {
				continue
			}
			if parts[i], err = ToString(r, v); err != nil {
				return nil, err
			}
		}
		return String(strings.Join(parts, sep)), nil
	})
	proto.defineBuiltin(StringKey("toString"), join)
	r.defineMethod(proto, "indexOf", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		n, err := LengthOfArrayLike(r, obj)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if !obj.HasProperty(IndexKey(i)) {
				continue
			}
			v, err := obj.Get(r, IndexKey(i), obj)
			if err != nil {
				return nil, err
			}
			if StrictEquals(v, Argument(args, 0)) {
				return Number(float64(i)), nil
			}
		}
		return Number(-1), nil
	})
	r.defineMethod(proto, "slice", 2, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		n, err := LengthOfArrayLike(r, obj)
		if err != nil {
			return nil, err
		}
		start, err := relativeIndex(r, Argument(args, 0), n, 0)
		if err != nil {
			return nil, err
		}
		end, err := relativeIndex(r, Argument(args, 1), n, n)
		if err != nil {
			return nil, err
		}
		var out []Value
		for i := start; i < end; i++ {
			v, err := obj.Get(r, IndexKey(i), obj)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return r.NewArray(out), nil
	})
	for _, name := range []string{"forEach", "map"} {
		collect := name == "map"
		r.defineMethod(proto, name, 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
			obj, err := ToObject(r, this)
			if err != nil {
				return nil, err
			}
			n, err := LengthOfArrayLike(r, obj)
			if err != nil {
				return nil, err
			}
			fn := Argument(args, 0)
			if !IsCallable(fn) {
				return nil, r.ThrowTypeError("%s is not a function", Describe(fn))
			}
			var out []Value
			for i := 0; i < n; i++ {
				if !obj.HasProperty(IndexKey(i)) {
					if collect {
						out = append(out, Undefined)
					}
					continue
				}
				v, err := obj.Get(r, IndexKey(i), obj)
				if err != nil {
					return nil, err
				}
				res, err := Call(r, fn, Argument(args, 1), v, Number(float64(i)), obj)
				if err != nil {
					return nil, err
				}
				if collect {
					out = append(out, res)
				}
			}
			if collect {
				return r.NewArray(out), nil
			}
			return Undefined, nil
		})
	}
	r.defineMethod(proto, "keys", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return r.CreateArrayIterator(obj, IterateKeys), nil
	})
	r.defineMethod(proto, "entries", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return r.CreateArrayIterator(obj, IterateEntries), nil
	})
	values := r.defineMethod(proto, "values", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, err := ToObject(r, this)
		if err != nil {
			return nil, err
		}
		return r.CreateArrayIterator(obj, IterateValues), nil
	})
	proto.defineBuiltin(SymbolKey(r.SymbolIterator), values)

	r.Array = r.NewNativeConstructor("Array", 1, proto, constructArray, constructArray)
}

func constructArray(r *Realm, _ Value, args []Value, _ *Object) (Value, error) {
	if len(args) == 1 {
		if n, ok := args[0].(NumberValue); ok {
			if n.Val < 0 || n.Val != math.Trunc(n.Val) || n.Val >= math.MaxUint32 {
				return nil, r.ThrowRangeError("Invalid array length")
			}
			arr := r.NewArray(nil)
			arr.DefineOwnProperty(lengthKey, Property{Value: n, Writable: true})
			return arr, nil
		}
	}
	return r.NewArray(append([]Value(nil), args...)), nil
}

func relativeIndex(r *Realm, v Value, length, fallback int) (int, error) {
	if IsUndefined(v) {
		return fallback, nil
	}
	n, err := ToIntegerOrInfinity(r, v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = math.Max(float64(length)+n, 0)
	}
	return int(math.Min(n, float64(length))), nil
}

func thisPrimitive(r *Realm, this Value, kind Kind, name string) (Value, error) {
	if this.Kind() == kind {
		return this, nil
	}
	if obj, ok := this.(*Object); ok && obj.Primitive != nil && obj.Primitive.Kind() == kind {
		return obj.Primitive, nil
	}
	return nil, r.ThrowTypeError("%s.prototype.valueOf requires that 'this' be a %s", name, name)
}

func (r *Realm) setupPrimitiveWrappers() {
	wrappers := []struct {
		proto *Object
		kind  Kind
		name  string
	}{
		{r.StringPrototype, KindString, "String"},
		{r.NumberPrototype, KindNumber, "Number"},
		{r.BooleanPrototype, KindBoolean, "Boolean"},
	}
	for _, w := range wrappers {
		w := w
		r.defineMethod(w.proto, "valueOf", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
			return thisPrimitive(r, this, w.kind, w.name)
		})
		r.defineMethod(w.proto, "toString", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
			v, err := thisPrimitive(r, this, w.kind, w.name)
			if err != nil {
				return nil, err
			}
			s, err := ToString(r, v)
			return String(s), err
		})
	}
	r.defineSymbolMethod(r.StringPrototype, r.SymbolIterator, 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		if err := RequireObjectCoercible(r, this); err != nil {
			return nil, err
		}
		s, err := ToString(r, this)
		if err != nil {
			return nil, err
		}
		var chars []Value
		for _, ch := range s {
			chars = append(chars, String(string(ch)))
		}
		return r.CreateListIterator(chars), nil
	})

	r.defineMethod(r.SymbolPrototype, "toString", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		v, err := thisPrimitive(r, this, KindSymbol, "Symbol")
		if err != nil {
			return nil, err
		}
		return String(v.(*SymbolValue).String()), nil
	})
	r.defineGetter(r.SymbolPrototype, "description", func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		v, err := thisPrimitive(r, this, KindSymbol, "Symbol")
		if err != nil {
			return nil, err
		}
		if sym := v.(*SymbolValue); sym.HasDescription {
			return String(sym.Description), nil
		}
		return Undefined, nil
	})
	r.Symbol = r.NewNativeConstructor("Symbol", 0, r.SymbolPrototype,
		func(r *Realm, _ Value, args []Value, _ *Object) (Value, error) {
			if IsUndefined(Argument(args, 0)) {
				return &SymbolValue{}, nil
			}
			desc, err := ToString(r, args[0])
			if err != nil {
				return nil, err
			}
			return NewSymbol(desc), nil
		}, nil)
	for name, sym := range map[string]*SymbolValue{
		"iterator":    r.SymbolIterator,
		"unscopables": r.SymbolUnscopables,
		"toStringTag": r.SymbolToStringTag,
	} {
		r.Symbol.DefineOwnProperty(StringKey(name), Property{Value: sym})
	}
}

func (r *Realm) setupErrors() {
	r.ErrorPrototype = NewObject(r.ObjectPrototype)
	r.ErrorPrototype.defineBuiltin(nameKey, String("Error"))
	r.ErrorPrototype.defineBuiltin(StringKey("message"), String(""))
	r.defineMethod(r.ErrorPrototype, "toString", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, ok := this.(*Object)
		if !ok {
			return nil, r.ThrowTypeError("Error.prototype.toString requires that 'this' be an Object")
		}
		nameVal, err := obj.Get(r, nameKey, obj)
		if err != nil {
			return nil, err
		}
		name := "Error"
		if !IsUndefined(nameVal) {
			if name, err = ToString(r, nameVal); err != nil {
				return nil, err
			}
		}
		msgVal, err := obj.Get(r, StringKey("message"), obj)
		if err != nil {
			return nil, err
		}
		msg := ""
		if !IsUndefined(msgVal) {
			if msg, err = ToString(r, msgVal); err != nil {
				return nil, err
			}
		}
		switch {
		case name == "":
			return String(msg), nil
		case msg == "":
			return String(name), nil
		}
		return String(name + ": " + msg), nil
	})
	r.Error = r.errorConstructor("Error", r.ErrorPrototype)

	sub := func(name string) (*Object, *Object) {
		proto := NewObject(r.ErrorPrototype)
		proto.defineBuiltin(nameKey, String(name))
		proto.defineBuiltin(StringKey("message"), String(""))
		ctor := r.errorConstructor(name, proto)
		ctor.Prototype = r.Error
		return proto, ctor
	}
	r.TypeErrorPrototype, r.TypeError = sub("TypeError")
	r.ReferenceErrorPrototype, r.ReferenceError = sub("ReferenceError")
	r.SyntaxErrorPrototype, r.SyntaxError = sub("SyntaxError")
	r.RangeErrorPrototype, r.RangeError = sub("RangeError")
}

func (r *Realm) errorConstructor(name string, proto *Object) *Object {
	build := func(r *Realm, args []Value, newTarget *Object) (Value, error) {
		obj, err := OrdinaryCreateFromConstructor(r, newTarget, proto)
		if err != nil {
			return nil, err
		}
		obj.Class = "Error"
		obj.ErrorData = true
		if msg := Argument(args, 0); !IsUndefined(msg) {
			s, err := ToString(r, msg)
			if err != nil {
				return nil, err
			}
			obj.defineBuiltin(StringKey("message"), String(s))
		}
		return obj, nil
	}
	return r.NewNativeConstructor(name, 1, proto,
		func(r *Realm, _ Value, args []Value, _ *Object) (Value, error) {
			return build(r, args, nil)
		},
		func(r *Realm, _ Value, args []Value, newTarget *Object) (Value, error) {
			return build(r, args, newTarget)
		})
}

func (r *Realm) setDefaultGlobalBindings() {
	global := r.GlobalObject
	global.defineBuiltin(StringKey("globalThis"), global)
	global.DefineOwnProperty(StringKey("undefined"), Property{Value: Undefined})
	global.DefineOwnProperty(StringKey("NaN"), Property{Value: NaN})
	global.DefineOwnProperty(StringKey("Infinity"), Property{Value: Number(math.Inf(1))})
	for _, ctor := range []*Object{
		r.Object, r.Function, r.Array, r.Error, r.TypeError, r.ReferenceError,
		r.SyntaxError, r.RangeError, r.Map, r.Set, r.Symbol,
	} {
		global.defineBuiltin(StringKey(FunctionName(ctor)), ctor)
	}
}

// DefineGlobal installs a non-enumerable global property, as host builtins do.
func (r *Realm) DefineGlobal(name string, v Value) {
	r.GlobalObject.defineBuiltin(StringKey(name), v)
}

// DefineMethod exposes builtin installation to host packages.
func (r *Realm) DefineMethod(obj *Object, name string, length int, fn NativeFunc) *Object {
	return r.defineMethod(obj, name, length, fn)
}
