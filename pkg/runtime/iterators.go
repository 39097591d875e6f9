package runtime

import (
	"github.com/sirupsen/logrus"
)

// IteratorRecord threads one iterator through a destructuring or loop.
// Done only ever goes from false to true.
type IteratorRecord struct {
	Iterator   *Object
	NextMethod Value
	Done       bool
}

// IterationKind selects what a collection iterator yields.
type IterationKind int

const (
	IterateKeys IterationKind = iota
	IterateValues
	IterateEntries
)

// IteratorState is the internal state of a builtin iterator object.
type IteratorState interface {
	iteratorState()
}

type ListIteratorState struct {
	List      []Value
	NextIndex int
	Next      *Object
}

type ArrayIteratorState struct {
	Iterated  *Object
	NextIndex int
	Kind      IterationKind
}

type MapIteratorState struct {
	Map       *MapData
	NextIndex int
	Kind      IterationKind
}

type SetIteratorState struct {
	Set       *SetData
	NextIndex int
	Kind      IterationKind
}

func (*ListIteratorState) iteratorState()  {}
func (*ArrayIteratorState) iteratorState() {}
func (*MapIteratorState) iteratorState()   {}
func (*SetIteratorState) iteratorState()   {}

// GetIterator calls method (or v[@@iterator] when method is nil) and
// records the iterator with its next method.
func GetIterator(r *Realm, v Value, method Value) (*IteratorRecord, error) {
	if method == nil {
		m, err := GetMethod(r, v, SymbolKey(r.SymbolIterator))
		if err != nil {
			return nil, err
		}
		method = m
	}
	if IsUndefined(method) {
		return nil, r.ThrowTypeError("%s is not iterable", Describe(v))
	}
	iterator, err := Call(r, method, v)
	if err != nil {
		return nil, err
	}
	obj, ok := iterator.(*Object)
	if !ok {
		return nil, r.ThrowTypeError("Result of the Symbol.iterator method is not an object")
	}
	next, err := obj.Get(r, StringKey("next"), obj)
	if err != nil {
		return nil, err
	}
	return &IteratorRecord{Iterator: obj, NextMethod: next}, nil
}

// IteratorNext calls next and checks that the result is an object.
func IteratorNext(r *Realm, rec *IteratorRecord, value ...Value) (*Object, error) {
	result, err := Call(r, rec.NextMethod, rec.Iterator, value...)
	if err != nil {
		return nil, err
	}
	obj, ok := result.(*Object)
	if !ok {
		return nil, r.ThrowTypeError("Iterator result %s is not an object", Describe(result))
	}
	return obj, nil
}

func IteratorComplete(r *Realm, result *Object) (bool, error) {
	done, err := result.Get(r, StringKey("done"), result)
	if err != nil {
		return false, err
	}
	return ToBoolean(done), nil
}

func IteratorValue(r *Realm, result *Object) (Value, error) {
	return result.Get(r, StringKey("value"), result)
}

// IteratorStep advances the iterator. A nil result with a nil error means
// the iterator is exhausted.
func IteratorStep(r *Realm, rec *IteratorRecord) (*Object, error) {
	result, err := IteratorNext(r, rec)
	if err != nil {
		return nil, err
	}
	done, err := IteratorComplete(r, result)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, nil
	}
	return result, nil
}

// IteratorClose calls the iterator's return method. completion is the
// outcome of the work that is being cut short; a throw completion always
// wins over anything return does.
func IteratorClose(r *Realm, rec *IteratorRecord, completion error) error {
	r.Logger.WithFields(logrus.Fields{"completion": CompletionTypeOf(completion)}).Trace("iterator close")
	ret, err := GetMethod(r, rec.Iterator, StringKey("return"))
	if err != nil {
		if CompletionTypeOf(completion) == CompletionThrow {
			return completion
		}
		return err
	}
	if IsUndefined(ret) {
		return completion
	}
	inner, callErr := Call(r, ret, rec.Iterator)
	if CompletionTypeOf(completion) == CompletionThrow {
		return completion
	}
	if callErr != nil {
		return callErr
	}
	if !IsObject(inner) {
		return r.ThrowTypeError("Iterator result %s is not an object", Describe(inner))
	}
	return completion
}

// IterableToList drains an iterable into a slice.
func IterableToList(r *Realm, items Value, method Value) ([]Value, error) {
	rec, err := GetIterator(r, items, method)
	if err != nil {
		return nil, err
	}
	var values []Value
	for {
		next, err := IteratorStep(r, rec)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return values, nil
		}
		v, err := IteratorValue(r, next)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// CreateIterResultObject builds {value, done}.
func CreateIterResultObject(r *Realm, value Value, done bool) *Object {
	obj := NewObject(r.ObjectPrototype)
	obj.CreateDataProperty(StringKey("value"), value)
	obj.CreateDataProperty(StringKey("done"), Bool(done))
	return obj
}

// CreateListIterator iterates over a Go slice. The iterator carries its own
// next function, which refuses receivers it was not created for.
func (r *Realm) CreateListIterator(list []Value) *Object {
	iterator := NewObject(r.IteratorPrototype)
	iterator.Class = "Iterator"
	state := &ListIteratorState{List: list}
	var next *Object
	next = r.NewNativeFunction("next", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, ok := this.(*Object)
		if !ok {
			return nil, r.ThrowTypeError("next called on incompatible receiver %s", Describe(this))
		}
		st, ok := obj.Iteration.(*ListIteratorState)
		if !ok || !SameValue(st.Next, next) {
			return nil, r.ThrowTypeError("next called on incompatible receiver %s", Describe(this))
		}
		if st.NextIndex >= len(st.List) {
			return CreateIterResultObject(r, Undefined, true), nil
		}
		v := st.List[st.NextIndex]
		st.NextIndex++
		return CreateIterResultObject(r, v, false), nil
	})
	state.Next = next
	iterator.Iteration = state
	iterator.defineBuiltin(StringKey("next"), next)
	return iterator
}

// CreateArrayIterator backs Array.prototype.values, keys and entries.
func (r *Realm) CreateArrayIterator(array *Object, kind IterationKind) *Object {
	iterator := NewObject(r.ArrayIteratorPrototype)
	iterator.Class = "Array Iterator"
	iterator.Iteration = &ArrayIteratorState{Iterated: array, Kind: kind}
	return iterator
}

// CreateMapIterator fails with a TypeError when m has no map data.
func (r *Realm) CreateMapIterator(m Value, kind IterationKind) (*Object, error) {
	obj, ok := m.(*Object)
	if !ok || obj.MapData == nil {
		return nil, r.ThrowTypeError("%s is not a Map", Describe(m))
	}
	iterator := NewObject(r.MapIteratorPrototype)
	iterator.Class = "Map Iterator"
	iterator.Iteration = &MapIteratorState{Map: obj.MapData, Kind: kind}
	return iterator, nil
}

// CreateSetIterator fails with a TypeError when s has no set data.
func (r *Realm) CreateSetIterator(s Value, kind IterationKind) (*Object, error) {
	obj, ok := s.(*Object)
	if !ok || obj.SetData == nil {
		return nil, r.ThrowTypeError("%s is not a Set", Describe(s))
	}
	iterator := NewObject(r.SetIteratorPrototype)
	iterator.Class = "Set Iterator"
	iterator.Iteration = &SetIteratorState{Set: obj.SetData, Kind: kind}
	return iterator, nil
}

func (r *Realm) setupIterators() {
	r.defineSymbolMethod(r.IteratorPrototype, r.SymbolIterator, 0, func(_ *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		return this, nil
	})

	r.defineMethod(r.ArrayIteratorPrototype, "next", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, _ := this.(*Object)
		var st *ArrayIteratorState
		if obj != nil {
			st, _ = obj.Iteration.(*ArrayIteratorState)
		}
		if st == nil {
			return nil, r.ThrowTypeError("next method called on incompatible receiver %s", Describe(this))
		}
		if st.Iterated == nil {
			return CreateIterResultObject(r, Undefined, true), nil
		}
		length, err := LengthOfArrayLike(r, st.Iterated)
		if err != nil {
			return nil, err
		}
		if st.NextIndex >= length {
			st.Iterated = nil
			return CreateIterResultObject(r, Undefined, true), nil
		}
		index := st.NextIndex
		st.NextIndex++
		if st.Kind == IterateKeys {
			return CreateIterResultObject(r, Number(float64(index)), false), nil
		}
		v, err := st.Iterated.Get(r, IndexKey(index), st.Iterated)
		if err != nil {
			return nil, err
		}
		if st.Kind == IterateValues {
			return CreateIterResultObject(r, v, false), nil
		}
		return CreateIterResultObject(r, r.NewArray([]Value{Number(float64(index)), v}), false), nil
	})

	r.defineMethod(r.MapIteratorPrototype, "next", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, _ := this.(*Object)
		var st *MapIteratorState
		if obj != nil {
			st, _ = obj.Iteration.(*MapIteratorState)
		}
		if st == nil {
			return nil, r.ThrowTypeError("next method called on incompatible receiver %s", Describe(this))
		}
		if st.Map == nil {
			return CreateIterResultObject(r, Undefined, true), nil
		}
		entry, index := st.Map.nextEntry(st.NextIndex)
		if entry == nil {
			st.Map = nil
			return CreateIterResultObject(r, Undefined, true), nil
		}
		st.NextIndex = index + 1
		switch st.Kind {
		case IterateKeys:
			return CreateIterResultObject(r, entry.Key, false), nil
		case IterateValues:
			return CreateIterResultObject(r, entry.Value, false), nil
		default:
			return CreateIterResultObject(r, r.NewArray([]Value{entry.Key, entry.Value}), false), nil
		}
	})

	r.defineMethod(r.SetIteratorPrototype, "next", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		obj, _ := this.(*Object)
		var st *SetIteratorState
		if obj != nil {
			st, _ = obj.Iteration.(*SetIteratorState)
		}
		if st == nil {
			return nil, r.ThrowTypeError("next method called on incompatible receiver %s", Describe(this))
		}
		if st.Set == nil {
			return CreateIterResultObject(r, Undefined, true), nil
		}
		entry, index := st.Set.nextEntry(st.NextIndex)
		if entry == nil {
			st.Set = nil
			return CreateIterResultObject(r, Undefined, true), nil
		}
		st.NextIndex = index + 1
		if st.Kind == IterateEntries {
			return CreateIterResultObject(r, r.NewArray([]Value{entry.Key, entry.Key}), false), nil
		}
		return CreateIterResultObject(r, entry.Key, false), nil
	})
}
