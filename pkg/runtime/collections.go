package runtime

import (
	"math"
)

// MapEntry is one slot of a collection. Deleted slots keep their position
// so live iterators can step past them.
type MapEntry struct {
	Key     Value
	Value   Value
	deleted bool
}

// collectionKey normalizes values under SameValueZero.
type collectionKey struct {
	kind Kind
	num  uint64
	str  string
	ref  any
}

func keyOf(v Value) collectionKey {
	switch val := v.(type) {
	case NumberValue:
		f := val.Val
		if f == 0 {
			f = 0
		}
		if math.IsNaN(f) {
			return collectionKey{kind: KindNumber, num: 0x7ff8000000000001}
		}
		return collectionKey{kind: KindNumber, num: math.Float64bits(f)}
	case StringValue:
		return collectionKey{kind: KindString, str: val.Val}
	case BooleanValue:
		if val.Val {
			return collectionKey{kind: KindBoolean, num: 1}
		}
		return collectionKey{kind: KindBoolean}
	case *SymbolValue:
		return collectionKey{kind: KindSymbol, ref: val}
	case *Object:
		return collectionKey{kind: KindObject, ref: val}
	case nil:
		return collectionKey{kind: KindUndefined}
	default:
		return collectionKey{kind: v.Kind()}
	}
}

// MapData is an insertion-ordered table keyed by SameValueZero.
type MapData struct {
	entries []*MapEntry
	index   map[collectionKey]*MapEntry
}

func NewMapData() *MapData {
	return &MapData{index: make(map[collectionKey]*MapEntry)}
}

func (m *MapData) Get(key Value) (Value, bool) {
	if entry, ok := m.index[keyOf(key)]; ok {
		return entry.Value, true
	}
	return Undefined, false
}

func (m *MapData) Has(key Value) bool {
	_, ok := m.index[keyOf(key)]
	return ok
}

func (m *MapData) Set(key, value Value) {
	if n, ok := key.(NumberValue); ok && n.Val == 0 {
		key = Number(0)
	}
	k := keyOf(key)
	if entry, ok := m.index[k]; ok {
		entry.Value = value
		return
	}
	entry := &MapEntry{Key: key, Value: value}
	m.entries = append(m.entries, entry)
	m.index[k] = entry
}

func (m *MapData) Delete(key Value) bool {
	k := keyOf(key)
	entry, ok := m.index[k]
	if !ok {
		return false
	}
	entry.deleted = true
	entry.Key, entry.Value = Empty, Empty
	delete(m.index, k)
	return true
}

func (m *MapData) Clear() {
	for _, entry := range m.entries {
		entry.deleted = true
		entry.Key, entry.Value = Empty, Empty
	}
	m.index = make(map[collectionKey]*MapEntry)
}

func (m *MapData) Size() int {
	return len(m.index)
}

// Entries returns the live entries in insertion order.
func (m *MapData) Entries() []*MapEntry {
	out := make([]*MapEntry, 0, len(m.index))
	for _, entry := range m.entries {
		if !entry.deleted {
			out = append(out, entry)
		}
	}
	return out
}

func (m *MapData) nextEntry(from int) (*MapEntry, int) {
	for i := from; i < len(m.entries); i++ {
		if !m.entries[i].deleted {
			return m.entries[i], i
		}
	}
	return nil, len(m.entries)
}

// SetData reuses the map table with keys only.
type SetData struct {
	MapData
}

func NewSetData() *SetData {
	return &SetData{MapData: MapData{index: make(map[collectionKey]*MapEntry)}}
}

func (s *SetData) Add(v Value) {
	s.MapData.Set(v, v)
}

func thisMapData(r *Realm, this Value, method string) (*MapData, error) {
	if obj, ok := this.(*Object); ok && obj.MapData != nil {
		return obj.MapData, nil
	}
	return nil, r.ThrowTypeError("Method Map.prototype.%s called on incompatible receiver %s", method, Describe(this))
}

func thisSetData(r *Realm, this Value, method string) (*SetData, error) {
	if obj, ok := this.(*Object); ok && obj.SetData != nil {
		return obj.SetData, nil
	}
	return nil, r.ThrowTypeError("Method Set.prototype.%s called on incompatible receiver %s", method, Describe(this))
}

// addEntriesFromIterable feeds each item of iterable to adder, closing the
// iterator when adder fails.
func addEntriesFromIterable(r *Realm, target *Object, iterable Value, adderName string, pairs bool) error {
	adder, err := target.Get(r, StringKey(adderName), target)
	if err != nil {
		return err
	}
	if !IsCallable(adder) {
		return r.ThrowTypeError("'%s' returned for property '%s' of object is not a function", Describe(adder), adderName)
	}
	rec, err := GetIterator(r, iterable, nil)
	if err != nil {
		return err
	}
	for {
		next, err := IteratorStep(r, rec)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		item, err := IteratorValue(r, next)
		if err != nil {
			return err
		}
		args := []Value{item}
		if pairs {
			entry, ok := item.(*Object)
			if !ok {
				return IteratorClose(r, rec, r.ThrowTypeError("Iterator value %s is not an entry object", Describe(item)))
			}
			k, err := entry.Get(r, IndexKey(0), entry)
			if err != nil {
				return IteratorClose(r, rec, err)
			}
			v, err := entry.Get(r, IndexKey(1), entry)
			if err != nil {
				return IteratorClose(r, rec, err)
			}
			args = []Value{k, v}
		}
		if _, err := Call(r, adder, target, args...); err != nil {
			return IteratorClose(r, rec, err)
		}
	}
}

func (r *Realm) setupCollections() {
	mapProto := r.MapPrototype
	r.defineMethod(mapProto, "get", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "get")
		if err != nil {
			return nil, err
		}
		v, _ := m.Get(Argument(args, 0))
		return v, nil
	})
	r.defineMethod(mapProto, "set", 2, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "set")
		if err != nil {
			return nil, err
		}
		m.Set(Argument(args, 0), Argument(args, 1))
		return this, nil
	})
	r.defineMethod(mapProto, "has", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "has")
		if err != nil {
			return nil, err
		}
		return Bool(m.Has(Argument(args, 0))), nil
	})
	r.defineMethod(mapProto, "delete", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "delete")
		if err != nil {
			return nil, err
		}
		return Bool(m.Delete(Argument(args, 0))), nil
	})
	r.defineMethod(mapProto, "clear", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "clear")
		if err != nil {
			return nil, err
		}
		m.Clear()
		return Undefined, nil
	})
	r.defineGetter(mapProto, "size", func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "size")
		if err != nil {
			return nil, err
		}
		return Number(float64(m.Size())), nil
	})
	r.defineMethod(mapProto, "forEach", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		m, err := thisMapData(r, this, "forEach")
		if err != nil {
			return nil, err
		}
		fn := Argument(args, 0)
		for i := 0; ; i++ {
			entry, index := m.nextEntry(i)
			if entry == nil {
				return Undefined, nil
			}
			i = index
			if _, err := Call(r, fn, Argument(args, 1), entry.Value, entry.Key, this); err != nil {
				return nil, err
			}
		}
	})
	mapIter := func(name string, kind IterationKind) *Object {
		return r.defineMethod(mapProto, name, 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
			return r.CreateMapIterator(this, kind)
		})
	}
	mapIter("keys", IterateKeys)
	mapIter("values", IterateValues)
	mapProto.defineBuiltin(SymbolKey(r.SymbolIterator), mapIter("entries", IterateEntries))

	r.Map = r.NewNativeConstructor("Map", 0, mapProto,
		func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return nil, r.ThrowTypeError("Constructor Map requires 'new'")
		},
		func(r *Realm, _ Value, args []Value, newTarget *Object) (Value, error) {
			obj, err := OrdinaryCreateFromConstructor(r, newTarget, r.MapPrototype)
			if err != nil {
				return nil, err
			}
			obj.Class = "Map"
			obj.MapData = NewMapData()
			if iterable := Argument(args, 0); !IsNullish(iterable) {
				if err := addEntriesFromIterable(r, obj, iterable, "set", true); err != nil {
					return nil, err
				}
			}
			return obj, nil
		})

	setProto := r.SetPrototype
	r.defineMethod(setProto, "add", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "add")
		if err != nil {
			return nil, err
		}
		s.Add(Argument(args, 0))
		return this, nil
	})
	r.defineMethod(setProto, "has", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "has")
		if err != nil {
			return nil, err
		}
		return Bool(s.Has(Argument(args, 0))), nil
	})
	r.defineMethod(setProto, "delete", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "delete")
		if err != nil {
			return nil, err
		}
		return Bool(s.Delete(Argument(args, 0))), nil
	})
	r.defineMethod(setProto, "clear", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "clear")
		if err != nil {
			return nil, err
		}
		s.Clear()
		return Undefined, nil
	})
	r.defineGetter(setProto, "size", func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "size")
		if err != nil {
			return nil, err
		}
		return Number(float64(s.Size())), nil
	})
	r.defineMethod(setProto, "forEach", 1, func(r *Realm, this Value, args []Value, _ *Object) (Value, error) {
		s, err := thisSetData(r, this, "forEach")
		if err != nil {
			return nil, err
		}
		fn := Argument(args, 0)
		for i := 0; ; i++ {
			entry, index := s.nextEntry(i)
			if entry == nil {
				return Undefined, nil
			}
			i = index
			if _, err := Call(r, fn, Argument(args, 1), entry.Key, entry.Key, this); err != nil {
				return nil, err
			}
		}
	})
	r.defineMethod(setProto, "entries", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		return r.CreateSetIterator(this, IterateEntries)
	})
	values := r.defineMethod(setProto, "values", 0, func(r *Realm, this Value, _ []Value, _ *Object) (Value, error) {
		return r.CreateSetIterator(this, IterateValues)
	})
	setProto.defineBuiltin(StringKey("keys"), values)
	setProto.defineBuiltin(SymbolKey(r.SymbolIterator), values)

	r.Set = r.NewNativeConstructor("Set", 0, setProto,
		func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return nil, r.ThrowTypeError("Constructor Set requires 'new'")
		},
		func(r *Realm, _ Value, args []Value, newTarget *Object) (Value, error) {
			obj, err := OrdinaryCreateFromConstructor(r, newTarget, r.SetPrototype)
			if err != nil {
				return nil, err
			}
			obj.Class = "Set"
			obj.SetData = NewSetData()
			if iterable := Argument(args, 0); !IsNullish(iterable) {
				if err := addEntriesFromIterable(r, obj, iterable, "add", false); err != nil {
					return nil, err
				}
			}
			return obj, nil
		})
}
