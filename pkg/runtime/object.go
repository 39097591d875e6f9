package runtime

import (
	"sort"
)

// Property is an own property slot. Accessor properties leave Value nil.
type Property struct {
	Value        Value
	Getter       *Object
	Setter       *Object
	Accessor     bool
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// DataProperty builds the default writable, enumerable, configurable slot.
func DataProperty(v Value) Property {
	return Property{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// Object is an ordinary object. Exotic behaviour is keyed off Class
// ("Array" keeps length in sync) and the optional internal slots.
type Object struct {
	Class      string
	Prototype  *Object
	Extensible bool

	Function  *FunctionData
	Primitive Value
	MapData   *MapData
	SetData   *SetData
	Iteration IteratorState
	ErrorData bool

	props map[PropertyKey]*Property
	keys  []PropertyKey
}

func (o *Object) Kind() Kind { return KindObject }

// NewObject creates an ordinary extensible object.
func NewObject(proto *Object) *Object {
	return &Object{
		Class:      "Object",
		Prototype:  proto,
		Extensible: true,
		props:      make(map[PropertyKey]*Property),
	}
}

// GetOwnProperty returns a copy of the own property, or nil.
func (o *Object) GetOwnProperty(key PropertyKey) *Property {
	prop, ok := o.props[key]
	if !ok {
		return nil
	}
	cp := *prop
	return &cp
}

func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.props[key]
	return ok
}

// HasProperty walks the prototype chain.
func (o *Object) HasProperty(key PropertyKey) bool {
	for cur := o; cur != nil; cur = cur.Prototype {
		if cur.HasOwnProperty(key) {
			return true
		}
	}
	return false
}

// DefineOwnProperty validates and applies a full property description.
func (o *Object) DefineOwnProperty(key PropertyKey, desc Property) bool {
	current, exists := o.props[key]
	if !exists {
		if !o.Extensible {
			return false
		}
		if o.Class == "Array" {
			if !o.growArrayLength(key) {
				return false
			}
		}
		prop := desc
		o.props[key] = &prop
		o.keys = append(o.keys, key)
		return true
	}
	if !current.Configurable {
		if desc.Configurable || desc.Enumerable != current.Enumerable || desc.Accessor != current.Accessor {
			return false
		}
		if current.Accessor {
			if desc.Getter != current.Getter || desc.Setter != current.Setter {
				return false
			}
		} else if !current.Writable {
			if desc.Writable || !SameValue(desc.Value, current.Value) {
				return false
			}
		}
	}
	if o.Class == "Array" && key.Name == "length" && key.Symbol == nil {
		return o.setArrayLength(current, desc)
	}
	*current = desc
	return true
}

// DefinePropertyOrThrow is DefineOwnProperty with a TypeError on failure.
func (o *Object) DefinePropertyOrThrow(r *Realm, key PropertyKey, desc Property) error {
	if !o.DefineOwnProperty(key, desc) {
		return r.ThrowTypeError("Cannot redefine property: %s", key)
	}
	return nil
}

// CreateDataProperty defines an ordinary writable, enumerable, configurable
// data property.
func (o *Object) CreateDataProperty(key PropertyKey, v Value) bool {
	return o.DefineOwnProperty(key, DataProperty(v))
}

// defineBuiltin installs a non-enumerable data property on an intrinsic.
func (o *Object) defineBuiltin(key PropertyKey, v Value) {
	o.DefineOwnProperty(key, Property{Value: v, Writable: true, Configurable: true})
}

// Get implements [[Get]] with an explicit receiver.
func (o *Object) Get(r *Realm, key PropertyKey, receiver Value) (Value, error) {
	for cur := o; cur != nil; cur = cur.Prototype {
		prop, ok := cur.props[key]
		if !ok {
			continue
		}
		if !prop.Accessor {
			if prop.Value == nil {
				return Undefined, nil
			}
			return prop.Value, nil
		}
		if prop.Getter == nil {
			return Undefined, nil
		}
		return Call(r, prop.Getter, receiver)
	}
	return Undefined, nil
}

// Set implements [[Set]]. The boolean reports success; strict callers turn
// false into a TypeError.
func (o *Object) Set(r *Realm, key PropertyKey, v Value, receiver Value) (bool, error) {
	var own *Property
	for cur := o; cur != nil; cur = cur.Prototype {
		if prop, ok := cur.props[key]; ok {
			own = prop
			break
		}
	}
	if own == nil {
		own = &Property{Value: Undefined, Writable: true, Enumerable: true, Configurable: true}
	}
	if own.Accessor {
		if own.Setter == nil {
			return false, nil
		}
		if _, err := Call(r, own.Setter, receiver, v); err != nil {
			return false, err
		}
		return true, nil
	}
	if !own.Writable {
		return false, nil
	}
	target, ok := receiver.(*Object)
	if !ok {
		return false, nil
	}
	if existing, ok := target.props[key]; ok {
		if existing.Accessor || !existing.Writable {
			return false, nil
		}
		updated := *existing
		updated.Value = v
		return target.DefineOwnProperty(key, updated), nil
	}
	return target.CreateDataProperty(key, v), nil
}

// Delete removes a configurable own property.
func (o *Object) Delete(key PropertyKey) bool {
	prop, ok := o.props[key]
	if !ok {
		return true
	}
	if !prop.Configurable {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnPropertyKeys lists integer indices ascending, then string keys in
// insertion order, then symbols in insertion order.
func (o *Object) OwnPropertyKeys() []PropertyKey {
	var indices []uint32
	indexKeys := make(map[uint32]PropertyKey)
	var strs, syms []PropertyKey
	for _, key := range o.keys {
		if key.Symbol != nil {
			syms = append(syms, key)
			continue
		}
		if idx, ok := arrayIndex(key); ok {
			indices = append(indices, idx)
			indexKeys[idx] = key
			continue
		}
		strs = append(strs, key)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	out := make([]PropertyKey, 0, len(o.keys))
	for _, idx := range indices {
		out = append(out, indexKeys[idx])
	}
	out = append(out, strs...)
	return append(out, syms...)
}

// EnumerableOwnKeys lists enumerable own string keys.
func (o *Object) EnumerableOwnKeys() []PropertyKey {
	var out []PropertyKey
	for _, key := range o.OwnPropertyKeys() {
		if key.Symbol != nil {
			continue
		}
		if prop := o.props[key]; prop != nil && prop.Enumerable {
			out = append(out, key)
		}
	}
	return out
}

var lengthKey = StringKey("length")

func (o *Object) arrayLength() uint32 {
	prop, ok := o.props[lengthKey]
	if !ok {
		return 0
	}
	if n, ok := prop.Value.(NumberValue); ok {
		return uint32(n.Val)
	}
	return 0
}

func (o *Object) growArrayLength(key PropertyKey) bool {
	idx, ok := arrayIndex(key)
	if !ok {
		return true
	}
	length := o.props[lengthKey]
	if length == nil || idx < o.arrayLength() {
		return true
	}
	if !length.Writable {
		return false
	}
	length.Value = Number(float64(idx) + 1)
	return true
}

func (o *Object) setArrayLength(current *Property, desc Property) bool {
	n, ok := desc.Value.(NumberValue)
	if !ok || n.Val < 0 || n.Val != float64(uint32(n.Val)) {
		return false
	}
	newLen := uint32(n.Val)
	for _, key := range append([]PropertyKey(nil), o.keys...) {
		if idx, ok := arrayIndex(key); ok && idx >= newLen {
			if !o.Delete(key) {
				return false
			}
		}
	}
	*current = desc
	return true
}
