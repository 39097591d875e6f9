package runtime

// Reference designates a binding or a property. The base is an environment
// record, a value, or nothing (unresolvable). References are immutable.
type Reference struct {
	env       EnvironmentRecord
	value     Value
	name      PropertyKey
	strict    bool
	thisValue Value
}

func (*Reference) Kind() Kind { return KindReference }

func NewEnvironmentReference(rec EnvironmentRecord, name string, strict bool) *Reference {
	Invariant(rec != nil, "environment reference to %q without a record", name)
	return &Reference{env: rec, name: StringKey(name), strict: strict}
}

func NewPropertyReference(base Value, key PropertyKey, strict bool) *Reference {
	Invariant(base != nil, "property reference to %s without a base", key)
	return &Reference{value: base, name: key, strict: strict}
}

// NewSuperReference carries the this value the property is read with.
func NewSuperReference(base Value, key PropertyKey, strict bool, thisValue Value) *Reference {
	Invariant(thisValue != nil, "super reference to %s without a this value", key)
	return &Reference{value: base, name: key, strict: strict, thisValue: thisValue}
}

func NewUnresolvableReference(name string, strict bool) *Reference {
	return &Reference{name: StringKey(name), strict: strict}
}

// Base returns the EnvironmentRecord or Value base, or nil when unresolvable.
func (ref *Reference) Base() any {
	if ref.env != nil {
		return ref.env
	}
	if ref.value != nil {
		return ref.value
	}
	return nil
}

// EnvironmentBase returns the record base of an environment reference.
func (ref *Reference) EnvironmentBase() (EnvironmentRecord, bool) {
	return ref.env, ref.env != nil
}

func (ref *Reference) ReferencedName() PropertyKey { return ref.name }

// Name is the referenced name as a string; symbol keys render as
// Symbol(description).
func (ref *Reference) Name() string { return ref.name.String() }

func (ref *Reference) IsUnresolvable() bool {
	return ref.env == nil && ref.value == nil
}

func (ref *Reference) HasPrimitiveBase() bool {
	return ref.value != nil && IsPrimitive(ref.value)
}

func (ref *Reference) IsPropertyReference() bool {
	if ref.value == nil {
		return false
	}
	return IsObject(ref.value) || ref.HasPrimitiveBase()
}

func (ref *Reference) IsStrict() bool { return ref.strict }

func (ref *Reference) IsSuper() bool { return ref.thisValue != nil }

// ThisValue is the receiver used for property access.
func (ref *Reference) ThisValue() Value {
	Invariant(ref.IsPropertyReference(), "this value of non-property reference %s", ref.name)
	if ref.thisValue != nil {
		return ref.thisValue
	}
	return ref.value
}

// GetValue dereferences v. Non-references pass through unchanged.
func GetValue(r *Realm, v Value) (Value, error) {
	ref, ok := v.(*Reference)
	if !ok {
		return v, nil
	}
	if ref.IsUnresolvable() {
		return nil, r.ThrowReferenceError("%s is not defined", ref.Name())
	}
	if ref.IsPropertyReference() {
		base, err := ToObject(r, ref.value)
		if err != nil {
			return nil, err
		}
		return base.Get(r, ref.name, ref.ThisValue())
	}
	if ref.value != nil {
		return nil, r.ThrowTypeError("Cannot read properties of %s (reading '%s')", Describe(ref.value), ref.Name())
	}
	Invariant(ref.env != nil, "reference %s has a non-object value base", ref.name)
	return ref.env.GetBindingValue(r, ref.name.Name, ref.strict)
}

// PutValue stores w through v.
func PutValue(r *Realm, v Value, w Value) error {
	ref, ok := v.(*Reference)
	if !ok {
		return r.ThrowReferenceError("Invalid assignment target")
	}
	if ref.IsUnresolvable() {
		if ref.strict {
			return r.ThrowReferenceError("%s is not defined", ref.Name())
		}
		_, err := r.GlobalObject.Set(r, ref.name, w, r.GlobalObject)
		return err
	}
	if ref.IsPropertyReference() {
		base, err := ToObject(r, ref.value)
		if err != nil {
			return err
		}
		ok, err := base.Set(r, ref.name, w, ref.ThisValue())
		if err != nil {
			return err
		}
		if !ok && ref.strict {
			return r.ThrowTypeError("Cannot assign to read only property '%s' of %s", ref.Name(), Describe(ref.value))
		}
		return nil
	}
	if ref.value != nil {
		return r.ThrowTypeError("Cannot set properties of %s (setting '%s')", Describe(ref.value), ref.Name())
	}
	Invariant(ref.env != nil, "reference %s has a non-object value base", ref.name)
	return ref.env.SetMutableBinding(r, ref.name.Name, w, ref.strict)
}

// InitializeReferencedBinding gives a resolved environment binding its first
// value.
func InitializeReferencedBinding(r *Realm, v Value, w Value) error {
	ref, ok := v.(*Reference)
	Invariant(ok, "InitializeReferencedBinding on a non-reference")
	Invariant(!ref.IsUnresolvable(), "InitializeReferencedBinding on unresolvable reference %s", ref.name)
	Invariant(ref.env != nil, "InitializeReferencedBinding on property reference %s", ref.name)
	return ref.env.InitializeBinding(r, ref.name.Name, w)
}
