package runtime

// GetIdentifierReference walks env outward until a record binds name.
func GetIdentifierReference(r *Realm, env *LexicalEnvironment, name string, strict bool) (*Reference, error) {
	for cur := env; cur != nil; cur = cur.Parent {
		found, err := cur.Record.HasBinding(r, name)
		if err != nil {
			return nil, err
		}
		if found {
			return NewEnvironmentReference(cur.Record, name, strict), nil
		}
	}
	return NewUnresolvableReference(name, strict), nil
}

// ResolveBinding resolves name from env, or from the running context's
// lexical environment when env is nil.
func ResolveBinding(r *Realm, name string, strict bool, env *LexicalEnvironment) (*Reference, error) {
	if env == nil {
		env = r.CurrentLexicalEnvironment()
	}
	return GetIdentifierReference(r, env, name, strict)
}

type thisBinder interface {
	GetThisBinding(r *Realm) (Value, error)
}

// GetThisEnvironment returns the nearest record that binds this.
func GetThisEnvironment(r *Realm) EnvironmentRecord {
	for env := r.CurrentLexicalEnvironment(); env != nil; env = env.Parent {
		if env.Record.HasThisBinding() {
			return env.Record
		}
	}
	Invariant(false, "no this environment; the global record always binds this")
	return nil
}

// ResolveThisBinding evaluates `this`.
func ResolveThisBinding(r *Realm) (Value, error) {
	rec := GetThisEnvironment(r)
	binder, ok := rec.(thisBinder)
	Invariant(ok, "%T has a this binding but no GetThisBinding", rec)
	return binder.GetThisBinding(r)
}
