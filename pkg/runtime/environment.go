package runtime

import (
	"sync"
)

// EnvironmentRecord is a closed set: *DeclarativeRecord, *ObjectRecord,
// *FunctionRecord and *GlobalRecord.
type EnvironmentRecord interface {
	HasBinding(r *Realm, name string) (bool, error)
	CreateMutableBinding(r *Realm, name string, deletable bool) error
	CreateImmutableBinding(r *Realm, name string, strict bool) error
	InitializeBinding(r *Realm, name string, v Value) error
	SetMutableBinding(r *Realm, name string, v Value, strict bool) error
	GetBindingValue(r *Realm, name string, strict bool) (Value, error)
	DeleteBinding(r *Realm, name string) (bool, error)
	HasThisBinding() bool
	HasSuperBinding() bool
	WithBaseObject() Value

	isEnvironmentRecord()
}

// LexicalEnvironment links a record to its outer environment. The global
// environment has a nil Parent.
type LexicalEnvironment struct {
	Record EnvironmentRecord
	Parent *LexicalEnvironment
}

// NewDeclarativeEnvironment creates an empty declarative scope under outer.
func NewDeclarativeEnvironment(outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: NewDeclarativeRecord(), Parent: outer}
}

// NewObjectEnvironment exposes the properties of obj as bindings.
func NewObjectEnvironment(obj *Object, outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: &ObjectRecord{BindingObject: obj}, Parent: outer}
}

// NewFunctionEnvironment creates the scope of one call of f. The parent is
// the environment f closed over.
func NewFunctionEnvironment(f *Object, newTarget Value) *LexicalEnvironment {
	Invariant(f != nil && f.Function != nil, "function environment requires a function object")
	if newTarget == nil {
		newTarget = Undefined
	}
	rec := &FunctionRecord{
		DeclarativeRecord: DeclarativeRecord{bindings: make(map[string]*binding)},
		FunctionObject:    f,
		ThisValue:         Undefined,
		HomeObject:        f.Function.HomeObject,
		NewTarget:         newTarget,
	}
	if f.Function.ThisMode == ThisModeLexical {
		rec.ThisBindingStatus = ThisLexical
	} else {
		rec.ThisBindingStatus = ThisUninitialized
	}
	return &LexicalEnvironment{Record: rec, Parent: f.Function.Environment}
}

// NewGlobalEnvironment composes the global object record and an empty
// declarative record.
func NewGlobalEnvironment(globalObject *Object, thisValue *Object) *LexicalEnvironment {
	rec := &GlobalRecord{
		ObjectRecord:      &ObjectRecord{BindingObject: globalObject},
		DeclarativeRecord: NewDeclarativeRecord(),
		GlobalThisValue:   thisValue,
		varNames:          make(map[string]struct{}),
	}
	return &LexicalEnvironment{Record: rec}
}

//-----------------------------------------------------------------------------
// Declarative records
//-----------------------------------------------------------------------------

type binding struct {
	value       Value
	initialized bool
	mutable     bool
	deletable   bool
	strict      bool
}

// DeclarativeRecord stores bindings directly. The mutex keeps a table that
// is read through a captured closure consistent.
type DeclarativeRecord struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	names    []string
}

func NewDeclarativeRecord() *DeclarativeRecord {
	return &DeclarativeRecord{bindings: make(map[string]*binding)}
}

func (*DeclarativeRecord) isEnvironmentRecord() {}

func (d *DeclarativeRecord) lookup(name string) *binding {
	d.mu.RLock()
	b := d.bindings[name]
	d.mu.RUnlock()
	return b
}

func (d *DeclarativeRecord) HasBinding(_ *Realm, name string) (bool, error) {
	return d.lookup(name) != nil, nil
}

func (d *DeclarativeRecord) add(name string, b *binding) {
	d.mu.Lock()
	defer d.mu.Unlock()
	Invariant(d.bindings[name] == nil, "binding %q already exists", name)
	d.bindings[name] = b
	d.names = append(d.names, name)
}

func (d *DeclarativeRecord) CreateMutableBinding(r *Realm, name string, deletable bool) error {
	d.add(name, &binding{mutable: true, deletable: deletable})
	r.Logger.WithField("name", name).Trace("create mutable binding")
	return nil
}

func (d *DeclarativeRecord) CreateImmutableBinding(r *Realm, name string, strict bool) error {
	d.add(name, &binding{strict: strict})
	r.Logger.WithField("name", name).Trace("create immutable binding")
	return nil
}

func (d *DeclarativeRecord) InitializeBinding(r *Realm, name string, v Value) error {
	if err := d.initialize(name, v); err != nil {
		return err
	}
	r.Logger.WithField("name", name).Trace("initialize binding")
	return nil
}

func (d *DeclarativeRecord) initialize(name string, v Value) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.bindings[name]
	Invariant(b != nil, "initialize of missing binding %q", name)
	Invariant(!b.initialized, "binding %q is already initialized", name)
	b.value = v
	b.initialized = true
	return nil
}

func (d *DeclarativeRecord) SetMutableBinding(r *Realm, name string, v Value, strict bool) error {
	b := d.lookup(name)
	if b == nil {
		if strict {
			return r.ThrowReferenceError("%s is not defined", name)
		}
		if err := d.CreateMutableBinding(r, name, true); err != nil {
			return err
		}
		return d.InitializeBinding(r, name, v)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case !b.initialized:
		return r.ThrowReferenceError("Cannot access '%s' before initialization", name)
	case b.mutable:
		b.value = v
	case strict || b.strict:
		return r.ThrowTypeError("Assignment to constant variable.")
	}
	return nil
}

func (d *DeclarativeRecord) GetBindingValue(r *Realm, name string, _ bool) (Value, error) {
	b := d.lookup(name)
	if b == nil {
		return nil, r.ThrowReferenceError("%s is not defined", name)
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !b.initialized {
		return nil, r.ThrowReferenceError("Cannot access '%s' before initialization", name)
	}
	return b.value, nil
}

func (d *DeclarativeRecord) DeleteBinding(_ *Realm, name string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.bindings[name]
	if b == nil {
		return true, nil
	}
	if !b.deletable {
		return false, nil
	}
	delete(d.bindings, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i:i], d.names[i+1:]...)
			break
		}
	}
	return true, nil
}

func (d *DeclarativeRecord) HasThisBinding() bool  { return false }
func (d *DeclarativeRecord) HasSuperBinding() bool { return false }
func (d *DeclarativeRecord) WithBaseObject() Value { return Undefined }

// Names lists the bindings in creation order.
func (d *DeclarativeRecord) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.names...)
}

// IsInitialized reports whether name exists and has left its uninitialized
// state.
func (d *DeclarativeRecord) IsInitialized(name string) bool {
	b := d.lookup(name)
	if b == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return b.initialized
}

// IsMutable reports whether name is a mutable binding.
func (d *DeclarativeRecord) IsMutable(name string) bool {
	b := d.lookup(name)
	return b != nil && b.mutable
}

// AsDeclarative returns the declarative part of rec. Function records
// qualify; object and global records do not.
func AsDeclarative(rec EnvironmentRecord) (*DeclarativeRecord, bool) {
	switch r := rec.(type) {
	case *DeclarativeRecord:
		return r, true
	case *FunctionRecord:
		return &r.DeclarativeRecord, true
	}
	return nil, false
}

//-----------------------------------------------------------------------------
// Object records
//-----------------------------------------------------------------------------

// ObjectRecord binds names to the properties of BindingObject.
type ObjectRecord struct {
	BindingObject   *Object
	WithEnvironment bool
}

func (*ObjectRecord) isEnvironmentRecord() {}

func (o *ObjectRecord) HasBinding(r *Realm, name string) (bool, error) {
	key := StringKey(name)
	if !o.BindingObject.HasProperty(key) {
		return false, nil
	}
	if !o.WithEnvironment {
		return true, nil
	}
	unscopables, err := o.BindingObject.Get(r, SymbolKey(r.SymbolUnscopables), o.BindingObject)
	if err != nil {
		return false, err
	}
	if blocked, ok := unscopables.(*Object); ok {
		v, err := blocked.Get(r, key, blocked)
		if err != nil {
			return false, err
		}
		if ToBoolean(v) {
			return false, nil
		}
	}
	return true, nil
}

func (o *ObjectRecord) CreateMutableBinding(r *Realm, name string, deletable bool) error {
	return o.BindingObject.DefinePropertyOrThrow(r, StringKey(name), Property{
		Value:        Undefined,
		Writable:     true,
		Enumerable:   true,
		Configurable: deletable,
	})
}

func (o *ObjectRecord) CreateImmutableBinding(_ *Realm, name string, _ bool) error {
	Invariant(false, "object environment records have no immutable bindings (%q)", name)
	return nil
}

func (o *ObjectRecord) InitializeBinding(r *Realm, name string, v Value) error {
	return o.SetMutableBinding(r, name, v, false)
}

func (o *ObjectRecord) SetMutableBinding(r *Realm, name string, v Value, strict bool) error {
	ok, err := o.BindingObject.Set(r, StringKey(name), v, o.BindingObject)
	if err != nil {
		return err
	}
	if !ok && strict {
		return r.ThrowTypeError("Cannot assign to read only property '%s' of object", name)
	}
	return nil
}

func (o *ObjectRecord) GetBindingValue(r *Realm, name string, strict bool) (Value, error) {
	key := StringKey(name)
	if !o.BindingObject.HasProperty(key) {
		if strict {
			return nil, r.ThrowReferenceError("%s is not defined", name)
		}
		return Undefined, nil
	}
	return o.BindingObject.Get(r, key, o.BindingObject)
}

func (o *ObjectRecord) DeleteBinding(_ *Realm, name string) (bool, error) {
	return o.BindingObject.Delete(StringKey(name)), nil
}

func (o *ObjectRecord) HasThisBinding() bool  { return false }
func (o *ObjectRecord) HasSuperBinding() bool { return false }

func (o *ObjectRecord) WithBaseObject() Value {
	if o.WithEnvironment {
		return o.BindingObject
	}
	return Undefined
}

//-----------------------------------------------------------------------------
// Function records
//-----------------------------------------------------------------------------

type ThisBindingStatus int

const (
	ThisLexical ThisBindingStatus = iota
	ThisInitialized
	ThisUninitialized
)

func (s ThisBindingStatus) String() string {
	switch s {
	case ThisLexical:
		return "lexical"
	case ThisInitialized:
		return "initialized"
	default:
		return "uninitialized"
	}
}

// FunctionRecord is the declarative record of a function call plus its this
// binding state.
type FunctionRecord struct {
	DeclarativeRecord

	FunctionObject    *Object
	ThisBindingStatus ThisBindingStatus
	ThisValue         Value
	HomeObject        *Object
	NewTarget         Value
}

func (f *FunctionRecord) HasThisBinding() bool {
	return f.ThisBindingStatus != ThisLexical
}

func (f *FunctionRecord) HasSuperBinding() bool {
	return f.ThisBindingStatus != ThisLexical && f.HomeObject != nil
}

// BindThisValue initializes the this binding exactly once.
func (f *FunctionRecord) BindThisValue(r *Realm, v Value) (Value, error) {
	Invariant(f.ThisBindingStatus != ThisLexical, "cannot bind this in an arrow function environment")
	if f.ThisBindingStatus == ThisInitialized {
		return nil, r.ThrowReferenceError("this has already been initialized")
	}
	f.ThisValue = v
	f.ThisBindingStatus = ThisInitialized
	return v, nil
}

func (f *FunctionRecord) GetThisBinding(r *Realm) (Value, error) {
	Invariant(f.ThisBindingStatus != ThisLexical, "arrow function environments have no this binding")
	if f.ThisBindingStatus == ThisUninitialized {
		return nil, r.ThrowReferenceError("this is not initialized")
	}
	return f.ThisValue, nil
}

// GetSuperBase returns the prototype of the home object.
func (f *FunctionRecord) GetSuperBase() Value {
	if f.HomeObject == nil {
		return Undefined
	}
	if f.HomeObject.Prototype == nil {
		return Null
	}
	return f.HomeObject.Prototype
}

//-----------------------------------------------------------------------------
// Global records
//-----------------------------------------------------------------------------

// GlobalRecord resolves through its declarative record first, then the
// global object. A name never lives in both.
type GlobalRecord struct {
	ObjectRecord      *ObjectRecord
	DeclarativeRecord *DeclarativeRecord
	GlobalThisValue   *Object

	varNames map[string]struct{}
	varOrder []string
}

func (*GlobalRecord) isEnvironmentRecord() {}

func (g *GlobalRecord) HasBinding(r *Realm, name string) (bool, error) {
	if g.HasLexicalDeclaration(name) {
		return true, nil
	}
	return g.ObjectRecord.HasBinding(r, name)
}

func (g *GlobalRecord) CreateMutableBinding(r *Realm, name string, deletable bool) error {
	if err := g.checkLexicalSlot(r, name); err != nil {
		return err
	}
	return g.DeclarativeRecord.CreateMutableBinding(r, name, deletable)
}

func (g *GlobalRecord) CreateImmutableBinding(r *Realm, name string, strict bool) error {
	if err := g.checkLexicalSlot(r, name); err != nil {
		return err
	}
	return g.DeclarativeRecord.CreateImmutableBinding(r, name, strict)
}

func (g *GlobalRecord) checkLexicalSlot(r *Realm, name string) error {
	if g.HasLexicalDeclaration(name) || g.HasVarDeclaration(name) {
		return r.ThrowTypeError("Identifier '%s' has already been declared", name)
	}
	return nil
}

func (g *GlobalRecord) InitializeBinding(r *Realm, name string, v Value) error {
	if g.HasLexicalDeclaration(name) {
		return g.DeclarativeRecord.InitializeBinding(r, name, v)
	}
	return g.ObjectRecord.InitializeBinding(r, name, v)
}

func (g *GlobalRecord) SetMutableBinding(r *Realm, name string, v Value, strict bool) error {
	if g.HasLexicalDeclaration(name) {
		return g.DeclarativeRecord.SetMutableBinding(r, name, v, strict)
	}
	return g.ObjectRecord.SetMutableBinding(r, name, v, strict)
}

func (g *GlobalRecord) GetBindingValue(r *Realm, name string, strict bool) (Value, error) {
	if g.HasLexicalDeclaration(name) {
		return g.DeclarativeRecord.GetBindingValue(r, name, strict)
	}
	return g.ObjectRecord.GetBindingValue(r, name, strict)
}

func (g *GlobalRecord) DeleteBinding(r *Realm, name string) (bool, error) {
	if g.HasLexicalDeclaration(name) {
		return g.DeclarativeRecord.DeleteBinding(r, name)
	}
	if !g.ObjectRecord.BindingObject.HasOwnProperty(StringKey(name)) {
		return true, nil
	}
	ok, err := g.ObjectRecord.DeleteBinding(r, name)
	if err != nil || !ok {
		return ok, err
	}
	g.removeVarName(name)
	return true, nil
}

func (g *GlobalRecord) HasThisBinding() bool  { return true }
func (g *GlobalRecord) HasSuperBinding() bool { return false }
func (g *GlobalRecord) WithBaseObject() Value { return Undefined }

func (g *GlobalRecord) GetThisBinding(*Realm) (Value, error) {
	return g.GlobalThisValue, nil
}

func (g *GlobalRecord) HasVarDeclaration(name string) bool {
	_, ok := g.varNames[name]
	return ok
}

func (g *GlobalRecord) HasLexicalDeclaration(name string) bool {
	ok, _ := g.DeclarativeRecord.HasBinding(nil, name)
	return ok
}

// VarNames lists var-declared global names in declaration order.
func (g *GlobalRecord) VarNames() []string {
	return append([]string(nil), g.varOrder...)
}

// HasRestrictedGlobalProperty reports a non-configurable own property of the
// global object.
func (g *GlobalRecord) HasRestrictedGlobalProperty(name string) bool {
	prop := g.ObjectRecord.BindingObject.GetOwnProperty(StringKey(name))
	return prop != nil && !prop.Configurable
}

func (g *GlobalRecord) CanDeclareGlobalVar(name string) bool {
	global := g.ObjectRecord.BindingObject
	return global.HasOwnProperty(StringKey(name)) || global.Extensible
}

func (g *GlobalRecord) CanDeclareGlobalFunction(name string) bool {
	global := g.ObjectRecord.BindingObject
	prop := global.GetOwnProperty(StringKey(name))
	if prop == nil {
		return global.Extensible
	}
	if prop.Configurable {
		return true
	}
	return !prop.Accessor && prop.Writable && prop.Enumerable
}

func (g *GlobalRecord) CreateGlobalVarBinding(r *Realm, name string, deletable bool) error {
	Invariant(!g.HasLexicalDeclaration(name), "var %q collides with a lexical global", name)
	global := g.ObjectRecord.BindingObject
	if !global.HasOwnProperty(StringKey(name)) && global.Extensible {
		if err := g.ObjectRecord.CreateMutableBinding(r, name, deletable); err != nil {
			return err
		}
		if err := g.ObjectRecord.InitializeBinding(r, name, Undefined); err != nil {
			return err
		}
	}
	g.addVarName(name)
	return nil
}

func (g *GlobalRecord) CreateGlobalFunctionBinding(r *Realm, name string, v Value, deletable bool) error {
	Invariant(!g.HasLexicalDeclaration(name), "function %q collides with a lexical global", name)
	global := g.ObjectRecord.BindingObject
	key := StringKey(name)
	existing := global.GetOwnProperty(key)
	desc := Property{Value: v, Writable: true, Enumerable: true, Configurable: deletable}
	if existing != nil && !existing.Configurable {
		desc = *existing
		desc.Value = v
	}
	if err := global.DefinePropertyOrThrow(r, key, desc); err != nil {
		return err
	}
	if _, err := global.Set(r, key, v, global); err != nil {
		return err
	}
	g.addVarName(name)
	return nil
}

func (g *GlobalRecord) addVarName(name string) {
	if _, ok := g.varNames[name]; ok {
		return
	}
	g.varNames[name] = struct{}{}
	g.varOrder = append(g.varOrder, name)
}

func (g *GlobalRecord) removeVarName(name string) {
	if _, ok := g.varNames[name]; !ok {
		return
	}
	delete(g.varNames, name)
	for i, n := range g.varOrder {
		if n == name {
			g.varOrder = append(g.varOrder[:i:i], g.varOrder[i+1:]...)
			break
		}
	}
}
