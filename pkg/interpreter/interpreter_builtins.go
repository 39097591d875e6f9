package interpreter

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"lexenv/interpreter-go/pkg/runtime"
)

// initBuiltins installs the host globals that sit on top of the realm's
// intrinsics: console, print and a few Object/Array statics.
func (i *Interpreter) initBuiltins() {
	r := i.realm

	console := runtime.NewObject(r.ObjectPrototype)
	r.DefineMethod(console, "log", 0, i.nativePrint)
	r.DefineMethod(console, "error", 0, i.nativePrint)
	r.DefineGlobal("console", console)
	r.DefineGlobal("print", r.NewNativeFunction("print", 0, i.nativePrint))

	r.DefineMethod(r.Object, "keys", 1, func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		obj, err := runtime.ToObject(r, runtime.Argument(args, 0))
		if err != nil {
			return nil, err
		}
		keys := obj.EnumerableOwnKeys()
		out := make([]runtime.Value, len(keys))
		for idx, key := range keys {
			out[idx] = runtime.String(key.Name)
		}
		return runtime.CreateArrayFromList(r, out), nil
	})
	r.DefineMethod(r.Object, "values", 1, func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		obj, err := runtime.ToObject(r, runtime.Argument(args, 0))
		if err != nil {
			return nil, err
		}
		var out []runtime.Value
		for _, key := range obj.EnumerableOwnKeys() {
			v, err := obj.Get(r, key, obj)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return runtime.CreateArrayFromList(r, out), nil
	})
	r.DefineMethod(r.Object, "entries", 1, func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		obj, err := runtime.ToObject(r, runtime.Argument(args, 0))
		if err != nil {
			return nil, err
		}
		var out []runtime.Value
		for _, key := range obj.EnumerableOwnKeys() {
			v, err := obj.Get(r, key, obj)
			if err != nil {
				return nil, err
			}
			out = append(out, runtime.CreateArrayFromList(r, []runtime.Value{runtime.String(key.Name), v}))
		}
		return runtime.CreateArrayFromList(r, out), nil
	})
	r.DefineMethod(r.Object, "getPrototypeOf", 1, func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		obj, err := runtime.ToObject(r, runtime.Argument(args, 0))
		if err != nil {
			return nil, err
		}
		if obj.Prototype == nil {
			return runtime.Null, nil
		}
		return obj.Prototype, nil
	})
	r.DefineMethod(r.Array, "isArray", 1, func(_ *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		return runtime.Bool(runtime.IsArray(runtime.Argument(args, 0))), nil
	})
	r.DefineMethod(r.Array, "from", 1, func(r *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
		items, err := runtime.IterableToList(r, runtime.Argument(args, 0), nil)
		if err != nil {
			return nil, err
		}
		return runtime.CreateArrayFromList(r, items), nil
	})
}

func (i *Interpreter) nativePrint(_ *runtime.Realm, _ runtime.Value, args []runtime.Value, _ *runtime.Object) (runtime.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = FormatValue(arg)
	}
	if _, err := fmt.Fprintln(i.stdout, strings.Join(parts, " ")); err != nil {
		return nil, err
	}
	return runtime.Undefined, nil
}

// FormatValue renders a value the way console.log shows it. Top-level
// strings print bare; nested strings are quoted.
func FormatValue(v runtime.Value) string {
	if s, ok := v.(runtime.StringValue); ok {
		return s.Val
	}
	return formatNested(v, 0, nil)
}

const maxFormatDepth = 2

func formatNested(v runtime.Value, depth int, seen []*runtime.Object) string {
	switch val := v.(type) {
	case nil, runtime.UndefinedValue, runtime.EmptyValue:
		return "undefined"
	case runtime.NullValue:
		return "null"
	case runtime.BooleanValue:
		if val.Val {
			return "true"
		}
		return "false"
	case runtime.NumberValue:
		if val.Val == 0 && math.Signbit(val.Val) {
			return "-0"
		}
		return runtime.NumberToString(val.Val)
	case runtime.StringValue:
		return "'" + strings.ReplaceAll(val.Val, "'", "\\'") + "'"
	case *runtime.SymbolValue:
		return val.String()
	case *runtime.Object:
		return formatObject(val, depth, seen)
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

func formatObject(obj *runtime.Object, depth int, seen []*runtime.Object) string {
	for _, s := range seen {
		if s == obj {
			return "[Circular]"
		}
	}
	if obj.Function != nil {
		if name := runtime.FunctionName(obj); name != "" {
			return "[Function: " + name + "]"
		}
		return "[Function (anonymous)]"
	}
	if name := runtime.ErrorName(obj); name != "" {
		if msg := runtime.ErrorMessage(obj); msg != "" {
			return name + ": " + msg
		}
		return name
	}
	seen = append(seen, obj)

	var items []string
	prefix := ""
	opening, closing := "{", "}"
	switch {
	case runtime.IsArray(obj):
		if depth > maxFormatDepth {
			return "[Array]"
		}
		opening, closing = "[", "]"
		length, _ := obj.GetOwnProperty(runtime.StringKey("length")).Value.(runtime.NumberValue)
		for idx := 0; idx < int(length.Val); idx++ {
			prop := obj.GetOwnProperty(runtime.IndexKey(idx))
			if prop == nil {
				items = append(items, "<1 empty item>")
				continue
			}
			items = append(items, formatNested(prop.Value, depth+1, seen))
		}
	case obj.MapData != nil:
		if depth > maxFormatDepth {
			return "[Map]"
		}
		prefix = fmt.Sprintf("Map(%d) ", obj.MapData.Size())
		for _, entry := range obj.MapData.Entries() {
			items = append(items, formatNested(entry.Key, depth+1, seen)+" => "+formatNested(entry.Value, depth+1, seen))
		}
	case obj.SetData != nil:
		if depth > maxFormatDepth {
			return "[Set]"
		}
		prefix = fmt.Sprintf("Set(%d) ", obj.SetData.Size())
		for _, entry := range obj.SetData.Entries() {
			items = append(items, formatNested(entry.Key, depth+1, seen))
		}
	default:
		if depth > maxFormatDepth {
			return "[Object]"
		}
		for _, key := range obj.EnumerableOwnKeys() {
			prop := obj.GetOwnProperty(key)
			value := "[Getter/Setter]"
			if !prop.Accessor {
				value = formatNested(prop.Value, depth+1, seen)
			}
			items = append(items, formatKey(key.Name)+": "+value)
		}
	}
	if len(items) == 0 {
		return prefix + opening + closing
	}
	return prefix + opening + " " + strings.Join(items, ", ") + " " + closing
}

func formatKey(name string) string {
	if name == "" {
		return "''"
	}
	for idx, ch := range name {
		letter := ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		if !letter && (idx == 0 || ch < '0' || ch > '9') {
			return "'" + name + "'"
		}
	}
	return name
}

// GlobalNames lists the global bindings created by scripts, sorted. Host
// builtins are not included.
func (i *Interpreter) GlobalNames() []string {
	global, ok := i.realm.GlobalEnv.Record.(*runtime.GlobalRecord)
	if !ok {
		return nil
	}
	names := append([]string(nil), global.VarNames()...)
	names = append(names, global.DeclarativeRecord.Names()...)
	sort.Strings(names)
	return names
}
