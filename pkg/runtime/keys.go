package runtime

import (
	"math"
	"strconv"
)

// PropertyKey is a string or a symbol. A key with a non-nil Symbol ignores
// Name.
type PropertyKey struct {
	Name   string
	Symbol *SymbolValue
}

func StringKey(name string) PropertyKey {
	return PropertyKey{Name: name}
}

func SymbolKey(sym *SymbolValue) PropertyKey {
	return PropertyKey{Symbol: sym}
}

func IndexKey(i int) PropertyKey {
	return PropertyKey{Name: strconv.Itoa(i)}
}

func (k PropertyKey) IsSymbol() bool {
	return k.Symbol != nil
}

// Value converts the key back into a language value.
func (k PropertyKey) Value() Value {
	if k.Symbol != nil {
		return k.Symbol
	}
	return String(k.Name)
}

func (k PropertyKey) String() string {
	if k.Symbol != nil {
		return k.Symbol.String()
	}
	return k.Name
}

// arrayIndex reports whether the key is a canonical array index.
func arrayIndex(k PropertyKey) (uint32, bool) {
	if k.Symbol != nil || k.Name == "" || len(k.Name) > 10 {
		return 0, false
	}
	if len(k.Name) > 1 && k.Name[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(k.Name, 10, 64)
	if err != nil || n >= math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}
