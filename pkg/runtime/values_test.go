package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberToString(t *testing.T) {
	tests := map[float64]string{
		0:           "0",
		1:           "1",
		-1.5:        "-1.5",
		1e21:        "1e+21",
		1e-7:        "1e-7",
		123456789:   "123456789",
		0.000001:    "0.000001",
		math.Inf(1): "Infinity",
	}
	for in, want := range tests {
		assert.Equal(t, want, NumberToString(in), "format %v", in)
	}
	assert.Equal(t, "NaN", NumberToString(math.NaN()))
	assert.Equal(t, "0", NumberToString(math.Copysign(0, -1)))
}

func TestStringToNumber(t *testing.T) {
	assert.Equal(t, 0.0, StringToNumber("  "))
	assert.Equal(t, 255.0, StringToNumber("0xff"))
	assert.Equal(t, 12.5, StringToNumber(" 12.5 "))
	assert.True(t, math.IsNaN(StringToNumber("12px")))
	assert.True(t, math.IsNaN(StringToNumber("inf")))
	assert.True(t, math.IsInf(StringToNumber("-Infinity"), -1))
}

func TestSameValueVariants(t *testing.T) {
	negZero := Number(math.Copysign(0, -1))
	assert.False(t, SameValue(negZero, Number(0)))
	assert.True(t, SameValueZero(negZero, Number(0)))
	assert.True(t, SameValue(NaN, NaN))
	assert.False(t, StrictEquals(NaN, NaN))
	sym := NewSymbol("s")
	assert.True(t, SameValue(sym, sym))
	assert.False(t, SameValue(sym, NewSymbol("s")))
}

func TestArrayLengthTracksIndices(t *testing.T) {
	r := NewRealm()
	arr := r.NewArray([]Value{Number(1), Number(2)})
	arr.CreateDataProperty(IndexKey(5), Number(6))
	n, err := LengthOfArrayLike(r, arr)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = arr.Set(r, StringKey("length"), Number(1), arr)
	require.NoError(t, err)
	assert.False(t, arr.HasOwnProperty(IndexKey(1)))
	assert.False(t, arr.HasOwnProperty(IndexKey(5)))
}

func TestOwnPropertyKeysOrder(t *testing.T) {
	r := NewRealm()
	obj := NewObject(r.ObjectPrototype)
	sym := NewSymbol("s")
	obj.CreateDataProperty(StringKey("b"), Number(1))
	obj.CreateDataProperty(SymbolKey(sym), Number(2))
	obj.CreateDataProperty(StringKey("2"), Number(3))
	obj.CreateDataProperty(StringKey("a"), Number(4))
	obj.CreateDataProperty(StringKey("1"), Number(5))

	assert.Equal(t, []PropertyKey{
		StringKey("1"), StringKey("2"), StringKey("b"), StringKey("a"), SymbolKey(sym),
	}, obj.OwnPropertyKeys())
}

func TestContextStackSnapshotsInThrow(t *testing.T) {
	r := NewRealm()
	fn := r.NewNativeFunction("inner", 0, nil)
	r.PushContext(&ExecutionContext{Function: fn, LexicalEnvironment: r.GlobalEnv})
	err := r.ThrowTypeError("boom")
	r.PopContext()

	tc, ok := AsThrow(err)
	require.True(t, ok)
	assert.Equal(t, []string{"inner", "<script>"}, tc.StackTrace())
	assert.Equal(t, "Uncaught TypeError: boom", err.Error())
	assert.Equal(t, 1, r.ContextDepth())
}

func TestNestingGuard(t *testing.T) {
	r := NewRealm(WithMaxDepth(2))
	require.NoError(t, r.EnterNesting())
	require.NoError(t, r.EnterNesting())
	requireThrows(t, r.EnterNesting(), "RangeError")
	r.LeaveNesting()
	require.NoError(t, r.EnterNesting())
}
