package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingIterable yields 1..n and counts calls to return.
func countingIterable(r *Realm, n int, returns *int) *Object {
	iterable := NewObject(r.ObjectPrototype)
	r.defineSymbolMethod(iterable, r.SymbolIterator, 0, func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
		i := 0
		it := NewObject(r.ObjectPrototype)
		r.DefineMethod(it, "next", 0, func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			if i >= n {
				return CreateIterResultObject(r, Undefined, true), nil
			}
			i++
			return CreateIterResultObject(r, Number(float64(i)), false), nil
		})
		r.DefineMethod(it, "return", 0, func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			*returns++
			return CreateIterResultObject(r, Undefined, true), nil
		})
		return it, nil
	})
	return iterable
}

func TestIterableToListDrainsArrays(t *testing.T) {
	r := NewRealm()
	arr := r.NewArray([]Value{Number(1), String("two"), True})
	list, err := IterableToList(r, arr, nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{Number(1), String("two"), True}, list)

	chars, err := IterableToList(r, String("añb"), nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{String("a"), String("ñ"), String("b")}, chars)
}

func TestGetIteratorRejectsNonIterables(t *testing.T) {
	r := NewRealm()
	_, err := GetIterator(r, NewObject(r.ObjectPrototype), nil)
	tc := requireThrows(t, err, "TypeError")
	assert.Contains(t, ErrorMessage(tc.Value), "is not iterable")

	_, err = GetIterator(r, Number(1), nil)
	requireThrows(t, err, "TypeError")
}

func TestIteratorStepReportsExhaustion(t *testing.T) {
	r := NewRealm()
	returns := 0
	rec, err := GetIterator(r, countingIterable(r, 1, &returns), nil)
	require.NoError(t, err)

	first, err := IteratorStep(r, rec)
	require.NoError(t, err)
	require.NotNil(t, first)
	v, err := IteratorValue(r, first)
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)

	done, err := IteratorStep(r, rec)
	require.NoError(t, err)
	assert.Nil(t, done)
}

func TestIteratorCloseCompletionOrdering(t *testing.T) {
	r := NewRealm()

	t.Run("normal completion calls return", func(t *testing.T) {
		returns := 0
		rec, err := GetIterator(r, countingIterable(r, 3, &returns), nil)
		require.NoError(t, err)
		require.NoError(t, IteratorClose(r, rec, nil))
		assert.Equal(t, 1, returns)
	})

	t.Run("original throw wins over a throwing return", func(t *testing.T) {
		it := NewObject(r.ObjectPrototype)
		r.DefineMethod(it, "next", 0, func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return CreateIterResultObject(r, Undefined, false), nil
		})
		r.DefineMethod(it, "return", 0, func(r *Realm, _ Value, _ []Value, _ *Object) (Value, error) {
			return nil, r.ThrowRangeError("from return")
		})
		rec := &IteratorRecord{Iterator: it}
		original := r.ThrowTypeError("original")
		err := IteratorClose(r, rec, original)
		assert.Same(t, original, err)

		err = IteratorClose(r, rec, nil)
		requireThrows(t, err, "RangeError")
	})

	t.Run("non-object return result is a TypeError", func(t *testing.T) {
		it := NewObject(r.ObjectPrototype)
		r.DefineMethod(it, "return", 0, func(*Realm, Value, []Value, *Object) (Value, error) {
			return Number(1), nil
		})
		err := IteratorClose(r, &IteratorRecord{Iterator: it}, nil)
		requireThrows(t, err, "TypeError")
	})

	t.Run("missing return passes the completion through", func(t *testing.T) {
		it := NewObject(r.ObjectPrototype)
		original := r.ThrowTypeError("kept")
		assert.Same(t, original, IteratorClose(r, &IteratorRecord{Iterator: it}, original))
		assert.NoError(t, IteratorClose(r, &IteratorRecord{Iterator: it}, nil))
	})
}

func TestListIteratorRejectsForeignReceivers(t *testing.T) {
	r := NewRealm()
	a := r.CreateListIterator([]Value{Number(1)})
	b := r.CreateListIterator([]Value{Number(2)})
	nextA, err := a.Get(r, StringKey("next"), a)
	require.NoError(t, err)

	_, err = Call(r, nextA, b)
	requireThrows(t, err, "TypeError")

	res, err := Call(r, nextA, a)
	require.NoError(t, err)
	v, err := IteratorValue(r, res.(*Object))
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)
}

func TestCollectionIterators(t *testing.T) {
	r := NewRealm()
	m, err := Construct(r, r.Map, nil, nil)
	require.NoError(t, err)
	mapObj := m.(*Object)
	mapObj.MapData.Set(String("a"), Number(1))
	mapObj.MapData.Set(Number(-0.0), String("zero"))
	mapObj.MapData.Set(NaN, String("nan"))
	mapObj.MapData.Set(String("a"), Number(2))

	v, ok := mapObj.MapData.Get(Number(0))
	assert.True(t, ok)
	assert.Equal(t, String("zero"), v)
	v, ok = mapObj.MapData.Get(NaN)
	assert.True(t, ok)
	assert.Equal(t, String("nan"), v)
	assert.Equal(t, 3, mapObj.MapData.Size())

	it, err := r.CreateMapIterator(mapObj, IterateKeys)
	require.NoError(t, err)
	rec := &IteratorRecord{Iterator: it}
	rec.NextMethod, err = it.Get(r, StringKey("next"), it)
	require.NoError(t, err)

	first, err := IteratorStep(r, rec)
	require.NoError(t, err)
	key, err := IteratorValue(r, first)
	require.NoError(t, err)
	assert.Equal(t, String("a"), key)

	mapObj.MapData.Delete(Number(0))
	mapObj.MapData.Set(String("late"), Number(3))
	var rest []Value
	for {
		step, err := IteratorStep(r, rec)
		require.NoError(t, err)
		if step == nil {
			break
		}
		k, err := IteratorValue(r, step)
		require.NoError(t, err)
		rest = append(rest, k)
	}
	require.Len(t, rest, 2)
	assert.Equal(t, String("late"), rest[1])

	_, err = r.CreateMapIterator(NewObject(nil), IterateKeys)
	requireThrows(t, err, "TypeError")
	_, err = r.CreateSetIterator(mapObj, IterateValues)
	requireThrows(t, err, "TypeError")

	s, err := Construct(r, r.Set, []Value{r.NewArray([]Value{Number(1), Number(1), Number(2)})}, nil)
	require.NoError(t, err)
	values, err := IterableToList(r, s, nil)
	require.NoError(t, err)
	assert.Equal(t, []Value{Number(1), Number(2)}, values)
}

func TestMapConstructorClosesIteratorOnBadEntry(t *testing.T) {
	r := NewRealm()
	returns := 0
	_, err := Construct(r, r.Map, []Value{countingIterable(r, 3, &returns)}, nil)
	requireThrows(t, err, "TypeError")
	assert.Equal(t, 1, returns)
}
