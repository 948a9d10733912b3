package microjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/microjson"
)

func TestParseArrayInt(t *testing.T) {
	var count int
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindInt,
		Max:      10,
		CountOut: &count,
		IntDest:  make([]int64, 10),
	}
	_, status := microjson.ParseArrayString(`[1, 2, 3]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, 3, count)
	assert.Equal(t, []int64{1, 2, 3}, schema.IntDest[:3])
}

func TestParseArrayEmpty(t *testing.T) {
	var count int
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindInt,
		Max:      10,
		CountOut: &count,
		IntDest:  make([]int64, 10),
	}
	_, status := microjson.ParseArrayString(`[]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, 0, count)
}

func TestParseArrayTooManyElements(t *testing.T) {
	var count int
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindInt,
		Max:      3,
		CountOut: &count,
		IntDest:  make([]int64, 3),
	}
	_, status := microjson.ParseArrayString(`[1,2,3,4]`, &schema)
	assert.Equal(t, microjson.StatusTooManyElements, status)
	assert.Equal(t, []int64{1, 2, 3}, schema.IntDest)
	assert.NotEqual(t, 4, count)
}

func TestParseArrayBool(t *testing.T) {
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindBool,
		Max:      4,
		BoolDest: make([]bool, 4),
	}
	_, status := microjson.ParseArrayString(`[true, false, true]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, []bool{true, false, true}, schema.BoolDest[:3])
}

func TestParseArrayReal(t *testing.T) {
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindReal,
		Max:      4,
		RealDest: make([]float64, 4),
	}
	_, status := microjson.ParseArrayString(`[1.5, -2.25]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, []float64{1.5, -2.25}, schema.RealDest[:2])
}

func TestParseArrayString(t *testing.T) {
	schema := microjson.ArraySchema{
		ElemKind:    microjson.KindString,
		Max:         4,
		StringStore: make([]byte, 64),
		StringPtrs:  make([][]byte, 4),
	}
	_, status := microjson.ParseArrayString(`["alpha", "beta"]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, "alpha", string(schema.StringPtrs[0]))
	assert.Equal(t, "beta", string(schema.StringPtrs[1]))
}

func TestParseArrayHomogeneityViolation(t *testing.T) {
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindInt,
		Max:      4,
		IntDest:  make([]int64, 4),
	}
	_, status := microjson.ParseArrayString(`[1, "two", 3]`, &schema)
	assert.Equal(t, microjson.StatusBadNumber, status)
}

func TestParseArrayInvalidElementKind(t *testing.T) {
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindTime,
		Max:      4,
	}
	_, status := microjson.ParseArrayString(`["1970-01-01T00:00:00"]`, &schema)
	assert.Equal(t, microjson.StatusBadArrayKind, status)
}

func TestParseArrayMissingStart(t *testing.T) {
	schema := microjson.ArraySchema{ElemKind: microjson.KindInt, Max: 1, IntDest: make([]int64, 1)}
	_, status := microjson.ParseArrayString(`1, 2`, &schema)
	assert.Equal(t, microjson.StatusMissingArrayStart, status)
}

// TestParseArrayObjectBank drives the parallel object-array destination
// mode end to end: each element is an object whose fields are stored in
// per-field parallel slices indexed by element position, not in a flat
// struct array. This exercises default priming per element, index-based
// parallel addressing, and type reconciliation inside an array element
// together, rather than unit-testing resolveAddress alone.
func TestParseArrayObjectBank(t *testing.T) {
	fields := microjson.ObjectSchema{
		{Name: "val", Kind: microjson.KindInt, IntDest: make([]int64, 3)},
		{Name: "val", Kind: microjson.KindReal, RealDest: make([]float64, 3)},
	}

	var count int
	schema := microjson.ArraySchema{
		ElemKind: microjson.KindObject,
		Mode:     microjson.ArrayObjectBank,
		Max:      3,
		CountOut: &count,
		Object:   &fields,
	}

	_, status := microjson.ParseArrayString(`[{"val":1},{"val":2.5},{"val":3}]`, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, 3, count)

	assert.Equal(t, int64(1), fields[0].IntDest[0])
	assert.Equal(t, 0.0, fields[1].RealDest[0])

	assert.Equal(t, int64(0), fields[0].IntDest[1])
	assert.Equal(t, 2.5, fields[1].RealDest[1])

	assert.Equal(t, int64(3), fields[0].IntDest[2])
	assert.Equal(t, 0.0, fields[1].RealDest[2])
}

// TestParseArrayObjectBankRejectsParallelString confirms that a string
// field inside an object-array element in parallel mode is rejected as
// soon as an element beyond index 0 is primed, since a shared StringDest
// buffer can't hold more than one element's text at once.
func TestParseArrayObjectBankRejectsParallelString(t *testing.T) {
	fields := microjson.ObjectSchema{
		{Name: "label", Kind: microjson.KindString, StringDest: make([]byte, 16)},
	}

	schema := microjson.ArraySchema{
		ElemKind: microjson.KindObject,
		Mode:     microjson.ArrayObjectBank,
		Max:      2,
		Object:   &fields,
	}

	_, status := microjson.ParseArrayString(`[{"label":"a"},{"label":"b"}]`, &schema)
	assert.Equal(t, microjson.StatusArrayElementError, status)
}

func TestParseArrayEndCursorAllowsContinuation(t *testing.T) {
	schema := microjson.ArraySchema{ElemKind: microjson.KindInt, Max: 4, IntDest: make([]int64, 4)}
	end, status := microjson.ParseArrayString(`[1,2] `, &schema)
	require.Equal(t, microjson.StatusOK, status)
	assert.Equal(t, 6, end)
}
