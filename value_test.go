package jsondelta

import (
	"math"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustJSON parses a JSON literal or fails the test.
func mustJSON(t *testing.T, src string) *Value {
	t.Helper()
	v, err := ParseJSON([]byte(src))
	require.NoError(t, err, "parse %q", src)
	return v
}

// requireValueEqual compares two trees structurally and renders a unified
// diff of their canonical encodings on mismatch.
func requireValueEqual(t *testing.T, want, got *Value) {
	t.Helper()
	if want.Equal(got) {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(marshalJSONValue(want)) + "\n"),
		B:        difflib.SplitLines(string(marshalJSONValue(got)) + "\n"),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Fatalf("values differ:\n%s", diff)
}

func TestNumericEqualityAcrossIntAndFloat(t *testing.T) {
	assert.True(t, Int(1).Equal(Float(1.0)))
	assert.True(t, Float(2.0).Equal(Int(2)))
	assert.False(t, Int(1).Equal(Float(1.5)))
}

func TestEqualityIsTypeAware(t *testing.T) {
	assert.False(t, String("1").Equal(Int(1)))
	assert.False(t, Null().Equal(Bool(false)))
	assert.False(t, Int(0).Equal(Bool(false)))
	assert.True(t, Null().Equal(Null()))
	assert.True(t, (*Value)(nil).Equal(Null()))
}

func TestObjectEqualityIgnoresOrderArrayDoesNot(t *testing.T) {
	a := mustJSON(t, `{"x":1,"y":[1,2]}`)
	b := mustJSON(t, `{"y":[1,2],"x":1}`)
	assert.True(t, a.Equal(b))

	assert.False(t, mustJSON(t, `[1,2]`).Equal(mustJSON(t, `[2,1]`)))
	assert.False(t, mustJSON(t, `[1,2]`).Equal(mustJSON(t, `[1,2,3]`)))
}

func TestCompareHomogeneousScalars(t *testing.T) {
	cmp, err := Int(1).Compare(Float(1.5))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = String("b").Compare(String("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = Float(3.0).Compare(Int(3))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareHeterogeneousKindsIsTypeMismatch(t *testing.T) {
	_, err := Int(1).Compare(String("1"))
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Bool(true).Compare(Bool(false))
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = mustJSON(t, `[1]`).Compare(mustJSON(t, `[2]`))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNumberPreservesLargeIntegers(t *testing.T) {
	// 2^53+1 is not representable as a float64.
	n, err := NumberFromString("9007199254740993")
	require.NoError(t, err)
	i, ok := n.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), i)
	assert.Equal(t, "9007199254740993", n.String())

	// The rounded float neighbor must not compare equal.
	f := FloatNumber(9007199254740992.0)
	assert.False(t, n.Equal(f))
	assert.Equal(t, 1, n.Compare(f))
}

func TestNumberStringKeepsFloatMarker(t *testing.T) {
	assert.Equal(t, "1.0", FloatNumber(1.0).String())
	assert.Equal(t, "1.5", FloatNumber(1.5).String())
	assert.Equal(t, "42", IntNumber(42).String())

	// Re-parsing the canonical form keeps the int/float split.
	n, err := NumberFromString(FloatNumber(1.0).String())
	require.NoError(t, err)
	assert.False(t, n.IsInt())
}

func TestValueOfConvertsNativeTrees(t *testing.T) {
	v := ValueOf(map[string]any{
		"name":  "alice",
		"age":   30,
		"tags":  []any{"a", "b"},
		"score": 1.5,
		"extra": nil,
	})
	requireValueEqual(t, mustJSON(t, `{"name":"alice","age":30,"tags":["a","b"],"score":1.5,"extra":null}`), v)
}

func TestValueOfLargeUnsignedDoesNotWrap(t *testing.T) {
	v := ValueOf(uint64(math.MaxUint64))
	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.False(t, n.IsInt())
	assert.Greater(t, n.Float64(), 0.0)

	// uint takes the same overflow guard as uint64 on every platform.
	requireValueEqual(t, ValueOf(uint64(math.MaxUint)), ValueOf(uint(math.MaxUint)))
}

func TestValueOfRejectsUnsupportedTypes(t *testing.T) {
	assert.Panics(t, func() { ValueOf(make(chan int)) })
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "object", mustJSON(t, `{}`).Kind().String())
	assert.Equal(t, "array", mustJSON(t, `[]`).Kind().String())
	assert.Equal(t, "null", Null().Kind().String())
	assert.Equal(t, "number", Int(0).Kind().String())
}
