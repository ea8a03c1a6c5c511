package jsondelta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeShallowReplacesNestedWholesale(t *testing.T) {
	target := mustJSON(t, `{"a":{"x":1}}`)
	source := mustJSON(t, `{"a":{"y":2}}`)

	out, err := MergeShallow(target, source)
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":{"y":2}}`), out)
}

func TestMergeShallowKeepsUnrelatedKeys(t *testing.T) {
	target := mustJSON(t, `{"a":1,"b":{"deep":true}}`)
	source := mustJSON(t, `{"a":2,"c":3}`)

	out, err := MergeShallow(target, source)
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":2,"b":{"deep":true},"c":3}`), out)

	// The untouched branch is shared, not copied.
	before, _, _ := Get(target, "b")
	after, _, _ := Get(out, "b")
	assert.Same(t, before, after)
}

func TestMergeShallowEmptySourceReturnsTarget(t *testing.T) {
	target := mustJSON(t, `{"a":1}`)
	out, err := MergeShallow(target, mustJSON(t, `{}`))
	require.NoError(t, err)
	assert.Same(t, target, out)
}

func TestMergeShallowRequiresObjects(t *testing.T) {
	target := mustJSON(t, `{"a":1}`)

	out, err := MergeShallow(target, mustJSON(t, `[1]`))
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Same(t, target, out)

	_, err = MergeShallow(String("s"), mustJSON(t, `{}`))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMergeDeepCombinesNestedObjects(t *testing.T) {
	target := mustJSON(t, `{"a":{"x":1}}`)
	source := mustJSON(t, `{"a":{"y":2}}`)

	out, err := MergeDeep(target, source)
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":{"x":1,"y":2}}`), out)
}

func TestMergeDeepReplacesArraysWholesale(t *testing.T) {
	target := mustJSON(t, `{"xs":[1,2,3],"o":{"keep":1}}`)
	source := mustJSON(t, `{"xs":[9],"o":{"add":2}}`)

	out, err := MergeDeep(target, source)
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"xs":[9],"o":{"keep":1,"add":2}}`), out)
}

func TestMergeDeepSourceWinsScalarConflicts(t *testing.T) {
	target := mustJSON(t, `{"a":{"x":1},"b":"old"}`)
	source := mustJSON(t, `{"a":"flat","b":"new"}`)

	out, err := MergeDeep(target, source)
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":"flat","b":"new"}`), out)
}

// Deep merge is demonstrably non-associative when overlapping keys conflict
// in kind.
func TestMergeDeepNonAssociativity(t *testing.T) {
	a := mustJSON(t, `{"k":{"x":1}}`)
	b := mustJSON(t, `{"k":2}`)
	c := mustJSON(t, `{"k":{"y":3}}`)

	ab, err := MergeDeep(a, b)
	require.NoError(t, err)
	left, err := MergeDeep(ab, c)
	require.NoError(t, err)

	bc, err := MergeDeep(b, c)
	require.NoError(t, err)
	right, err := MergeDeep(a, bc)
	require.NoError(t, err)

	requireValueEqual(t, mustJSON(t, `{"k":{"y":3}}`), left)
	requireValueEqual(t, mustJSON(t, `{"k":{"x":1,"y":3}}`), right)
	assert.False(t, left.Equal(right))
}

func TestMergeDeepDepthGuard(t *testing.T) {
	target := mustJSON(t, `{"a":{"b":{"c":{"x":1}}}}`)
	source := mustJSON(t, `{"a":{"b":{"c":{"y":2}}}}`)

	_, err := MergeDeep(target, source, WithMaxDepth(2))
	require.ErrorIs(t, err, ErrDepthExceeded)

	out, err := MergeDeep(target, source, WithMaxDepth(3))
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":{"b":{"c":{"x":1,"y":2}}}}`), out)
}

func TestMergeAtPath(t *testing.T) {
	target := mustJSON(t, `{"user":{"profile":{"name":"alice","age":30}}}`)
	source := mustJSON(t, `{"age":31,"city":"paris"}`)

	out, err := MergeAtPath(target, source, "user.profile")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"user":{"profile":{"name":"alice","age":31,"city":"paris"}}}`), out)
}

func TestMergeAtPathTreatsAbsenceAsEmptyObject(t *testing.T) {
	target := mustJSON(t, `{"a":1}`)
	source := mustJSON(t, `{"x":1}`)

	out, err := MergeAtPath(target, source, "settings.flags")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":1,"settings":{"flags":{"x":1}}}`), out)
}

func TestMergeAtPathNonObjectSubtreeFails(t *testing.T) {
	target := mustJSON(t, `{"a":"scalar"}`)
	out, err := MergeAtPath(target, mustJSON(t, `{"x":1}`), "a")
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Same(t, target, out)
}

func TestMergeAtPathRootIsShallowMerge(t *testing.T) {
	target := mustJSON(t, `{"a":1}`)
	out, err := MergeAtPath(target, mustJSON(t, `{"b":2}`), "")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":1,"b":2}`), out)
}

func TestPatchScalarFallsBackToReplacement(t *testing.T) {
	// Object/object behaves like MergeShallow.
	out, err := PatchScalar(mustJSON(t, `{"a":1}`), mustJSON(t, `{"b":2}`))
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":1,"b":2}`), out)

	// Non-object source replaces wholesale instead of failing.
	out, err = PatchScalar(mustJSON(t, `{"a":1}`), String("flat"))
	require.NoError(t, err)
	requireValueEqual(t, String("flat"), out)

	// Non-object target is replaced too.
	out, err = PatchScalar(Null(), mustJSON(t, `{"a":1}`))
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"a":1}`), out)
}

func TestPatchNested(t *testing.T) {
	target := mustJSON(t, `{"cfg":{"retries":1},"v":"keep"}`)

	out, err := PatchNested(target, mustJSON(t, `{"retries":5}`), "cfg")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"cfg":{"retries":5},"v":"keep"}`), out)

	// A scalar subtree is replaced, not a type error.
	out, err = PatchNested(target, mustJSON(t, `{"n":1}`), "v")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"cfg":{"retries":1},"v":{"n":1}}`), out)

	// An absent subtree is created.
	out, err = PatchNested(target, String("x"), "fresh.leaf")
	require.NoError(t, err)
	requireValueEqual(t, mustJSON(t, `{"cfg":{"retries":1},"v":"keep","fresh":{"leaf":"x"}}`), out)
}
