package amount

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func legacySetHelpers(t *testing.T) MathHelpers {
	t.Helper()
	h, err := HelpersFor(KindSet)
	require.NoError(t, err)
	return h
}

func TestLegacySetStructuralMembership(t *testing.T) {
	h := legacySetHelpers(t)

	// Structurally equal objects are the same element even when they are
	// distinct allocations.
	left := SetValue{map[string]any{"id": "tick-1", "seat": float64(4)}}
	right := SetValue{map[string]any{"id": "tick-1", "seat": float64(4)}}

	require.True(t, h.IsGTE(left, right))
	require.True(t, h.IsEqual(left, right))

	_, err := h.Add(left, right)
	require.ErrorIs(t, err, ErrDuplicateElement)
}

func TestLegacySetAddAndSubtract(t *testing.T) {
	h := legacySetHelpers(t)

	a := SetValue{map[string]any{"id": "a"}}
	b := SetValue{map[string]any{"id": "b"}}

	union, err := h.Add(a, b)
	require.NoError(t, err)
	require.Len(t, union.(SetValue), 2)

	rest, err := h.Subtract(union, a)
	require.NoError(t, err)
	require.True(t, h.IsEqual(b, rest))

	_, err = h.Subtract(a, b)
	require.ErrorIs(t, err, ErrNegativeResult)
}

func TestLegacySetCoerceRejectsDuplicates(t *testing.T) {
	h := legacySetHelpers(t)

	_, err := h.Coerce(SetValue{"x", "x"})
	require.ErrorIs(t, err, ErrShape)

	v, err := h.Coerce(SetValue{"x", "y"})
	require.NoError(t, err)
	require.Len(t, v.(SetValue), 2)
}

// TestFingerprintNeverSplitsEquals is the safety property of the
// bucketing heuristic: structurally equal elements must always land in
// the same bucket, or duplicate detection would miss true duplicates.
func TestFingerprintNeverSplitsEquals(t *testing.T) {
	pairs := [][2]any{
		{"hello", "hello"},
		{float64(3), float64(3)},
		{true, true},
		{nil, nil},
		{[]any{"a", float64(1)}, []any{"a", float64(1)}},
		{
			map[string]any{"name": "alice", "age": float64(30)},
			map[string]any{"age": float64(30), "name": "alice"},
		},
		{
			map[string]any{"nested": map[string]any{"k": "v"}},
			map[string]any{"nested": map[string]any{"k": "v"}},
		},
	}

	for i, pair := range pairs {
		t.Run(fmt.Sprintf("pair-%d", i), func(t *testing.T) {
			require.True(t, structurallyEqual(pair[0], pair[1]))
			require.Equal(t, elementFingerprint(pair[0]), elementFingerprint(pair[1]))
		})
	}
}

// TestFingerprintCollisionsResolved: the fingerprint may bucket unequal
// elements together; the exact comparison must still tell them apart.
func TestFingerprintCollisionsResolved(t *testing.T) {
	h := legacySetHelpers(t)

	// Same property names, same string values, different number values:
	// identical fingerprints by construction.
	x := map[string]any{"kind": "seat", "row": float64(1)}
	y := map[string]any{"kind": "seat", "row": float64(2)}
	require.Equal(t, elementFingerprint(x), elementFingerprint(y))
	require.False(t, structurallyEqual(x, y))

	union, err := h.Add(SetValue{x}, SetValue{y})
	require.NoError(t, err)
	require.Len(t, union.(SetValue), 2)
}

// TestLegacySetDuplicateDetectionAcrossBuckets seeds many elements and
// checks a planted duplicate is always found regardless of bucket
// layout.
func TestLegacySetDuplicateDetectionAcrossBuckets(t *testing.T) {
	elems := make(SetValue, 0, 41)
	for i := 0; i < 20; i++ {
		elems = append(elems, map[string]any{"id": fmt.Sprintf("t-%d", i)})
		elems = append(elems, fmt.Sprintf("plain-%d", i))
	}
	require.Nil(t, findStructuralDuplicate(elems))

	elems = append(elems, map[string]any{"id": "t-7"})
	require.NotNil(t, findStructuralDuplicate(elems))
}
