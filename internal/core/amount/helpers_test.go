package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperIdentities verifies the shared helper contract for every
// non-parameterized kind: empty is empty, add has empty as identity,
// and subtracting empty is a no-op.
func TestHelperIdentities(t *testing.T) {
	testcases := []struct {
		name  string
		kind  Kind
		value Value
	}{
		{name: "nat", kind: KindNat, value: NewNat(7)},
		{name: "legacy set", kind: KindSet, value: SetValue{"a", "b"}},
		{name: "copySet", kind: KindCopySet, value: NewCopySet("x", "y")},
		{name: "copyBag", kind: KindCopyBag, value: NewCopyBag(BagEntry{Key: "a", Count: 2})},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := HelpersFor(tc.kind)
			require.NoError(t, err)

			empty := h.MakeEmpty()
			require.True(t, h.IsEmpty(empty))

			v, err := h.Coerce(tc.value)
			require.NoError(t, err)
			require.False(t, h.IsEmpty(v))

			sum, err := h.Add(v, empty)
			require.NoError(t, err)
			require.True(t, h.IsEqual(v, sum))

			diff, err := h.Subtract(v, empty)
			require.NoError(t, err)
			require.True(t, h.IsEqual(v, diff))

			gone, err := h.Subtract(v, v)
			require.NoError(t, err)
			require.True(t, h.IsEmpty(gone))
		})
	}
}

func TestNatArithmetic(t *testing.T) {
	h, err := HelpersFor(KindNat)
	require.NoError(t, err)

	sum, err := h.Add(NewNat(3), NewNat(4))
	require.NoError(t, err)
	require.True(t, h.IsEqual(NewNat(7), sum))

	diff, err := h.Subtract(NewNat(10), NewNat(4))
	require.NoError(t, err)
	require.True(t, h.IsEqual(NewNat(6), diff))

	_, err = h.Subtract(NewNat(4), NewNat(10))
	require.ErrorIs(t, err, ErrNegativeResult)

	require.True(t, h.IsGTE(NewNat(5), NewNat(5)))
	require.False(t, h.IsGTE(NewNat(4), NewNat(5)))
}

// TestNatUnbounded exercises values past uint64 range: there is no
// overflow concept, sums just keep growing.
func TestNatUnbounded(t *testing.T) {
	h, err := HelpersFor(KindNat)
	require.NoError(t, err)

	huge := new(big.Int).Lsh(big.NewInt(1), 100)
	sum, err := h.Add(NewNatFromBig(huge), NewNatFromBig(huge))
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(1), 101)
	require.Zero(t, sum.(NatValue).Big().Cmp(want))
}

func TestNatCoerceRejectsNegative(t *testing.T) {
	h, err := HelpersFor(KindNat)
	require.NoError(t, err)

	_, err = h.Coerce(NewNatFromBig(big.NewInt(-1)))
	require.ErrorIs(t, err, ErrShape)

	_, err = h.Coerce(CopySetValue{"a"})
	require.ErrorIs(t, err, ErrShape)
}

func TestCopySetUnion(t *testing.T) {
	h, err := HelpersFor(KindCopySet)
	require.NoError(t, err)

	// add(["x"],["y"]) succeeds and yields {"x","y"}
	union, err := h.Add(NewCopySet("x"), NewCopySet("y"))
	require.NoError(t, err)
	require.True(t, h.IsEqual(NewCopySet("x", "y"), union))

	// add(["x"],["x"]) fails with a duplicate element error
	_, err = h.Add(NewCopySet("x"), NewCopySet("x"))
	require.ErrorIs(t, err, ErrDuplicateElement)
}

func TestCopySetSubtract(t *testing.T) {
	h, err := HelpersFor(KindCopySet)
	require.NoError(t, err)

	rest, err := h.Subtract(NewCopySet("a", "b", "c"), NewCopySet("b"))
	require.NoError(t, err)
	require.True(t, h.IsEqual(NewCopySet("a", "c"), rest))

	_, err = h.Subtract(NewCopySet("a"), NewCopySet("b"))
	require.ErrorIs(t, err, ErrNegativeResult)
}

func TestCopySetCoerceCanonicalizes(t *testing.T) {
	h, err := HelpersFor(KindCopySet)
	require.NoError(t, err)

	v, err := h.Coerce(CopySetValue{"c", "a", "b"})
	require.NoError(t, err)
	require.Equal(t, CopySetValue{"a", "b", "c"}, v)

	_, err = h.Coerce(CopySetValue{"a", "a"})
	require.ErrorIs(t, err, ErrShape)
}

func TestCopyBagArithmetic(t *testing.T) {
	h, err := HelpersFor(KindCopyBag)
	require.NoError(t, err)

	bag := func(entries ...BagEntry) Value { return NewCopyBag(entries...) }

	// add({a:2,b:1}, {a:1}) == {a:3,b:1}
	sum, err := h.Add(
		bag(BagEntry{"a", 2}, BagEntry{"b", 1}),
		bag(BagEntry{"a", 1}),
	)
	require.NoError(t, err)
	require.True(t, h.IsEqual(bag(BagEntry{"a", 3}, BagEntry{"b", 1}), sum))

	// subtract({a:3,b:1},{a:1}) == {a:2,b:1}
	diff, err := h.Subtract(
		bag(BagEntry{"a", 3}, BagEntry{"b", 1}),
		bag(BagEntry{"a", 1}),
	)
	require.NoError(t, err)
	require.True(t, h.IsEqual(bag(BagEntry{"a", 2}, BagEntry{"b", 1}), diff))

	// subtract({a:1},{a:2}) fails
	_, err = h.Subtract(bag(BagEntry{"a", 1}), bag(BagEntry{"a", 2}))
	require.ErrorIs(t, err, ErrNegativeResult)
}

// TestCopyBagSubtractDropsZeroCounts checks canonical form: a key whose
// count reaches zero disappears from the result.
func TestCopyBagSubtractDropsZeroCounts(t *testing.T) {
	h, err := HelpersFor(KindCopyBag)
	require.NoError(t, err)

	diff, err := h.Subtract(
		NewCopyBag(BagEntry{"a", 2}, BagEntry{"b", 1}),
		NewCopyBag(BagEntry{"b", 1}),
	)
	require.NoError(t, err)
	require.Equal(t, CopyBagValue{{Key: "a", Count: 2}}, diff)
}

func TestCopyBagIsGTE(t *testing.T) {
	h, err := HelpersFor(KindCopyBag)
	require.NoError(t, err)

	big := NewCopyBag(BagEntry{"a", 3}, BagEntry{"b", 1})
	small := NewCopyBag(BagEntry{"a", 2})
	require.True(t, h.IsGTE(big, small))
	require.False(t, h.IsGTE(small, big))
	require.False(t, h.IsGTE(big, NewCopyBag(BagEntry{"c", 1})))
}

func TestCopyBagCoerceRejectsNonCanonical(t *testing.T) {
	h, err := HelpersFor(KindCopyBag)
	require.NoError(t, err)

	_, err = h.Coerce(CopyBagValue{{Key: "a", Count: 0}})
	require.ErrorIs(t, err, ErrShape)

	_, err = h.Coerce(CopyBagValue{{Key: "a", Count: 1}, {Key: "a", Count: 2}})
	require.ErrorIs(t, err, ErrShape)
}
