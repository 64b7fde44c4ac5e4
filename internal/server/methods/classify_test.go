package methods

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// toJSONShape re-decodes a value the way the HTTP layer would hand it
// to us: generic maps, slices and float64 numbers.
func toJSONShape(t *testing.T, v any) any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestClassifyValue(t *testing.T) {
	testcases := []struct {
		name     string
		raw      any
		wantKind amount.Kind
		wantErr  bool
	}{
		{name: "number", raw: float64(42), wantKind: amount.KindNat},
		{name: "digit string", raw: "18446744073709551616", wantKind: amount.KindNat},
		{name: "array", raw: []any{"a", "b"}, wantKind: amount.KindSet},
		{name: "tagged copySet", raw: map[string]any{"copySet": []any{"a"}}, wantKind: amount.KindCopySet},
		{name: "tagged copyBag", raw: map[string]any{"copyBag": []any{"a"}}, wantKind: amount.KindCopyBag},
		{name: "negative number", raw: float64(-1), wantErr: true},
		{name: "signed string", raw: "+5", wantErr: true},
		{name: "negative zero string", raw: "-0", wantErr: true},
		{name: "padded string", raw: " 5", wantErr: true},
		{name: "underscored string", raw: "1_0", wantErr: true},
		{name: "empty string", raw: "", wantErr: true},
		{name: "fractional number", raw: float64(1.5), wantErr: true},
		{name: "untagged object", raw: map[string]any{"x": 1}, wantErr: true},
		{name: "bool", raw: true, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			kind, value, err := ClassifyValue(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantKind, kind)
			require.NotNil(t, value)
		})
	}
}

func TestDecodeValueKindDirected(t *testing.T) {
	// a digit string classifies as nat, but a decimal brand claims it
	v, err := DecodeValue(amount.KindDecimal, "1.5")
	require.NoError(t, err)
	require.Equal(t, amount.DecimalValue("1.5"), v)

	v, err = DecodeValue(amount.KindNat, "123")
	require.NoError(t, err)
	require.Equal(t, amount.NewNat(123), v)

	// kind mismatch between value shape and brand
	_, err = DecodeValue(amount.KindCopySet, float64(5))
	require.ErrorIs(t, err, amount.ErrShape)

	_, err = DecodeValue(amount.KindDecimal, float64(5))
	require.ErrorIs(t, err, amount.ErrShape)
}

func TestEncodeAmountRoundTrip(t *testing.T) {
	brand, err := amount.NewBrand("tickets", amount.KindCopySet, amount.DisplayInfo{})
	require.NoError(t, err)
	a, err := amount.Make(brand, amount.NewCopySet("b", "a"))
	require.NoError(t, err)

	wire, err := EncodeAmount(a)
	require.NoError(t, err)
	require.Equal(t, "tickets", wire.Brand)

	v, err := DecodeValue(amount.KindCopySet, toJSONShape(t, wire.Value))
	require.NoError(t, err)
	back, err := amount.Make(brand, v)
	require.NoError(t, err)
	equal, err := amount.IsEqual(a, back)
	require.NoError(t, err)
	require.True(t, equal)
}
