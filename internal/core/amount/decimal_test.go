package amount

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decimal2(t *testing.T) MathHelpers {
	t.Helper()
	h, err := NewDecimalHelpers(2)
	require.NoError(t, err)
	return h
}

func TestDecimalCoerce(t *testing.T) {
	h := decimal2(t)

	testcases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "canonical", in: "1.5", want: "1.5"},
		{name: "trailing zero trimmed", in: "1.50", want: "1.5"},
		{name: "leading zeros trimmed", in: "007.25", want: "7.25"},
		{name: "integer", in: "42", want: "42"},
		{name: "zero", in: "0.00", want: "0"},
		{name: "bare fraction", in: ".5", want: "0.5"},
		{name: "too many places", in: "1.505", wantErr: ErrTooManyDecimalPlaces},
		{name: "insignificant extra zeros ok", in: "1.500", want: "1.5"},
		{name: "empty", in: "", wantErr: ErrMalformedValue},
		{name: "negative", in: "-1.5", wantErr: ErrMalformedValue},
		{name: "letters", in: "1.5a", wantErr: ErrMalformedValue},
		{name: "two dots", in: "1.5.5", wantErr: ErrMalformedValue},
		{name: "lone dot", in: ".", wantErr: ErrMalformedValue},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := h.Coerce(DecimalValue(tc.in))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, DecimalValue(tc.want), v)
		})
	}
}

func TestDecimalArithmetic(t *testing.T) {
	h := decimal2(t)

	// add("1.50","2.25") == "3.75"
	sum, err := h.Add(DecimalValue("1.5"), DecimalValue("2.25"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("3.75"), sum)

	diff, err := h.Subtract(DecimalValue("3.75"), DecimalValue("2.25"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("1.5"), diff)

	// subtract("1.00","2.00") fails
	_, err = h.Subtract(DecimalValue("1"), DecimalValue("2"))
	require.ErrorIs(t, err, ErrNegativeResult)
}

func TestDecimalComparisons(t *testing.T) {
	h := decimal2(t)

	require.True(t, h.IsGTE(DecimalValue("2"), DecimalValue("1.99")))
	require.True(t, h.IsGTE(DecimalValue("1.5"), DecimalValue("1.5")))
	require.False(t, h.IsGTE(DecimalValue("1.49"), DecimalValue("1.5")))

	require.True(t, h.IsEmpty(h.MakeEmpty()))
	require.True(t, h.IsEqual(DecimalValue("1.5"), DecimalValue("1.5")))
	require.False(t, h.IsEqual(DecimalValue("1.5"), DecimalValue("1.51")))
}

func TestDecimalZeroPlaces(t *testing.T) {
	h, err := NewDecimalHelpers(0)
	require.NoError(t, err)

	v, err := h.Coerce(DecimalValue("12"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("12"), v)

	_, err = h.Coerce(DecimalValue("12.5"))
	require.ErrorIs(t, err, ErrTooManyDecimalPlaces)

	sum, err := h.Add(DecimalValue("12"), DecimalValue("30"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("42"), sum)
}

func TestDecimalCarriesAcrossPoint(t *testing.T) {
	h := decimal2(t)

	sum, err := h.Add(DecimalValue("0.99"), DecimalValue("0.01"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("1"), sum)

	sum, err = h.Add(DecimalValue("0.05"), DecimalValue("0.05"))
	require.NoError(t, err)
	require.Equal(t, DecimalValue("0.1"), sum)
}

func TestNewDecimalHelpersRejectsNegativePlaces(t *testing.T) {
	_, err := NewDecimalHelpers(-1)
	require.Error(t, err)
}
