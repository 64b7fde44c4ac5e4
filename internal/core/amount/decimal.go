package amount

import (
	"fmt"
	"math/big"
	"strings"
)

// decimalHelpers implements MathHelpers for display-scaled fungible
// values held as canonical non-negative decimal strings with at most
// `places` fractional digits. Arithmetic scales to an exact integer by
// 10^places, operates on big.Int, and rescales back to canonical form.
type decimalHelpers struct {
	places int
}

// NewDecimalHelpers returns helpers for a fixed fractional precision.
func NewDecimalHelpers(places int) (MathHelpers, error) {
	if places < 0 {
		return nil, fmt.Errorf("decimal places must be non-negative, got %d", places)
	}
	return decimalHelpers{places: places}, nil
}

func (decimalHelpers) Kind() Kind { return KindDecimal }

func (h decimalHelpers) Coerce(v Value) (Value, error) {
	d, ok := v.(DecimalValue)
	if !ok {
		return nil, fmt.Errorf("%w: expected decimal, got %T", ErrShape, v)
	}
	scaled, err := h.scale(string(d))
	if err != nil {
		return nil, err
	}
	return h.unscale(scaled), nil
}

func (h decimalHelpers) MakeEmpty() Value { return DecimalValue("0") }

func (h decimalHelpers) IsEmpty(v Value) bool {
	return v.(DecimalValue) == "0"
}

func (h decimalHelpers) IsGTE(left, right Value) bool {
	l, _ := h.scale(string(left.(DecimalValue)))
	r, _ := h.scale(string(right.(DecimalValue)))
	return l.Cmp(r) >= 0
}

func (h decimalHelpers) IsEqual(left, right Value) bool {
	// Canonical strings are unique per value.
	return left.(DecimalValue) == right.(DecimalValue)
}

func (h decimalHelpers) Add(left, right Value) (Value, error) {
	l, err := h.scale(string(left.(DecimalValue)))
	if err != nil {
		return nil, err
	}
	r, err := h.scale(string(right.(DecimalValue)))
	if err != nil {
		return nil, err
	}
	return h.unscale(new(big.Int).Add(l, r)), nil
}

func (h decimalHelpers) Subtract(left, right Value) (Value, error) {
	l, err := h.scale(string(left.(DecimalValue)))
	if err != nil {
		return nil, err
	}
	r, err := h.scale(string(right.(DecimalValue)))
	if err != nil {
		return nil, err
	}
	if l.Cmp(r) < 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrNegativeResult, left, right)
	}
	return h.unscale(new(big.Int).Sub(l, r)), nil
}

// scale parses a loose non-negative numeral (leading and trailing zeros
// tolerated) into the exact integer value * 10^places.
func (h decimalHelpers) scale(s string) (*big.Int, error) {
	intPart, fracPart, err := splitNumeral(s)
	if err != nil {
		return nil, err
	}

	// Trailing fractional zeros carry no information; only the
	// significant fractional digits count against the precision.
	significantFrac := strings.TrimRight(fracPart, "0")
	if len(significantFrac) > h.places {
		return nil, fmt.Errorf("%w: %q has %d fractional digits, brand allows %d",
			ErrTooManyDecimalPlaces, s, len(significantFrac), h.places)
	}

	digits := intPart + significantFrac + strings.Repeat("0", h.places-len(significantFrac))
	scaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	return scaled, nil
}

// unscale renders value * 10^-places in canonical form: no leading
// zeros, fractional part trimmed of trailing zeros and omitted if empty.
func (h decimalHelpers) unscale(scaled *big.Int) DecimalValue {
	digits := scaled.String()
	if h.places == 0 {
		return DecimalValue(digits)
	}
	for len(digits) <= h.places {
		digits = "0" + digits
	}
	intPart := digits[:len(digits)-h.places]
	fracPart := strings.TrimRight(digits[len(digits)-h.places:], "0")
	if fracPart == "" {
		return DecimalValue(intPart)
	}
	return DecimalValue(intPart + "." + fracPart)
}

// splitNumeral validates a loose non-negative numeral and returns its
// integer and fractional digit runs, with leading zeros stripped from
// the integer part.
func splitNumeral(s string) (string, string, error) {
	if s == "" {
		return "", "", fmt.Errorf("%w: empty string", ErrMalformedValue)
	}
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return "", "", fmt.Errorf("%w: %q", ErrMalformedValue, s)
		}
	}
	if intPart == "" && fracPart == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedValue, s)
	}
	for _, part := range []string{intPart, fracPart} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return "", "", fmt.Errorf("%w: %q", ErrMalformedValue, s)
			}
		}
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	return intPart, fracPart, nil
}
