package amount

import "fmt"

// Amount is a brand-labeled value: "how much/what" of one asset type.
// Amounts are immutable; every operation returns a fresh Amount in
// canonical form.
type Amount struct {
	Brand *Brand
	Value Value
}

// Make builds an amount from a raw value, validating and canonicalizing
// it through the brand's helpers. The value's concrete type must match
// the brand's asset kind.
func Make(brand *Brand, v Value) (Amount, error) {
	if v == nil {
		return Amount{}, fmt.Errorf("%w: nil value for brand %s", ErrShape, brand)
	}
	if v.Kind() != brand.kind {
		return Amount{}, fmt.Errorf("%w: brand %s cannot hold %s values",
			ErrShape, brand, v.Kind())
	}
	coerced, err := brand.helpers.Coerce(v)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Brand: brand, Value: coerced}, nil
}

// Coerce checks that the amount belongs to the given brand and
// re-validates its value. Coerce is idempotent: coercing an
// already-coerced amount returns an equal amount.
func Coerce(brand *Brand, a Amount) (Amount, error) {
	if a.Brand != brand {
		return Amount{}, fmt.Errorf("%w: amount of brand %s used where %s expected",
			ErrBrandMismatch, a.Brand, brand)
	}
	return Make(brand, a.Value)
}

// GetValue validates the amount against the brand and returns its raw value.
func GetValue(brand *Brand, a Amount) (Value, error) {
	coerced, err := Coerce(brand, a)
	if err != nil {
		return nil, err
	}
	return coerced.Value, nil
}

// MakeEmpty returns the identity element for the brand's kind.
func MakeEmpty(brand *Brand) Amount {
	return Amount{Brand: brand, Value: brand.helpers.MakeEmpty()}
}

// MakeEmptyFromAmount returns the empty amount of the same brand.
func MakeEmptyFromAmount(a Amount) (Amount, error) {
	if a.Brand == nil {
		return Amount{}, fmt.Errorf("%w: amount has no brand", ErrShape)
	}
	return MakeEmpty(a.Brand), nil
}

// IsEmpty reports whether the amount is its brand's identity element.
func IsEmpty(a Amount) (bool, error) {
	coerced, err := Coerce(a.Brand, a)
	if err != nil {
		return false, err
	}
	return a.Brand.helpers.IsEmpty(coerced.Value), nil
}

// IsGTE reports whether left fully contains right. Both amounts must
// share one brand.
func IsGTE(left, right Amount) (bool, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return false, err
	}
	return left.Brand.helpers.IsGTE(l.Value, r.Value), nil
}

// IsEqual reports whether the two amounts describe the same value.
func IsEqual(left, right Amount) (bool, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return false, err
	}
	return left.Brand.helpers.IsEqual(l.Value, r.Value), nil
}

// Add combines the two amounts under the brand's algebra.
func Add(left, right Amount) (Amount, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return Amount{}, err
	}
	v, err := left.Brand.helpers.Add(l.Value, r.Value)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Brand: left.Brand, Value: v}, nil
}

// Subtract removes right from left, failing if right is not fully
// contained in left.
func Subtract(left, right Amount) (Amount, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return Amount{}, err
	}
	v, err := left.Brand.helpers.Subtract(l.Value, r.Value)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Brand: left.Brand, Value: v}, nil
}

// Min returns the smaller of the two amounts. For partially ordered
// kinds (sets, bags) the amounts must be comparable.
func Min(left, right Amount) (Amount, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return Amount{}, err
	}
	h := left.Brand.helpers
	switch {
	case h.IsGTE(l.Value, r.Value):
		return r, nil
	case h.IsGTE(r.Value, l.Value):
		return l, nil
	default:
		return Amount{}, fmt.Errorf("amounts %v and %v are incomparable", left, right)
	}
}

// Max returns the larger of the two amounts. For partially ordered
// kinds the amounts must be comparable.
func Max(left, right Amount) (Amount, error) {
	l, r, err := coercePair(left, right)
	if err != nil {
		return Amount{}, err
	}
	h := left.Brand.helpers
	switch {
	case h.IsGTE(l.Value, r.Value):
		return l, nil
	case h.IsGTE(r.Value, l.Value):
		return r, nil
	default:
		return Amount{}, fmt.Errorf("amounts %v and %v are incomparable", left, right)
	}
}

func coercePair(left, right Amount) (Amount, Amount, error) {
	if left.Brand == nil || right.Brand == nil {
		return Amount{}, Amount{}, fmt.Errorf("%w: amount has no brand", ErrShape)
	}
	if left.Brand != right.Brand {
		return Amount{}, Amount{}, fmt.Errorf("%w: %s vs %s",
			ErrBrandMismatch, left.Brand, right.Brand)
	}
	l, err := Coerce(left.Brand, left)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	r, err := Coerce(left.Brand, right)
	if err != nil {
		return Amount{}, Amount{}, err
	}
	return l, r, nil
}

func (a Amount) String() string {
	return fmt.Sprintf("%v %v", a.Value, a.Brand)
}
