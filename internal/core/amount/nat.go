package amount

import (
	"fmt"
	"math/big"
)

// natHelpers implements MathHelpers for non-negative unbounded integers.
// There is no overflow concept: math/big carries arbitrary precision.
type natHelpers struct{}

func (natHelpers) Kind() Kind { return KindNat }

func (natHelpers) Coerce(v Value) (Value, error) {
	n, ok := v.(NatValue)
	if !ok {
		return nil, fmt.Errorf("%w: expected nat, got %T", ErrShape, v)
	}
	if n.i == nil {
		return nil, fmt.Errorf("%w: uninitialized nat value", ErrShape)
	}
	if n.i.Sign() < 0 {
		return nil, fmt.Errorf("%w: nat value %s is negative", ErrShape, n.i)
	}
	return NewNatFromBig(n.i), nil
}

func (natHelpers) MakeEmpty() Value { return NewNat(0) }

func (natHelpers) IsEmpty(v Value) bool {
	return v.(NatValue).i.Sign() == 0
}

func (natHelpers) IsGTE(left, right Value) bool {
	return left.(NatValue).i.Cmp(right.(NatValue).i) >= 0
}

func (natHelpers) IsEqual(left, right Value) bool {
	return left.(NatValue).i.Cmp(right.(NatValue).i) == 0
}

func (natHelpers) Add(left, right Value) (Value, error) {
	l, r := left.(NatValue), right.(NatValue)
	return NatValue{i: new(big.Int).Add(l.i, r.i)}, nil
}

func (natHelpers) Subtract(left, right Value) (Value, error) {
	l, r := left.(NatValue), right.(NatValue)
	if l.i.Cmp(r.i) < 0 {
		return nil, fmt.Errorf("%w: %s - %s", ErrNegativeResult, l.i, r.i)
	}
	return NatValue{i: new(big.Int).Sub(l.i, r.i)}, nil
}
