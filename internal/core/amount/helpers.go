package amount

import "fmt"

// MathHelpers is the per-asset-kind arithmetic strategy operating on raw
// values (not brand-labeled amounts). Implementations are pure and
// stateless.
//
// Contract, for every implementation:
//   - IsEmpty(MakeEmpty()) is true
//   - Add is commutative and associative with MakeEmpty() as identity
//   - Subtract(x, MakeEmpty()) == x
//   - Subtract fails when the right operand is not fully contained in the left
//
// IsEmpty, IsGTE and IsEqual expect values that already passed Coerce;
// the amount dispatch layer guarantees that.
type MathHelpers interface {
	Kind() Kind
	Coerce(v Value) (Value, error)
	MakeEmpty() Value
	IsEmpty(v Value) bool
	IsGTE(left, right Value) bool
	IsEqual(left, right Value) bool
	Add(left, right Value) (Value, error)
	Subtract(left, right Value) (Value, error)
}

var (
	natHelpersInstance     = natHelpers{}
	setHelpersInstance     = arraySetHelpers{}
	copySetHelpersInstance = copySetHelpers{}
	copyBagHelpersInstance = copyBagHelpers{}
)

// HelpersFor returns the shared helpers for a non-parameterized kind.
// Decimal helpers depend on a per-brand precision; use NewDecimalHelpers.
func HelpersFor(kind Kind) (MathHelpers, error) {
	switch kind {
	case KindNat:
		return natHelpersInstance, nil
	case KindSet:
		return setHelpersInstance, nil
	case KindCopySet:
		return copySetHelpersInstance, nil
	case KindCopyBag:
		return copyBagHelpersInstance, nil
	case KindDecimal:
		return nil, fmt.Errorf("decimal helpers require a precision, use NewDecimalHelpers")
	default:
		return nil, fmt.Errorf("unknown asset kind: %v", kind)
	}
}
