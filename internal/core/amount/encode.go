package amount

import (
	"fmt"
	"math/big"
)

// EncodedValue is the serializable form of a Value, used by snapshot
// persistence. Exactly one field is populated, selected by the asset
// kind recorded next to it; a persisted value must round-trip through
// Coerce unchanged.
type EncodedValue struct {
	Nat     string     `json:"nat,omitempty"`
	Set     []any      `json:"set,omitempty"`
	Keys    []string   `json:"keys,omitempty"`
	Bag     []BagEntry `json:"bag,omitempty"`
	Decimal string     `json:"decimal,omitempty"`
}

// EncodeValue converts a canonical value into its serializable form.
func EncodeValue(v Value) (EncodedValue, error) {
	switch val := v.(type) {
	case NatValue:
		return EncodedValue{Nat: val.String()}, nil
	case SetValue:
		return EncodedValue{Set: val}, nil
	case CopySetValue:
		return EncodedValue{Keys: val}, nil
	case CopyBagValue:
		return EncodedValue{Bag: val}, nil
	case DecimalValue:
		return EncodedValue{Decimal: string(val)}, nil
	default:
		return EncodedValue{}, fmt.Errorf("%w: cannot encode %T", ErrShape, v)
	}
}

// DecodeValue converts a serialized value back into the raw value for
// the given kind. The result is not yet coerced; callers re-validate
// through the brand.
func DecodeValue(kind Kind, e EncodedValue) (Value, error) {
	switch kind {
	case KindNat:
		i, ok := new(big.Int).SetString(e.Nat, 10)
		if !ok {
			return nil, fmt.Errorf("%w: bad nat %q", ErrShape, e.Nat)
		}
		return NewNatFromBig(i), nil
	case KindSet:
		return SetValue(e.Set), nil
	case KindCopySet:
		return CopySetValue(e.Keys), nil
	case KindCopyBag:
		return CopyBagValue(e.Bag), nil
	case KindDecimal:
		return DecimalValue(e.Decimal), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrShape, kind)
	}
}
