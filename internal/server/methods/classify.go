package methods

import (
	"fmt"
	"math"
	"math/big"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// ClassifyValue maps a decoded JSON value onto the structural asset
// kind it can only belong to: numbers (and digit strings) are nat,
// plain arrays are legacy sets, and tagged objects select copySet or
// copyBag. Decimal values are strings and cannot be told apart from
// digit strings structurally, so they are only accepted when the
// target brand is decimal; see DecodeValue.
func ClassifyValue(raw any) (amount.Kind, amount.Value, error) {
	switch v := raw.(type) {
	case float64:
		value, err := natFromFloat(v)
		return amount.KindNat, value, err
	case string:
		value, err := natFromString(v)
		return amount.KindNat, value, err
	case []any:
		return amount.KindSet, amount.SetValue(v), nil
	case map[string]any:
		if keys, ok := v["copySet"]; ok {
			value, err := copySetFromRaw(keys)
			return amount.KindCopySet, value, err
		}
		if entries, ok := v["copyBag"]; ok {
			value, err := copyBagFromRaw(entries)
			return amount.KindCopyBag, value, err
		}
		return 0, nil, fmt.Errorf("%w: object value must be tagged copySet or copyBag", amount.ErrShape)
	default:
		return 0, nil, fmt.Errorf("%w: cannot classify %T", amount.ErrShape, raw)
	}
}

// DecodeValue converts a decoded JSON value into the raw value for a
// brand of the given kind. The result still goes through the brand's
// coerce; this only undoes the wire encoding.
func DecodeValue(kind amount.Kind, raw any) (amount.Value, error) {
	// Decimal is string-typed on the wire and only reachable when the
	// brand says so.
	if kind == amount.KindDecimal {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: decimal value must be a string", amount.ErrShape)
		}
		return amount.DecimalValue(s), nil
	}

	classified, value, err := ClassifyValue(raw)
	if err != nil {
		return nil, err
	}
	if classified != kind {
		return nil, fmt.Errorf("%w: value is %s, brand wants %s",
			amount.ErrShape, classified.String(), kind.String())
	}
	return value, nil
}

// EncodeAmount renders an amount for the wire: the brand's name plus
// the value in the same shape DecodeValue accepts.
func EncodeAmount(a amount.Amount) (WireAmount, error) {
	wire := WireAmount{Brand: a.Brand.AllegedName()}
	switch v := a.Value.(type) {
	case amount.NatValue:
		wire.Value = v.String()
	case amount.SetValue:
		wire.Value = []any(v)
	case amount.CopySetValue:
		wire.Value = map[string]any{"copySet": []string(v)}
	case amount.CopyBagValue:
		entries := make([]map[string]any, len(v))
		for i, e := range v {
			entries[i] = map[string]any{"key": e.Key, "count": e.Count}
		}
		wire.Value = map[string]any{"copyBag": entries}
	case amount.DecimalValue:
		wire.Value = string(v)
	default:
		return WireAmount{}, fmt.Errorf("%w: cannot encode %T", amount.ErrShape, a.Value)
	}
	return wire, nil
}

func natFromFloat(f float64) (amount.Value, error) {
	if f < 0 || f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: nat value must be a non-negative integer", amount.ErrShape)
	}
	if f > float64(1<<53) {
		return nil, fmt.Errorf("%w: nat value too large for a JSON number, use a string", amount.ErrShape)
	}
	return amount.NewNat(uint64(f)), nil
}

func natFromString(s string) (amount.Value, error) {
	// big.Int accepts signs and underscores; the wire format is bare
	// decimal digits only.
	if s == "" {
		return nil, fmt.Errorf("%w: bad nat %q", amount.ErrShape, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: bad nat %q", amount.ErrShape, s)
		}
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: bad nat %q", amount.ErrShape, s)
	}
	return amount.NewNatFromBig(i), nil
}

func copySetFromRaw(raw any) (amount.Value, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: copySet must be an array of strings", amount.ErrShape)
	}
	keys := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: copySet key must be a string, got %T", amount.ErrShape, item)
		}
		keys[i] = s
	}
	return amount.CopySetValue(keys), nil
}

func copyBagFromRaw(raw any) (amount.Value, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: copyBag must be an array of entries", amount.ErrShape)
	}
	entries := make([]amount.BagEntry, len(items))
	for i, item := range items {
		switch e := item.(type) {
		case string:
			// bare key, count 1
			entries[i] = amount.BagEntry{Key: e, Count: 1}
		case map[string]any:
			key, ok := e["key"].(string)
			if !ok {
				return nil, fmt.Errorf("%w: copyBag entry needs a string key", amount.ErrShape)
			}
			count, ok := e["count"].(float64)
			if !ok || count < 1 || count != math.Trunc(count) {
				return nil, fmt.Errorf("%w: copyBag entry needs a positive integer count", amount.ErrShape)
			}
			entries[i] = amount.BagEntry{Key: key, Count: uint64(count)}
		default:
			return nil, fmt.Errorf("%w: bad copyBag entry %T", amount.ErrShape, item)
		}
	}
	return amount.CopyBagValue(entries), nil
}
