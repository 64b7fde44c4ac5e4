package amount

import "fmt"

// copyBagHelpers implements MathHelpers for multisets of string keys
// with positive counts. Canonical form is sorted by key, unique keys,
// no zero counts. Add is a per-key count sum; subtract is disjoint
// subtraction, dropping keys whose count reaches zero.
type copyBagHelpers struct{}

func (copyBagHelpers) Kind() Kind { return KindCopyBag }

func (copyBagHelpers) Coerce(v Value) (Value, error) {
	b, ok := v.(CopyBagValue)
	if !ok {
		return nil, fmt.Errorf("%w: expected copyBag, got %T", ErrShape, v)
	}
	out := make(CopyBagValue, len(b))
	copy(out, b)
	sortBag(out)
	for i, e := range out {
		if e.Count == 0 {
			return nil, fmt.Errorf("%w: copyBag key %q has zero count", ErrShape, e.Key)
		}
		if i > 0 && e.Key == out[i-1].Key {
			return nil, fmt.Errorf("%w: copyBag key %q appears twice", ErrShape, e.Key)
		}
	}
	return out, nil
}

func (copyBagHelpers) MakeEmpty() Value { return CopyBagValue{} }

func (copyBagHelpers) IsEmpty(v Value) bool {
	return len(v.(CopyBagValue)) == 0
}

// IsGTE reports whether left carries at least right's count for every
// key of right.
func (copyBagHelpers) IsGTE(left, right Value) bool {
	l, r := left.(CopyBagValue), right.(CopyBagValue)
	i := 0
	for _, re := range r {
		for i < len(l) && l[i].Key < re.Key {
			i++
		}
		if i >= len(l) || l[i].Key != re.Key || l[i].Count < re.Count {
			return false
		}
		i++
	}
	return true
}

func (copyBagHelpers) IsEqual(left, right Value) bool {
	l, r := left.(CopyBagValue), right.(CopyBagValue)
	if len(l) != len(r) {
		return false
	}
	for i := range l {
		if l[i] != r[i] {
			return false
		}
	}
	return true
}

// Add merges the two bags summing per-key counts ("bag union").
func (copyBagHelpers) Add(left, right Value) (Value, error) {
	l, r := left.(CopyBagValue), right.(CopyBagValue)
	out := make(CopyBagValue, 0, len(l)+len(r))
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch {
		case l[i].Key < r[j].Key:
			out = append(out, l[i])
			i++
		case l[i].Key > r[j].Key:
			out = append(out, r[j])
			j++
		default:
			sum := l[i].Count + r[j].Count
			if sum < l[i].Count {
				return nil, fmt.Errorf("%w: key %q, counts %d + %d",
					ErrCountOverflow, l[i].Key, l[i].Count, r[j].Count)
			}
			out = append(out, BagEntry{Key: l[i].Key, Count: sum})
			i++
			j++
		}
	}
	out = append(out, l[i:]...)
	out = append(out, r[j:]...)
	return out, nil
}

// Subtract removes right's counts from left, failing if any key of
// right is absent or over-subscribed. Keys whose count reaches zero are
// dropped to keep the result canonical.
func (copyBagHelpers) Subtract(left, right Value) (Value, error) {
	l, r := left.(CopyBagValue), right.(CopyBagValue)
	out := make(CopyBagValue, 0, len(l))
	i := 0
	for _, re := range r {
		for i < len(l) && l[i].Key < re.Key {
			out = append(out, l[i])
			i++
		}
		if i >= len(l) || l[i].Key != re.Key {
			return nil, fmt.Errorf("%w: key %q not in bag", ErrNegativeResult, re.Key)
		}
		if l[i].Count < re.Count {
			return nil, fmt.Errorf("%w: key %q has count %d, need %d",
				ErrNegativeResult, re.Key, l[i].Count, re.Count)
		}
		if rest := l[i].Count - re.Count; rest > 0 {
			out = append(out, BagEntry{Key: re.Key, Count: rest})
		}
		i++
	}
	out = append(out, l[i:]...)
	return out, nil
}
