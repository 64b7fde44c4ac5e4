package amount

import "fmt"

// copySetHelpers implements MathHelpers for canonical sets of string
// keys. Canonical form is sorted ascending with unique keys; add is a
// disjoint union and subtract removes a fully-contained subset.
type copySetHelpers struct{}

func (copySetHelpers) Kind() Kind { return KindCopySet }

func (copySetHelpers) Coerce(v Value) (Value, error) {
	s, ok := v.(CopySetValue)
	if !ok {
		return nil, fmt.Errorf("%w: expected copySet, got %T", ErrShape, v)
	}
	out := make(CopySetValue, len(s))
	copy(out, s)
	sortStrings(out)
	for i := 1; i < len(out); i++ {
		if out[i] == out[i-1] {
			return nil, fmt.Errorf("%w: copySet key %q appears twice", ErrShape, out[i])
		}
	}
	return out, nil
}

func (copySetHelpers) MakeEmpty() Value { return CopySetValue{} }

func (copySetHelpers) IsEmpty(v Value) bool {
	return len(v.(CopySetValue)) == 0
}

// IsGTE reports whether every key of right is a member of left. Both
// sides are canonical (sorted), so one merge pass suffices.
func (copySetHelpers) IsGTE(left, right Value) bool {
	l, r := left.(CopySetValue), right.(CopySetValue)
	i := 0
	for _, key := range r {
		for i < len(l) && l[i] < key {
			i++
		}
		if i >= len(l) || l[i] != key {
			return false
		}
		i++
	}
	return true
}

func (copySetHelpers) IsEqual(left, right Value) bool {
	l, r := left.(CopySetValue), right.(CopySetValue)
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

// Add merges two canonical sets, failing if any key appears in both.
func (copySetHelpers) Add(left, right Value) (Value, error) {
	l, r := left.(CopySetValue), right.(CopySetValue)
	out := make(CopySetValue, 0, len(l)+len(r))
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch {
		case l[i] < r[j]:
			out = append(out, l[i])
			i++
		case l[i] > r[j]:
			out = append(out, r[j])
			j++
		default:
			return nil, fmt.Errorf("%w: key %q", ErrDuplicateElement, l[i])
		}
	}
	out = append(out, l[i:]...)
	out = append(out, r[j:]...)
	return out, nil
}

// Subtract removes every key of right from left, failing if any key of
// right is absent from left.
func (copySetHelpers) Subtract(left, right Value) (Value, error) {
	l, r := left.(CopySetValue), right.(CopySetValue)
	out := make(CopySetValue, 0, len(l))
	i := 0
	for _, key := range r {
		for i < len(l) && l[i] < key {
			out = append(out, l[i])
			i++
		}
		if i >= len(l) || l[i] != key {
			return nil, fmt.Errorf("%w: key %q not in set", ErrNegativeResult, key)
		}
		i++
	}
	out = append(out, l[i:]...)
	return out, nil
}
