package amount

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// arraySetHelpers implements MathHelpers for the legacy array-set
// representation. Elements are arbitrary JSON-like values compared by
// deep structural equality instead of canonical string keys.
//
// Deprecated: new brands should use KindCopySet. This representation is
// kept for compatibility with existing ledgers.
type arraySetHelpers struct{}

func (arraySetHelpers) Kind() Kind { return KindSet }

func (arraySetHelpers) Coerce(v Value) (Value, error) {
	s, ok := v.(SetValue)
	if !ok {
		return nil, fmt.Errorf("%w: expected legacy set, got %T", ErrShape, v)
	}
	if dup := findStructuralDuplicate(s); dup != nil {
		return nil, fmt.Errorf("%w: legacy set contains duplicate element %v", ErrShape, dup)
	}
	out := make(SetValue, len(s))
	copy(out, s)
	return out, nil
}

func (arraySetHelpers) MakeEmpty() Value { return SetValue{} }

func (arraySetHelpers) IsEmpty(v Value) bool {
	return len(v.(SetValue)) == 0
}

func (arraySetHelpers) IsGTE(left, right Value) bool {
	l, r := left.(SetValue), right.(SetValue)
	buckets := bucketElements(l)
	for _, elem := range r {
		if !buckets.contains(elem) {
			return false
		}
	}
	return true
}

func (h arraySetHelpers) IsEqual(left, right Value) bool {
	l, r := left.(SetValue), right.(SetValue)
	return len(l) == len(r) && h.IsGTE(left, right)
}

// Add concatenates the two sets, failing if any element of one is
// structurally equal to an element of the other (or appears twice).
func (arraySetHelpers) Add(left, right Value) (Value, error) {
	l, r := left.(SetValue), right.(SetValue)
	combined := make(SetValue, 0, len(l)+len(r))
	combined = append(combined, l...)
	combined = append(combined, r...)
	if dup := findStructuralDuplicate(combined); dup != nil {
		return nil, fmt.Errorf("%w: element %v", ErrDuplicateElement, dup)
	}
	return combined, nil
}

// Subtract removes one occurrence of every element of right from left,
// failing if an element of right has no structural match in left.
func (arraySetHelpers) Subtract(left, right Value) (Value, error) {
	l, r := left.(SetValue), right.(SetValue)
	remaining := make(SetValue, len(l))
	copy(remaining, l)
	for _, elem := range r {
		found := -1
		for i, candidate := range remaining {
			if structurallyEqual(candidate, elem) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("%w: element %v not in set", ErrNegativeResult, elem)
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return remaining, nil
}

// structurallyEqual is the exact deep comparison used for legacy set
// elements. JSON-like values decode to comparable shapes, so
// reflect.DeepEqual is the full check.
func structurallyEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// elementFingerprint produces a cheap, intentionally approximate bucket
// key for a legacy set element: the sorted own-property names of an
// object plus any string-valued property values. Two structurally equal
// elements always produce the same fingerprint; two unequal elements may
// collide, which the exact comparison then resolves. It exists purely to
// avoid O(n^2) pairwise deep comparisons.
func elementFingerprint(elem any) string {
	switch e := elem.(type) {
	case map[string]any:
		names := make([]string, 0, len(e))
		for name := range e {
			names = append(names, name)
		}
		sort.Strings(names)
		var sb strings.Builder
		sb.WriteString("obj:")
		for i, name := range names {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(name)
			if s, ok := e[name].(string); ok {
				sb.WriteByte('=')
				sb.WriteString(s)
			}
		}
		return sb.String()
	case string:
		return "str:" + e
	default:
		// Numbers, bools, arrays and nil bucket by dynamic type only.
		return fmt.Sprintf("typ:%T", elem)
	}
}

// elementBuckets groups elements by fingerprint so exact comparisons are
// only run between elements that share a bucket.
type elementBuckets map[string][]any

func bucketElements(elems SetValue) elementBuckets {
	buckets := make(elementBuckets, len(elems))
	for _, elem := range elems {
		fp := elementFingerprint(elem)
		buckets[fp] = append(buckets[fp], elem)
	}
	return buckets
}

func (b elementBuckets) contains(elem any) bool {
	for _, candidate := range b[elementFingerprint(elem)] {
		if structurallyEqual(candidate, elem) {
			return true
		}
	}
	return false
}

// findStructuralDuplicate returns some element that appears twice in the
// slice, or nil if all elements are distinct.
func findStructuralDuplicate(elems SetValue) any {
	buckets := make(elementBuckets, len(elems))
	for _, elem := range elems {
		fp := elementFingerprint(elem)
		for _, candidate := range buckets[fp] {
			if structurallyEqual(candidate, elem) {
				return elem
			}
		}
		buckets[fp] = append(buckets[fp], elem)
	}
	return nil
}
