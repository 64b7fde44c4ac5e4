package amount

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Value is the raw, brand-less payload of an amount. The concrete type
// determines which math helpers apply. Values are treated as immutable:
// constructors and helpers always copy, never alias caller-owned data.
type Value interface {
	Kind() Kind
}

// NatValue is a non-negative unbounded integer.
type NatValue struct {
	i *big.Int
}

// NewNat creates a NatValue from a uint64.
func NewNat(n uint64) NatValue {
	return NatValue{i: new(big.Int).SetUint64(n)}
}

// NewNatFromBig creates a NatValue copying the given big integer.
func NewNatFromBig(n *big.Int) NatValue {
	return NatValue{i: new(big.Int).Set(n)}
}

// Kind returns KindNat.
func (n NatValue) Kind() Kind { return KindNat }

// Big returns a copy of the underlying integer.
func (n NatValue) Big() *big.Int {
	if n.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(n.i)
}

// Uint64 returns the value as a uint64. Only meaningful when the value
// fits; callers holding larger values should use Big.
func (n NatValue) Uint64() uint64 {
	if n.i == nil {
		return 0
	}
	return n.i.Uint64()
}

func (n NatValue) String() string {
	if n.i == nil {
		return "0"
	}
	return n.i.String()
}

// SetValue is the legacy array-set representation: an ordered slice of
// structurally-compared elements (JSON-like: strings, numbers, bools,
// map[string]any, []any). Canonical form has no structural duplicates.
type SetValue []any

// Kind returns KindSet.
func (s SetValue) Kind() Kind { return KindSet }

// CopySetValue is a canonical set of string keys, sorted ascending with
// no duplicates.
type CopySetValue []string

// Kind returns KindCopySet.
func (s CopySetValue) Kind() Kind { return KindCopySet }

// NewCopySet builds a canonical CopySetValue from the given keys. The
// input may be unsorted but must not contain duplicates; use Coerce to
// validate untrusted input.
func NewCopySet(keys ...string) CopySetValue {
	out := make(CopySetValue, len(keys))
	copy(out, keys)
	sortStrings(out)
	return out
}

// BagEntry is one key with its positive multiplicity inside a CopyBagValue.
type BagEntry struct {
	Key   string
	Count uint64
}

// CopyBagValue is a multiset: entries sorted by key, unique keys, all
// counts strictly positive.
type CopyBagValue []BagEntry

// Kind returns KindCopyBag.
func (b CopyBagValue) Kind() Kind { return KindCopyBag }

// NewCopyBag builds a canonical CopyBagValue, merging repeated keys and
// dropping zero counts. A key whose merged count would exceed the uint64
// range is left split across duplicate entries, so Coerce rejects the
// bag instead of a wrapped count slipping through.
func NewCopyBag(entries ...BagEntry) CopyBagValue {
	counts := make(map[string]uint64, len(entries))
	var split CopyBagValue
	for _, e := range entries {
		if sum := counts[e.Key] + e.Count; sum >= counts[e.Key] {
			counts[e.Key] = sum
		} else {
			split = append(split, BagEntry{Key: e.Key, Count: counts[e.Key]})
			counts[e.Key] = e.Count
		}
	}
	out := make(CopyBagValue, 0, len(counts)+len(split))
	for k, c := range counts {
		if c == 0 {
			continue
		}
		out = append(out, BagEntry{Key: k, Count: c})
	}
	out = append(out, split...)
	sortBag(out)
	return out
}

// String renders the bag as {key:count, ...} for logs and errors.
func (b CopyBagValue) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key)
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(e.Count, 10))
	}
	sb.WriteByte('}')
	return sb.String()
}

// DecimalValue is a canonical non-negative decimal string: no sign, no
// leading zeros on the integer part, no trailing zeros on the fractional
// part, fractional part omitted when empty.
type DecimalValue string

// Kind returns KindDecimal.
func (d DecimalValue) Kind() Kind { return KindDecimal }

func sortStrings(s []string) {
	sort.Strings(s)
}

func sortBag(b CopyBagValue) {
	sort.Slice(b, func(i, j int) bool { return b[i].Key < b[j].Key })
}
