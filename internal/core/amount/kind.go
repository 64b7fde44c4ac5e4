package amount

import "fmt"

// Kind identifies the value representation used by a brand. It is fixed
// when the brand is created and never changes afterwards.
type Kind uint8

const (
	// KindNat is a non-negative unbounded integer for fungible assets
	KindNat Kind = iota

	// KindSet is the legacy array-of-elements representation. Elements are
	// compared by deep structural equality. Deprecated in favor of KindCopySet.
	KindSet

	// KindCopySet is a canonical set of unique string keys
	KindCopySet

	// KindCopyBag is a multiset mapping string keys to positive counts
	KindCopyBag

	// KindDecimal is a canonical non-negative decimal string with a fixed
	// per-brand number of fractional places
	KindDecimal
)

// String returns the lowercase name used in configs and over the wire.
func (k Kind) String() string {
	switch k {
	case KindNat:
		return "nat"
	case KindSet:
		return "set"
	case KindCopySet:
		return "copySet"
	case KindCopyBag:
		return "copyBag"
	case KindDecimal:
		return "decimal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts a wire/config name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "nat":
		return KindNat, nil
	case "set":
		return KindSet, nil
	case "copySet":
		return KindCopySet, nil
	case "copyBag":
		return KindCopyBag, nil
	case "decimal":
		return KindDecimal, nil
	default:
		return 0, fmt.Errorf("unknown asset kind: %q", s)
	}
}
