package amount

import "fmt"

// DisplayInfo carries UI hints attached to a brand. The engine never
// interprets it beyond storing and returning it.
type DisplayInfo struct {
	// DecimalPlaces is the suggested display scaling. For decimal brands
	// it equals the brand's arithmetic precision.
	DecimalPlaces int
}

// Brand is the opaque, immutable identity token for one asset type.
// Two brands are the same asset type only when they are the same
// allocation; the struct carries no comparable identity beyond its
// pointer. The asset kind is fixed at creation and never changes.
type Brand struct {
	name    string
	kind    Kind
	display DisplayInfo
	helpers MathHelpers
}

// NewBrand creates a brand for one of the structural asset kinds.
// Decimal brands need a precision; use NewDecimalBrand.
func NewBrand(name string, kind Kind, display DisplayInfo) (*Brand, error) {
	helpers, err := HelpersFor(kind)
	if err != nil {
		return nil, err
	}
	return &Brand{name: name, kind: kind, display: display, helpers: helpers}, nil
}

// NewDecimalBrand creates a brand whose values are decimal strings with
// at most `places` fractional digits.
func NewDecimalBrand(name string, places int) (*Brand, error) {
	helpers, err := NewDecimalHelpers(places)
	if err != nil {
		return nil, err
	}
	return &Brand{
		name:    name,
		kind:    KindDecimal,
		display: DisplayInfo{DecimalPlaces: places},
		helpers: helpers,
	}, nil
}

// AllegedName returns the human-readable name the brand was created
// with. It is a label, not an identity: only pointer equality proves
// two brands are the same asset type.
func (b *Brand) AllegedName() string { return b.name }

// AssetKind returns the brand's value representation.
func (b *Brand) AssetKind() Kind { return b.kind }

// DisplayInfo returns the brand's display metadata.
func (b *Brand) DisplayInfo() DisplayInfo { return b.display }

// Helpers returns the arithmetic strategy for this brand's kind.
func (b *Brand) Helpers() MathHelpers { return b.helpers }

func (b *Brand) String() string {
	return fmt.Sprintf("%s[%s]", b.name, b.kind)
}
