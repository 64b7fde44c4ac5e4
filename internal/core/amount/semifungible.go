package amount

import "fmt"

// MakeSemifungibleAmount builds a copyBag amount from a spread of
// element keys. Repeated keys accumulate into counts, so the result is
// genuinely semi-fungible rather than a singleton set.
func MakeSemifungibleAmount(brand *Brand, elements ...string) (Amount, error) {
	if brand.AssetKind() != KindCopyBag {
		return Amount{}, fmt.Errorf("%w: brand %s is not a copyBag brand", ErrShape, brand)
	}
	entries := make([]BagEntry, len(elements))
	for i, e := range elements {
		entries[i] = BagEntry{Key: e, Count: 1}
	}
	return Make(brand, NewCopyBag(entries...))
}

// SemifungibleElement extracts the single element of a copyBag amount
// that holds exactly one distinct key with count exactly 1.
func SemifungibleElement(a Amount) (string, error) {
	if a.Brand == nil || a.Brand.AssetKind() != KindCopyBag {
		return "", fmt.Errorf("%w: expected a copyBag amount", ErrShape)
	}
	coerced, err := Coerce(a.Brand, a)
	if err != nil {
		return "", err
	}
	bag := coerced.Value.(CopyBagValue)
	if len(bag) != 1 {
		return "", fmt.Errorf("%w: expected exactly one element, got %d", ErrShape, len(bag))
	}
	if bag[0].Count != 1 {
		return "", fmt.Errorf("%w: element %q has count %d, expected 1",
			ErrShape, bag[0].Key, bag[0].Count)
	}
	return bag[0].Key, nil
}
