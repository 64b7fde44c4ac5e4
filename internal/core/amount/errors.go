package amount

import "errors"

var (
	// ErrShape is returned when a value does not match the representation
	// required by its brand's asset kind
	ErrShape = errors.New("value shape does not match asset kind")

	// ErrBrandMismatch is returned when amounts or brand arguments to one
	// operation disagree about their brand
	ErrBrandMismatch = errors.New("brand mismatch")

	// ErrNegativeResult is returned when a subtraction would go below zero,
	// or when a set/bag subtrahend is not fully contained in the minuend
	ErrNegativeResult = errors.New("subtraction would produce a negative result")

	// ErrDuplicateElement is returned when a set union is given overlapping
	// elements
	ErrDuplicateElement = errors.New("duplicate element in set union")

	// ErrCountOverflow is returned when a copyBag union would push a key's
	// count past the uint64 range
	ErrCountOverflow = errors.New("copyBag count overflow")

	// ErrMalformedValue is returned when a decimal string cannot be parsed
	ErrMalformedValue = errors.New("malformed decimal value")

	// ErrTooManyDecimalPlaces is returned when a decimal value carries more
	// fractional digits than its brand allows
	ErrTooManyDecimalPlaces = errors.New("too many decimal places")
)
