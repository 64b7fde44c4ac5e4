package payment

import "errors"

var (
	// ErrUnknownPayment is returned when a handle has no live ledger entry:
	// already consumed, forged, or issued by a different ledger
	ErrUnknownPayment = errors.New("payment not found in ledger")

	// ErrAliasedPayment is returned when the same payment handle is supplied
	// more than once to one multi-payment operation
	ErrAliasedPayment = errors.New("payment appears more than once")

	// ErrConservation is returned when a reallocation's in and out totals
	// differ. Unreachable for correctly-coerced callers but always checked.
	ErrConservation = errors.New("reallocation does not conserve total value")

	// ErrAmountMismatch is returned when a caller-supplied expected amount
	// does not match the actual amount at a commit-gated check
	ErrAmountMismatch = errors.New("expected amount does not match actual amount")
)
