package payment

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// reallocationKind selects which side of the conservation equation a
// reallocation is allowed to leave open. Only the mint path may grow
// total value and only the burn path may shrink it; everything else
// must conserve exactly.
type reallocationKind uint8

const (
	conserveValue reallocationKind = iota
	growValue                      // mint: no "in" side exists at all
	shrinkValue                    // burn: no "out" side exists at all
)

// reallocation describes one atomic N-in/M-out transfer: the payments
// to consume, at most one participating purse with its replacement
// balance, and the amounts to produce as fresh payments.
type reallocation struct {
	kind       reallocationKind
	consumed   []Payment
	purse      *Purse
	newBalance amount.Amount
	produced   []amount.Amount
}

// reallocate validates and commits a reallocation. It is the single
// choke point through which every ledger mutation passes. All checks
// run to completion before any mutation; a failure leaves the ledger
// and purse byte-for-byte unchanged. Caller must hold l.mu.
func (l *Ledger) reallocate(r reallocation) ([]Payment, error) {
	// Anti-aliasing: the same live handle must not be consumed twice in
	// one call. Purses never alias because at most one participates.
	if len(r.consumed) > 1 {
		seen := make(map[Payment]struct{}, len(r.consumed))
		for _, p := range r.consumed {
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("%w: %v", ErrAliasedPayment, p)
			}
			seen[p] = struct{}{}
		}
	}

	consumedAmounts := make([]amount.Amount, len(r.consumed))
	for i, p := range r.consumed {
		amt, err := l.amountOf(p)
		if err != nil {
			return nil, err
		}
		consumedAmounts[i] = amt
	}

	produced := make([]amount.Amount, len(r.produced))
	for i, amt := range r.produced {
		coerced, err := amount.Coerce(l.brand, amt)
		if err != nil {
			return nil, err
		}
		produced[i] = coerced
	}
	newBalance := amount.Amount{}
	if r.purse != nil {
		coerced, err := amount.Coerce(l.brand, r.newBalance)
		if err != nil {
			return nil, err
		}
		newBalance = coerced
	}

	if err := l.checkConservation(r, consumedAmounts, produced, newBalance); err != nil {
		return nil, err
	}

	// Commit. Nothing below may fail.
	for _, p := range r.consumed {
		l.release(p)
	}
	if r.purse != nil {
		r.purse.commit(newBalance)
	}
	out := make([]Payment, len(produced))
	for i, amt := range produced {
		out[i] = l.allocate(amt)
	}
	return out, nil
}

func (l *Ledger) checkConservation(r reallocation, consumed, produced []amount.Amount, newBalance amount.Amount) error {
	switch r.kind {
	case growValue:
		if len(r.consumed) != 0 || r.purse != nil {
			return fmt.Errorf("%w: mint path must consume nothing", ErrConservation)
		}
		return nil
	case shrinkValue:
		if len(r.produced) != 0 || r.purse != nil {
			return fmt.Errorf("%w: burn path must produce nothing", ErrConservation)
		}
		return nil
	}

	totalIn := amount.MakeEmpty(l.brand)
	totalOut := amount.MakeEmpty(l.brand)
	var err error
	for _, amt := range consumed {
		if totalIn, err = amount.Add(totalIn, amt); err != nil {
			return err
		}
	}
	for _, amt := range produced {
		if totalOut, err = amount.Add(totalOut, amt); err != nil {
			return err
		}
	}
	if r.purse != nil {
		if totalIn, err = amount.Add(totalIn, r.purse.balance); err != nil {
			return err
		}
		if totalOut, err = amount.Add(totalOut, newBalance); err != nil {
			return err
		}
	}

	equal, err := amount.IsEqual(totalIn, totalOut)
	if err != nil {
		return err
	}
	if !equal {
		return fmt.Errorf("%w: in %v, out %v", ErrConservation, totalIn, totalOut)
	}
	return nil
}
