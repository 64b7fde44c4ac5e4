package payment

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// Op names one ledger-mutating operation for recording hooks.
type Op string

const (
	OpMint     Op = "mint"
	OpBurn     Op = "burn"
	OpClaim    Op = "claim"
	OpSplit    Op = "split"
	OpCombine  Op = "combine"
	OpDeposit  Op = "deposit"
	OpWithdraw Op = "withdraw"
)

// Recorder receives one call per committed mutating operation. Used to
// feed an external audit log; the core does not depend on what the
// recorder does. A recorder runs with the ledger serialized and must
// not call back into it.
type Recorder func(op Op, amt amount.Amount)

// Issuer is the public, non-minting operation set over one brand's
// payment ledger.
type Issuer struct {
	ledger *Ledger

	// purses registers every purse this issuer created, keyed by a
	// stable id so snapshots can restore balances to the right holder.
	purses      map[uint64]*Purse
	nextPurseID uint64
}

// Mint holds the authority to create new value for its brand. Its
// authority is precisely the ability to drive the "produce with nothing
// consumed" reallocation path.
type Mint struct {
	issuer *Issuer
}

// IssuerKit bundles the brand with its mint and issuer, the way a brand
// comes into existence.
type IssuerKit struct {
	Brand  *amount.Brand
	Issuer *Issuer
	Mint   *Mint
}

// NewIssuerKit creates a brand for one of the structural asset kinds
// together with its issuer and mint.
func NewIssuerKit(name string, kind amount.Kind, display amount.DisplayInfo) (*IssuerKit, error) {
	brand, err := amount.NewBrand(name, kind, display)
	if err != nil {
		return nil, err
	}
	return kitFor(brand), nil
}

// NewDecimalIssuerKit creates a decimal brand with fixed fractional
// precision together with its issuer and mint.
func NewDecimalIssuerKit(name string, places int) (*IssuerKit, error) {
	brand, err := amount.NewDecimalBrand(name, places)
	if err != nil {
		return nil, err
	}
	return kitFor(brand), nil
}

func kitFor(brand *amount.Brand) *IssuerKit {
	issuer := &Issuer{ledger: NewLedger(brand), purses: make(map[uint64]*Purse)}
	return &IssuerKit{
		Brand:  brand,
		Issuer: issuer,
		Mint:   &Mint{issuer: issuer},
	}
}

// SetRecorder installs the audit hook invoked after every committed
// mutating operation, purse deposits and withdrawals included. Passing
// nil removes it.
func (i *Issuer) SetRecorder(r Recorder) {
	i.ledger.mu.Lock()
	defer i.ledger.mu.Unlock()
	i.ledger.recorder = r
}

func (i *Issuer) record(op Op, amt amount.Amount) {
	i.ledger.record(op, amt)
}

// Brand returns the issuer's brand.
func (i *Issuer) Brand() *amount.Brand { return i.ledger.brand }

// AllegedName returns the brand's alleged name.
func (i *Issuer) AllegedName() string { return i.ledger.brand.AllegedName() }

// AssetKind returns the brand's asset kind.
func (i *Issuer) AssetKind() amount.Kind { return i.ledger.brand.AssetKind() }

// DisplayInfo returns the brand's display metadata.
func (i *Issuer) DisplayInfo() amount.DisplayInfo { return i.ledger.brand.DisplayInfo() }

// Ledger exposes the issuer's payment ledger for read-only collaborators
// such as snapshotting.
func (i *Issuer) Ledger() *Ledger { return i.ledger }

// NewEmptyPurse creates a purse holding the brand's empty amount.
func (i *Issuer) NewEmptyPurse() *Purse {
	i.ledger.mu.Lock()
	defer i.ledger.mu.Unlock()
	p := newPurse(i.ledger, i.nextPurseID)
	i.purses[p.id] = p
	i.nextPurseID++
	return p
}

// PurseByID returns a previously created (or restored) purse.
func (i *Issuer) PurseByID(id uint64) (*Purse, bool) {
	i.ledger.mu.Lock()
	defer i.ledger.mu.Unlock()
	p, ok := i.purses[id]
	return p, ok
}

// IsLive reports whether the payment has not yet been consumed.
func (i *Issuer) IsLive(p Payment) bool { return i.ledger.IsLive(p) }

// AmountOf returns the live amount of a payment without consuming it.
func (i *Issuer) AmountOf(p Payment) (amount.Amount, error) { return i.ledger.AmountOf(p) }

// Burn consumes the payment and destroys its value. When an expected
// amount is supplied it must equal the payment's live amount, otherwise
// the burn fails and the payment stays live. Returns the burned amount.
func (i *Issuer) Burn(p Payment, expected ...amount.Amount) (amount.Amount, error) {
	l := i.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	amt, err := l.amountOf(p)
	if err != nil {
		return amount.Amount{}, err
	}
	if err := assertExpected(amt, expected); err != nil {
		return amount.Amount{}, err
	}
	if _, err := l.reallocate(reallocation{
		kind:     shrinkValue,
		consumed: []Payment{p},
	}); err != nil {
		return amount.Amount{}, err
	}
	i.record(OpBurn, amt)
	return amt, nil
}

// Claim consumes the payment and produces a fresh one with the same
// amount, giving the caller exclusive possession of the value.
func (i *Issuer) Claim(p Payment, expected ...amount.Amount) (Payment, error) {
	l := i.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	amt, err := l.amountOf(p)
	if err != nil {
		return Payment{}, err
	}
	if err := assertExpected(amt, expected); err != nil {
		return Payment{}, err
	}
	produced, err := l.reallocate(reallocation{
		kind:     conserveValue,
		consumed: []Payment{p},
		produced: []amount.Amount{amt},
	})
	if err != nil {
		return Payment{}, err
	}
	i.record(OpClaim, amt)
	return produced[0], nil
}

// Split consumes the payment and produces two: one carrying amountA and
// one carrying the remainder. Fails if amountA is not containable in
// the source.
func (i *Issuer) Split(p Payment, amountA amount.Amount) (Payment, Payment, error) {
	l := i.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, err := l.amountOf(p)
	if err != nil {
		return Payment{}, Payment{}, err
	}
	a, err := amount.Coerce(l.brand, amountA)
	if err != nil {
		return Payment{}, Payment{}, err
	}
	b, err := amount.Subtract(balance, a)
	if err != nil {
		return Payment{}, Payment{}, err
	}
	produced, err := l.reallocate(reallocation{
		kind:     conserveValue,
		consumed: []Payment{p},
		produced: []amount.Amount{a, b},
	})
	if err != nil {
		return Payment{}, Payment{}, err
	}
	i.record(OpSplit, balance)
	return produced[0], produced[1], nil
}

// SplitMany consumes the payment and produces one payment per given
// amount. Conservation forces the amounts to sum to the payment's value.
func (i *Issuer) SplitMany(p Payment, amounts []amount.Amount) ([]Payment, error) {
	l := i.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, err := l.amountOf(p)
	if err != nil {
		return nil, err
	}
	produced, err := l.reallocate(reallocation{
		kind:     conserveValue,
		consumed: []Payment{p},
		produced: amounts,
	})
	if err != nil {
		return nil, err
	}
	i.record(OpSplit, balance)
	return produced, nil
}

// Combine consumes all given payments (distinct handles required) and
// produces one payment carrying their sum. When an expected total is
// supplied it must match the sum before anything commits.
func (i *Issuer) Combine(payments []Payment, expectedTotal ...amount.Amount) (Payment, error) {
	l := i.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	// Alias and liveness checks run inside reallocate, but the total has
	// to be known first to build the produced side; duplicate handles
	// must be rejected before their amounts are double counted.
	seen := make(map[Payment]struct{}, len(payments))
	total := amount.MakeEmpty(l.brand)
	for _, p := range payments {
		if _, dup := seen[p]; dup {
			return Payment{}, fmt.Errorf("%w: %v", ErrAliasedPayment, p)
		}
		seen[p] = struct{}{}
		amt, err := l.amountOf(p)
		if err != nil {
			return Payment{}, err
		}
		if total, err = amount.Add(total, amt); err != nil {
			return Payment{}, err
		}
	}
	if err := assertExpected(total, expectedTotal); err != nil {
		return Payment{}, err
	}
	produced, err := l.reallocate(reallocation{
		kind:     conserveValue,
		consumed: payments,
		produced: []amount.Amount{total},
	})
	if err != nil {
		return Payment{}, err
	}
	i.record(OpCombine, total)
	return produced[0], nil
}

// Issuer returns the issuer paired with this mint.
func (m *Mint) Issuer() *Issuer { return m.issuer }

// MintPayment creates new value: a fresh payment carrying amt, with no
// corresponding "in" side. This is the only operation that grows the
// total value accounted for by the ledger.
func (m *Mint) MintPayment(amt amount.Amount) (Payment, error) {
	l := m.issuer.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	coerced, err := amount.Coerce(l.brand, amt)
	if err != nil {
		return Payment{}, err
	}
	produced, err := l.reallocate(reallocation{
		kind:     growValue,
		produced: []amount.Amount{coerced},
	})
	if err != nil {
		return Payment{}, err
	}
	m.issuer.record(OpMint, coerced)
	return produced[0], nil
}
