package payment

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// Purse is a long-lived balance holder for one brand. Its balance is
// advanced only by the commit callback invoked from inside a
// reallocation; there is no other mutation path.
type Purse struct {
	id      uint64
	ledger  *Ledger
	balance amount.Amount

	// recovery tracks payments this purse produced via Withdraw that may
	// still be live, so RecoverAll can sweep them back in one pass.
	recovery map[Payment]struct{}

	// notifier, when set, is invoked with the new balance after every
	// commit. The purse does not care how or whether subscribers react.
	notifier func(amount.Amount)
}

func newPurse(l *Ledger, id uint64) *Purse {
	return &Purse{
		id:       id,
		ledger:   l,
		balance:  amount.MakeEmpty(l.brand),
		recovery: make(map[Payment]struct{}),
	}
}

// ID returns the purse's issuer-scoped identity, stable across
// snapshot and restore.
func (p *Purse) ID() uint64 { return p.id }

// AllegedBrand returns the brand this purse holds.
func (p *Purse) AllegedBrand() *amount.Brand { return p.ledger.brand }

// CurrentAmount returns the purse's balance.
func (p *Purse) CurrentAmount() amount.Amount {
	p.ledger.mu.Lock()
	defer p.ledger.mu.Unlock()
	return p.balance
}

// SetNotifier installs the post-commit balance hook. Passing nil
// removes it.
func (p *Purse) SetNotifier(fn func(amount.Amount)) {
	p.ledger.mu.Lock()
	defer p.ledger.mu.Unlock()
	p.notifier = fn
}

// commit is the only writer of the balance. Caller must hold the
// ledger mutex; the notifier is collected by the public operation and
// invoked after the lock is released.
func (p *Purse) commit(newBalance amount.Amount) {
	p.balance = newBalance
}

// Deposit consumes the payment and folds its amount into the purse
// balance, returning the deposited amount. When an expected amount is
// supplied it must equal the payment's live amount or the deposit fails
// with ErrAmountMismatch and the payment stays live.
func (p *Purse) Deposit(pay Payment, expected ...amount.Amount) (amount.Amount, error) {
	l := p.ledger
	l.mu.Lock()
	amt, err := p.depositLocked(pay, expected...)
	notify := p.notifier
	balance := p.balance
	l.mu.Unlock()
	if err == nil && notify != nil {
		notify(balance)
	}
	return amt, err
}

func (p *Purse) depositLocked(pay Payment, expected ...amount.Amount) (amount.Amount, error) {
	amt, err := p.ledger.amountOf(pay)
	if err != nil {
		return amount.Amount{}, err
	}
	if err := assertExpected(amt, expected); err != nil {
		return amount.Amount{}, err
	}
	newBalance, err := amount.Add(p.balance, amt)
	if err != nil {
		return amount.Amount{}, err
	}
	if _, err := p.ledger.reallocate(reallocation{
		kind:       conserveValue,
		consumed:   []Payment{pay},
		purse:      p,
		newBalance: newBalance,
	}); err != nil {
		return amount.Amount{}, err
	}
	delete(p.recovery, pay)
	p.ledger.record(OpDeposit, amt)
	return amt, nil
}

// Withdraw produces a fresh payment carrying amt and debits the purse.
// The payment joins the purse's recovery set until it is consumed.
func (p *Purse) Withdraw(amt amount.Amount) (Payment, error) {
	l := p.ledger
	l.mu.Lock()
	pay, err := p.withdrawLocked(amt)
	notify := p.notifier
	balance := p.balance
	l.mu.Unlock()
	if err == nil && notify != nil {
		notify(balance)
	}
	return pay, err
}

func (p *Purse) withdrawLocked(amt amount.Amount) (Payment, error) {
	coerced, err := amount.Coerce(p.ledger.brand, amt)
	if err != nil {
		return Payment{}, err
	}
	newBalance, err := amount.Subtract(p.balance, coerced)
	if err != nil {
		return Payment{}, err
	}
	produced, err := p.ledger.reallocate(reallocation{
		kind:       conserveValue,
		purse:      p,
		newBalance: newBalance,
		produced:   []amount.Amount{coerced},
	})
	if err != nil {
		return Payment{}, err
	}
	p.recovery[produced[0]] = struct{}{}
	p.ledger.record(OpWithdraw, coerced)
	return produced[0], nil
}

// RecoverySet returns the still-live payments this purse withdrew and
// has not yet seen consumed. Dead entries are pruned as a side effect.
func (p *Purse) RecoverySet() []Payment {
	l := p.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Payment, 0, len(p.recovery))
	for pay := range p.recovery {
		if !l.isLive(pay) {
			delete(p.recovery, pay)
			continue
		}
		out = append(out, pay)
	}
	return out
}

// RecoverAll deposits every still-live payment in the recovery set back
// into the purse and returns the total amount recovered (the brand's
// empty amount when nothing is recoverable).
func (p *Purse) RecoverAll() (amount.Amount, error) {
	l := p.ledger
	l.mu.Lock()
	recovered := amount.MakeEmpty(l.brand)
	var err error
	for pay := range p.recovery {
		if !l.isLive(pay) {
			delete(p.recovery, pay)
			continue
		}
		var amt amount.Amount
		if amt, err = p.depositLocked(pay); err != nil {
			break
		}
		if recovered, err = amount.Add(recovered, amt); err != nil {
			break
		}
	}
	notify := p.notifier
	balance := p.balance
	l.mu.Unlock()
	if err == nil && notify != nil {
		notify(balance)
	}
	return recovered, err
}

// DepositFacet is the deposit-only capability of a purse: it can add
// value but cannot withdraw or observe beyond what Deposit returns.
type DepositFacet struct {
	purse *Purse
}

// DepositFacet returns the purse's deposit-only facet.
func (p *Purse) DepositFacet() DepositFacet {
	return DepositFacet{purse: p}
}

// Receive deposits the payment into the backing purse.
func (f DepositFacet) Receive(pay Payment, expected ...amount.Amount) (amount.Amount, error) {
	if f.purse == nil {
		return amount.Amount{}, fmt.Errorf("deposit facet is not backed by a purse")
	}
	return f.purse.Deposit(pay, expected...)
}

func assertExpected(actual amount.Amount, expected []amount.Amount) error {
	if len(expected) == 0 {
		return nil
	}
	equal, err := amount.IsEqual(actual, expected[0])
	if err != nil {
		return err
	}
	if !equal {
		return fmt.Errorf("%w: have %v, expected %v", ErrAmountMismatch, actual, expected[0])
	}
	return nil
}
