package payment

import (
	"fmt"
	"sync"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// Payment is an opaque, linear handle to an amount in transit. A
// payment is live while its ledger entry exists; every operation that
// reads its value also consumes it. Handles are generational: once a
// slot is reused, stale handles to its previous occupant stay dead
// forever.
type Payment struct {
	index      uint64
	generation uint64
}

func (p Payment) String() string {
	return fmt.Sprintf("payment(%d.%d)", p.index, p.generation)
}

type slot struct {
	generation uint64
	live       bool
	amount     amount.Amount
}

// Ledger is the sole source of truth for what each payment of one brand
// is currently worth and whether it still exists. Slots are an explicit
// arena with a freelist; deletion is an explicit slot release, never
// garbage-collector driven.
//
// A single mutex serializes every operation end to end, so no caller
// can observe the gap between a reallocation's conservation check and
// its commit.
type Ledger struct {
	mu    sync.Mutex
	brand *amount.Brand
	slots []slot
	free  []uint64

	// recorder, when set, observes committed mutating operations.
	recorder Recorder
}

// record notifies the recorder of a committed operation. Caller must
// hold l.mu.
func (l *Ledger) record(op Op, amt amount.Amount) {
	if l.recorder != nil {
		l.recorder(op, amt)
	}
}

// NewLedger creates an empty payment ledger for one brand.
func NewLedger(brand *amount.Brand) *Ledger {
	return &Ledger{brand: brand}
}

// Brand returns the one brand this ledger accounts for.
func (l *Ledger) Brand() *amount.Brand { return l.brand }

// IsLive reports whether the payment still has a ledger entry.
func (l *Ledger) IsLive(p Payment) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isLive(p)
}

// AmountOf returns the live amount of a payment without consuming it.
func (l *Ledger) AmountOf(p Payment) (amount.Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.amountOf(p)
}

// LiveCount returns the number of live payments.
func (l *Ledger) LiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for i := range l.slots {
		if l.slots[i].live {
			n++
		}
	}
	return n
}

func (l *Ledger) isLive(p Payment) bool {
	if p.index >= uint64(len(l.slots)) {
		return false
	}
	s := &l.slots[p.index]
	return s.live && s.generation == p.generation
}

func (l *Ledger) amountOf(p Payment) (amount.Amount, error) {
	if !l.isLive(p) {
		return amount.Amount{}, fmt.Errorf("%w: %v", ErrUnknownPayment, p)
	}
	return l.slots[p.index].amount, nil
}

// allocate inserts a fresh live entry and returns its handle. Caller
// must hold l.mu and must have coerced amt against l.brand.
func (l *Ledger) allocate(amt amount.Amount) Payment {
	if n := len(l.free); n > 0 {
		idx := l.free[n-1]
		l.free = l.free[:n-1]
		s := &l.slots[idx]
		s.live = true
		s.amount = amt
		return Payment{index: idx, generation: s.generation}
	}
	l.slots = append(l.slots, slot{live: true, amount: amt})
	return Payment{index: uint64(len(l.slots) - 1), generation: 0}
}

// release deletes a live entry. The slot's generation advances so the
// consumed handle can never be resurrected. Caller must hold l.mu.
func (l *Ledger) release(p Payment) {
	s := &l.slots[p.index]
	s.live = false
	s.generation++
	s.amount = amount.Amount{}
	l.free = append(l.free, p.index)
}
