package payment

import (
	"fmt"
	"sort"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

// Snapshot is the serializable state of one issuer kit: brand metadata,
// every arena slot (dead slots included, so stale handles stay dead
// after a restore), and purse balances with their recovery sets.
// Persistence mechanics live with
// the storage collaborator; the core only defines the shape and the
// capture/restore passes.
type Snapshot struct {
	BrandName     string       `json:"brandName"`
	AssetKind     string       `json:"assetKind"`
	DecimalPlaces int          `json:"decimalPlaces"`
	Slots         []SlotState  `json:"slots"`
	Purses        []PurseState `json:"purses"`
}

// SlotState is one arena slot: its generation counter and, when live,
// the payment's amount.
type SlotState struct {
	Generation uint64              `json:"generation"`
	Live       bool                `json:"live"`
	Value      amount.EncodedValue `json:"value"`
}

// PurseState is one purse's identity, balance, and the still-live
// payments it has withdrawn, so RecoverAll keeps working after a
// restore.
type PurseState struct {
	ID       uint64              `json:"id"`
	Balance  amount.EncodedValue `json:"balance"`
	Recovery []HandleRef         `json:"recovery,omitempty"`
}

// Snapshot captures the kit's full state under the ledger lock, so it
// is consistent with respect to every operation.
func (k *IssuerKit) Snapshot() (*Snapshot, error) {
	l := k.Issuer.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := &Snapshot{
		BrandName:     k.Brand.AllegedName(),
		AssetKind:     k.Brand.AssetKind().String(),
		DecimalPlaces: k.Brand.DisplayInfo().DecimalPlaces,
		Slots:         make([]SlotState, len(l.slots)),
		Purses:        make([]PurseState, 0, len(k.Issuer.purses)),
	}
	for i, s := range l.slots {
		state := SlotState{Generation: s.generation, Live: s.live}
		if s.live {
			encoded, err := amount.EncodeValue(s.amount.Value)
			if err != nil {
				return nil, err
			}
			state.Value = encoded
		}
		snap.Slots[i] = state
	}
	for id, p := range k.Issuer.purses {
		encoded, err := amount.EncodeValue(p.balance.Value)
		if err != nil {
			return nil, err
		}
		ps := PurseState{ID: id, Balance: encoded}
		for pay := range p.recovery {
			if l.isLive(pay) {
				ps.Recovery = append(ps.Recovery, pay.Ref())
			}
		}
		sort.Slice(ps.Recovery, func(i, j int) bool {
			return ps.Recovery[i].Index < ps.Recovery[j].Index
		})
		snap.Purses = append(snap.Purses, ps)
	}
	return snap, nil
}

// RestoreKit rebuilds an issuer kit from a snapshot. Handle identity is
// preserved: a payment handle captured before the snapshot refers to
// the same slot and generation afterwards. Every restored value is
// re-validated through the brand's coerce.
func RestoreKit(snap *Snapshot) (*IssuerKit, error) {
	kind, err := amount.ParseKind(snap.AssetKind)
	if err != nil {
		return nil, err
	}
	var kit *IssuerKit
	if kind == amount.KindDecimal {
		kit, err = NewDecimalIssuerKit(snap.BrandName, snap.DecimalPlaces)
	} else {
		kit, err = NewIssuerKit(snap.BrandName, kind,
			amount.DisplayInfo{DecimalPlaces: snap.DecimalPlaces})
	}
	if err != nil {
		return nil, err
	}

	l := kit.Issuer.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	l.slots = make([]slot, len(snap.Slots))
	l.free = l.free[:0]
	for i, state := range snap.Slots {
		s := slot{generation: state.Generation, live: state.Live}
		if state.Live {
			raw, err := amount.DecodeValue(kind, state.Value)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			amt, err := amount.Make(kit.Brand, raw)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			s.amount = amt
		} else {
			l.free = append(l.free, uint64(i))
		}
		l.slots[i] = s
	}

	for _, ps := range snap.Purses {
		raw, err := amount.DecodeValue(kind, ps.Balance)
		if err != nil {
			return nil, fmt.Errorf("purse %d: %w", ps.ID, err)
		}
		balance, err := amount.Make(kit.Brand, raw)
		if err != nil {
			return nil, fmt.Errorf("purse %d: %w", ps.ID, err)
		}
		p := newPurse(l, ps.ID)
		p.balance = balance
		for _, ref := range ps.Recovery {
			pay := ref.Payment()
			if !l.isLive(pay) {
				return nil, fmt.Errorf("purse %d: recovery entry %v is not live", ps.ID, pay)
			}
			p.recovery[pay] = struct{}{}
		}
		kit.Issuer.purses[ps.ID] = p
		if ps.ID >= kit.Issuer.nextPurseID {
			kit.Issuer.nextPurseID = ps.ID + 1
		}
	}
	return kit, nil
}
