package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goassetd/internal/core/amount"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	kit := natKit(t)
	purse := kit.Issuer.NewEmptyPurse()

	p1, err := kit.Mint.MintPayment(nat(t, kit, 100))
	require.NoError(t, err)
	_, err = purse.Deposit(p1)
	require.NoError(t, err)
	live, err := purse.Withdraw(nat(t, kit, 30))
	require.NoError(t, err)

	// p1 is dead, live is live, purse holds 70
	snap, err := kit.Snapshot()
	require.NoError(t, err)

	// the snapshot is plain data; it must survive serialization
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored, err := RestoreKit(&decoded)
	require.NoError(t, err)
	require.Equal(t, kit.Brand.AllegedName(), restored.Brand.AllegedName())
	require.Equal(t, kit.Brand.AssetKind(), restored.Brand.AssetKind())

	// handle identity carries over: the live handle resolves, the
	// consumed one stays dead
	require.True(t, restored.Issuer.IsLive(live))
	amt, err := restored.Issuer.AmountOf(live)
	require.NoError(t, err)
	require.Equal(t, amount.NewNat(30), amt.Value)
	require.False(t, restored.Issuer.IsLive(p1))

	rp, ok := restored.Issuer.PurseByID(purse.ID())
	require.True(t, ok)
	require.Equal(t, amount.NewNat(70), rp.CurrentAmount().Value)

	// the restored ledger keeps working: deposit the surviving payment
	_, err = rp.Deposit(live)
	require.NoError(t, err)
	require.Equal(t, amount.NewNat(100), rp.CurrentAmount().Value)
}

// TestSnapshotFreelistReuse: slots freed before the snapshot must be
// reusable after restore without resurrecting stale handles.
func TestSnapshotFreelistReuse(t *testing.T) {
	kit := natKit(t)

	p1, err := kit.Mint.MintPayment(nat(t, kit, 1))
	require.NoError(t, err)
	p2, err := kit.Mint.MintPayment(nat(t, kit, 2))
	require.NoError(t, err)
	_, err = kit.Issuer.Burn(p1)
	require.NoError(t, err)

	snap, err := kit.Snapshot()
	require.NoError(t, err)
	restored, err := RestoreKit(snap)
	require.NoError(t, err)

	require.False(t, restored.Issuer.IsLive(p1))
	require.True(t, restored.Issuer.IsLive(p2))

	p3, err := restored.Mint.MintPayment(nat(t, kit, 3))
	require.NoError(t, err)
	require.True(t, restored.Issuer.IsLive(p3))
	// the stale handle points at the reused slot but an older generation
	require.False(t, restored.Issuer.IsLive(p1))
}

// TestSnapshotRestoresRecoverySet: payments withdrawn before a snapshot
// must still be sweepable by RecoverAll afterwards.
func TestSnapshotRestoresRecoverySet(t *testing.T) {
	kit := natKit(t)
	purse := kit.Issuer.NewEmptyPurse()

	p, err := kit.Mint.MintPayment(nat(t, kit, 100))
	require.NoError(t, err)
	_, err = purse.Deposit(p)
	require.NoError(t, err)
	withdrawn, err := purse.Withdraw(nat(t, kit, 30))
	require.NoError(t, err)

	snap, err := kit.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []HandleRef{withdrawn.Ref()}, snap.Purses[0].Recovery)

	restored, err := RestoreKit(snap)
	require.NoError(t, err)
	rp, ok := restored.Issuer.PurseByID(purse.ID())
	require.True(t, ok)
	require.Equal(t, []Payment{withdrawn}, rp.RecoverySet())

	recovered, err := rp.RecoverAll()
	require.NoError(t, err)
	require.Equal(t, amount.NewNat(30), recovered.Value)
	require.Equal(t, amount.NewNat(100), rp.CurrentAmount().Value)
	require.False(t, restored.Issuer.IsLive(withdrawn))

	// a recovery entry that does not resolve to a live slot is corrupt
	snap.Purses[0].Recovery = []HandleRef{{Index: 99, Generation: 0}}
	_, err = RestoreKit(snap)
	require.Error(t, err)
}

func TestSnapshotDecimalKit(t *testing.T) {
	kit, err := NewDecimalIssuerKit("stable", 2)
	require.NoError(t, err)

	amt, err := amount.Make(kit.Brand, amount.DecimalValue("10.50"))
	require.NoError(t, err)
	p, err := kit.Mint.MintPayment(amt)
	require.NoError(t, err)

	snap, err := kit.Snapshot()
	require.NoError(t, err)
	require.Equal(t, "decimal", snap.AssetKind)
	require.Equal(t, 2, snap.DecimalPlaces)

	restored, err := RestoreKit(snap)
	require.NoError(t, err)
	got, err := restored.Issuer.AmountOf(p)
	require.NoError(t, err)
	require.Equal(t, amount.DecimalValue("10.5"), got.Value)
}

func TestRestoreRejectsCorruptValues(t *testing.T) {
	kit := natKit(t)
	p, err := kit.Mint.MintPayment(nat(t, kit, 5))
	require.NoError(t, err)
	_ = p

	snap, err := kit.Snapshot()
	require.NoError(t, err)

	snap.Slots[0].Value = amount.EncodedValue{Decimal: "1.5"}
	_, err = RestoreKit(snap)
	require.Error(t, err)

	snap.AssetKind = "no-such-kind"
	_, err = RestoreKit(snap)
	require.Error(t, err)
}
