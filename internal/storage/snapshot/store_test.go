package snapshot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goassetd/internal/core/amount"
	"github.com/LeJamon/goassetd/internal/core/payment"
	"github.com/LeJamon/goassetd/internal/storage/database"
	_ "github.com/LeJamon/goassetd/internal/storage/database/pebble"
	"github.com/LeJamon/goassetd/internal/storage/snapshot"
)

func openDB(t *testing.T) database.DB {
	t.Helper()
	mgr, err := database.NewManager("pebble", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, mgr.Close()) })
	db, err := mgr.OpenDB("snapshots")
	require.NoError(t, err)
	return db
}

func sampleKit(t *testing.T) (*payment.IssuerKit, payment.Payment) {
	t.Helper()
	kit, err := payment.NewIssuerKit("token", amount.KindNat, amount.DisplayInfo{})
	require.NoError(t, err)
	amt, err := amount.Make(kit.Brand, amount.NewNat(100))
	require.NoError(t, err)
	p, err := kit.Mint.MintPayment(amt)
	require.NoError(t, err)
	purse := kit.Issuer.NewEmptyPurse()
	half, err := amount.Make(kit.Brand, amount.NewNat(40))
	require.NoError(t, err)
	pa, _, err := kit.Issuer.Split(p, half)
	require.NoError(t, err)
	_, err = purse.Deposit(pa)
	require.NoError(t, err)
	live, err := kit.Mint.MintPayment(amt)
	require.NoError(t, err)
	return kit, live
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	for _, compressor := range []string{"none", "lz4"} {
		t.Run(compressor, func(t *testing.T) {
			ctx := context.Background()
			store, err := snapshot.NewStore(openDB(t), compressor, 4)
			require.NoError(t, err)

			kit, live := sampleKit(t)
			snap, err := kit.Snapshot()
			require.NoError(t, err)

			require.NoError(t, store.Save(ctx, "token", 1, snap))

			loaded, err := store.Load(ctx, "token", 1)
			require.NoError(t, err)

			restored, err := payment.RestoreKit(loaded)
			require.NoError(t, err)
			require.True(t, restored.Issuer.IsLive(live))
			amt, err := restored.Issuer.AmountOf(live)
			require.NoError(t, err)
			require.Equal(t, amount.NewNat(100), amt.Value)
		})
	}
}

func TestStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	store, err := snapshot.NewStore(openDB(t), "none", 4)
	require.NoError(t, err)

	_, err = store.Load(ctx, "token", 7)
	require.ErrorIs(t, err, snapshot.ErrNotFound)
	_, err = store.LatestSeq(ctx, "token")
	require.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestStoreLatest(t *testing.T) {
	ctx := context.Background()
	store, err := snapshot.NewStore(openDB(t), "lz4", 4)
	require.NoError(t, err)

	kit, _ := sampleKit(t)
	for seq := uint64(1); seq <= 3; seq++ {
		snap, err := kit.Snapshot()
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, "token", seq, snap))
	}

	// another issuer's snapshots must not leak into the range
	other, err := payment.NewIssuerKit("other", amount.KindNat, amount.DisplayInfo{})
	require.NoError(t, err)
	otherSnap, err := other.Snapshot()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "other", 9, otherSnap))

	seq, err := store.LatestSeq(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, uint64(3), seq)

	snap, seq, err := store.LoadLatest(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, uint64(3), seq)
	require.Equal(t, "token", snap.BrandName)
}

func TestStoreUnknownCompressor(t *testing.T) {
	_, err := snapshot.NewStore(openDB(t), "zstd", 4)
	require.Error(t, err)
}
