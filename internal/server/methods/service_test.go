package methods_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goassetd/internal/core/amount"
	"github.com/LeJamon/goassetd/internal/server/methods"
	"github.com/LeJamon/goassetd/internal/storage/database"
	_ "github.com/LeJamon/goassetd/internal/storage/database/leveldb"
	"github.com/LeJamon/goassetd/internal/storage/snapshot"
)

func createNatIssuer(t *testing.T, svc *methods.Service, name string) {
	t.Helper()
	_, err := svc.HandleIssuerCreate(map[string]any{
		"name":      name,
		"assetKind": "nat",
	})
	require.NoError(t, err)
}

func mint(t *testing.T, svc *methods.Service, issuer string, value any) methods.IssuerMintResponse {
	t.Helper()
	res, err := svc.HandleIssuerMint(map[string]any{"issuer": issuer, "value": value})
	require.NoError(t, err)
	return res.(methods.IssuerMintResponse)
}

func TestIssuerLifecycle(t *testing.T) {
	svc := methods.NewService()
	createNatIssuer(t, svc, "token")

	minted := mint(t, svc, "token", float64(100))
	require.Equal(t, "100", minted.Amount.Value)

	res, err := svc.HandleIssuerIsLive(map[string]any{
		"issuer": "token", "payment": minted.Payment,
	})
	require.NoError(t, err)
	require.True(t, res.(methods.IssuerIsLiveResponse).Live)

	res, err = svc.HandleIssuerSplit(map[string]any{
		"issuer": "token", "payment": minted.Payment, "value": float64(40),
	})
	require.NoError(t, err)
	parts := res.(methods.IssuerSplitResponse).Payments
	require.Len(t, parts, 2)

	res, err = svc.HandleIssuerAmountOf(map[string]any{
		"issuer": "token", "payment": parts[1],
	})
	require.NoError(t, err)
	require.Equal(t, "60", res.(methods.IssuerAmountOfResponse).Amount.Value)

	res, err = svc.HandleIssuerCombine(map[string]any{
		"issuer": "token", "payments": []any{parts[0], parts[1]}, "expectedTotal": float64(100),
	})
	require.NoError(t, err)
	combined := res.(methods.IssuerCombineResponse)
	require.Equal(t, "100", combined.Amount.Value)

	res, err = svc.HandleIssuerBurn(map[string]any{
		"issuer": "token", "payment": combined.Payment,
	})
	require.NoError(t, err)
	require.Equal(t, "100", res.(methods.IssuerBurnResponse).Burned.Value)
}

func TestPurseFlow(t *testing.T) {
	svc := methods.NewService()
	createNatIssuer(t, svc, "token")

	res, err := svc.HandlePurseCreate(map[string]any{"issuer": "token"})
	require.NoError(t, err)
	purseID := res.(methods.PurseCreateResponse).Purse

	minted := mint(t, svc, "token", "100")
	res, err = svc.HandlePurseDeposit(map[string]any{
		"issuer": "token", "purse": purseID, "payment": minted.Payment,
	})
	require.NoError(t, err)
	require.Equal(t, "100", res.(methods.PurseDepositResponse).Balance.Value)

	res, err = svc.HandlePurseWithdraw(map[string]any{
		"issuer": "token", "purse": purseID, "value": float64(40),
	})
	require.NoError(t, err)
	withdraw := res.(methods.PurseWithdrawResponse)
	require.Equal(t, "60", withdraw.Balance.Value)

	res, err = svc.HandlePurseBalance(map[string]any{
		"issuer": "token", "purse": purseID,
	})
	require.NoError(t, err)
	require.Equal(t, "60", res.(methods.PurseBalanceResponse).Balance.Value)

	// the withdrawn payment is live and spendable
	res, err = svc.HandleIssuerAmountOf(map[string]any{
		"issuer": "token", "payment": withdraw.Payment,
	})
	require.NoError(t, err)
	require.Equal(t, "40", res.(methods.IssuerAmountOfResponse).Amount.Value)

	_, err = svc.HandlePurseBalance(map[string]any{
		"issuer": "token", "purse": float64(99),
	})
	require.ErrorIs(t, err, methods.ErrUnknownPurse)
}

func TestServiceErrors(t *testing.T) {
	svc := methods.NewService()
	createNatIssuer(t, svc, "token")

	_, err := svc.HandleIssuerMint(map[string]any{"issuer": "nope", "value": float64(1)})
	require.ErrorIs(t, err, methods.ErrUnknownIssuer)

	_, err = svc.HandleIssuerMint(map[string]any{"issuer": "token", "value": float64(-3)})
	require.ErrorIs(t, err, amount.ErrShape)

	_, err = svc.HandleIssuerBurn(map[string]any{"issuer": "token"})
	require.Error(t, err)

	_, err = svc.HandleIssuerCreate(map[string]any{"name": "token", "assetKind": "nat"})
	require.Error(t, err)

	_, err = svc.HandleIssuerCreate(map[string]any{"name": "a/b", "assetKind": "nat"})
	require.Error(t, err)
}

func TestCopyBagOverWire(t *testing.T) {
	svc := methods.NewService()
	_, err := svc.HandleIssuerCreate(map[string]any{
		"name": "seats", "assetKind": "copyBag",
	})
	require.NoError(t, err)

	minted := mint(t, svc, "seats", map[string]any{
		"copyBag": []any{"row1", map[string]any{"key": "row2", "count": float64(3)}},
	})
	res, err := svc.HandleIssuerAmountOf(map[string]any{
		"issuer": "seats", "payment": minted.Payment,
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"copyBag": []map[string]any{
		{"key": "row1", "count": uint64(1)},
		{"key": "row2", "count": uint64(3)},
	}}, res.(methods.IssuerAmountOfResponse).Amount.Value)
}

func TestSnapshotAndRestart(t *testing.T) {
	ctx := context.Background()
	mgr, err := database.NewManager("leveldb", t.TempDir())
	require.NoError(t, err)
	defer mgr.Close()
	db, err := mgr.OpenDB("snapshots")
	require.NoError(t, err)
	store, err := snapshot.NewStore(db, "lz4", 8)
	require.NoError(t, err)

	svc := methods.NewService(methods.WithSnapshotStore(store))
	createNatIssuer(t, svc, "token")

	res, err := svc.HandlePurseCreate(map[string]any{"issuer": "token"})
	require.NoError(t, err)
	purseID := res.(methods.PurseCreateResponse).Purse

	minted := mint(t, svc, "token", float64(100))
	_, err = svc.HandlePurseDeposit(map[string]any{
		"issuer": "token", "purse": purseID, "payment": minted.Payment,
	})
	require.NoError(t, err)
	withdrawRes, err := svc.HandlePurseWithdraw(map[string]any{
		"issuer": "token", "purse": purseID, "value": float64(25),
	})
	require.NoError(t, err)
	live := withdrawRes.(methods.PurseWithdrawResponse).Payment

	snapRes, err := svc.HandleLedgerSnapshot(nil)
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{"token": 1}, snapRes.(methods.LedgerSnapshotResponse).Sequences)

	// a second service over the same store picks up where we left off
	restarted := methods.NewService(methods.WithSnapshotStore(store))
	require.NoError(t, restarted.RestoreIssuers(ctx))
	require.Equal(t, []string{"token"}, restarted.IssuerNames())

	res, err = restarted.HandlePurseBalance(map[string]any{
		"issuer": "token", "purse": purseID,
	})
	require.NoError(t, err)
	require.Equal(t, "75", res.(methods.PurseBalanceResponse).Balance.Value)

	res, err = restarted.HandleIssuerAmountOf(map[string]any{
		"issuer": "token", "payment": live,
	})
	require.NoError(t, err)
	require.Equal(t, "25", res.(methods.IssuerAmountOfResponse).Amount.Value)

	// snapshot sequencing continues from the restored sequence
	snapRes, err = restarted.HandleLedgerSnapshot(map[string]any{"issuer": "token"})
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{"token": 2}, snapRes.(methods.LedgerSnapshotResponse).Sequences)
}
