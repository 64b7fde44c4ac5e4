package methods

import (
	"github.com/LeJamon/goassetd/internal/core/payment"
)

// WireAmount is an amount as it appears in requests and responses: the
// brand's name plus the kind-shaped value.
type WireAmount struct {
	Brand string `json:"brand"`
	Value any    `json:"value"`
}

// IssuerCreateRequest represents the request structure for the "issuer_create" method.
type IssuerCreateRequest struct {
	Name          string `json:"name"`
	AssetKind     string `json:"assetKind"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

// IssuerCreateResponse represents the response structure for the "issuer_create" method.
type IssuerCreateResponse struct {
	Issuer        string `json:"issuer"`
	AssetKind     string `json:"assetKind"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

// IssuerMintRequest represents the request structure for the "issuer_mint" method.
type IssuerMintRequest struct {
	Issuer string `json:"issuer"`
	Value  any    `json:"value"`
}

// IssuerMintResponse represents the response structure for the "issuer_mint" method.
type IssuerMintResponse struct {
	Payment payment.HandleRef `json:"payment"`
	Amount  WireAmount        `json:"amount"`
}

// IssuerBurnRequest represents the request structure for the "issuer_burn" method.
type IssuerBurnRequest struct {
	Issuer        string             `json:"issuer"`
	Payment       *payment.HandleRef `json:"payment"`
	ExpectedValue any                `json:"expectedValue,omitempty"`
}

// IssuerBurnResponse represents the response structure for the "issuer_burn" method.
type IssuerBurnResponse struct {
	Burned WireAmount `json:"burned"`
}

// IssuerClaimRequest represents the request structure for the "issuer_claim" method.
type IssuerClaimRequest struct {
	Issuer        string             `json:"issuer"`
	Payment       *payment.HandleRef `json:"payment"`
	ExpectedValue any                `json:"expectedValue,omitempty"`
}

// IssuerClaimResponse represents the response structure for the "issuer_claim" method.
type IssuerClaimResponse struct {
	Payment payment.HandleRef `json:"payment"`
	Amount  WireAmount        `json:"amount"`
}

// IssuerSplitRequest represents the request structure for the "issuer_split" method.
type IssuerSplitRequest struct {
	Issuer  string             `json:"issuer"`
	Payment *payment.HandleRef `json:"payment"`
	Value   any                `json:"value"`
}

// IssuerSplitResponse represents the response structure for the "issuer_split" method.
type IssuerSplitResponse struct {
	Payments []payment.HandleRef `json:"payments"`
}

// IssuerSplitManyRequest represents the request structure for the "issuer_splitMany" method.
type IssuerSplitManyRequest struct {
	Issuer  string             `json:"issuer"`
	Payment *payment.HandleRef `json:"payment"`
	Values  []any              `json:"values"`
}

// IssuerSplitManyResponse represents the response structure for the "issuer_splitMany" method.
type IssuerSplitManyResponse struct {
	Payments []payment.HandleRef `json:"payments"`
}

// IssuerCombineRequest represents the request structure for the "issuer_combine" method.
type IssuerCombineRequest struct {
	Issuer        string              `json:"issuer"`
	Payments      []payment.HandleRef `json:"payments"`
	ExpectedTotal any                 `json:"expectedTotal,omitempty"`
}

// IssuerCombineResponse represents the response structure for the "issuer_combine" method.
type IssuerCombineResponse struct {
	Payment payment.HandleRef `json:"payment"`
	Amount  WireAmount        `json:"amount"`
}

// IssuerIsLiveRequest represents the request structure for the "issuer_isLive" method.
type IssuerIsLiveRequest struct {
	Issuer  string             `json:"issuer"`
	Payment *payment.HandleRef `json:"payment"`
}

// IssuerIsLiveResponse represents the response structure for the "issuer_isLive" method.
type IssuerIsLiveResponse struct {
	Live bool `json:"live"`
}

// IssuerAmountOfRequest represents the request structure for the "issuer_getAmountOf" method.
type IssuerAmountOfRequest struct {
	Issuer  string             `json:"issuer"`
	Payment *payment.HandleRef `json:"payment"`
}

// IssuerAmountOfResponse represents the response structure for the "issuer_getAmountOf" method.
type IssuerAmountOfResponse struct {
	Amount WireAmount `json:"amount"`
}

// PurseCreateRequest represents the request structure for the "purse_create" method.
type PurseCreateRequest struct {
	Issuer string `json:"issuer"`
}

// PurseCreateResponse represents the response structure for the "purse_create" method.
type PurseCreateResponse struct {
	Purse uint64 `json:"purse"`
}

// PurseDepositRequest represents the request structure for the "purse_deposit" method.
type PurseDepositRequest struct {
	Issuer        string             `json:"issuer"`
	Purse         uint64             `json:"purse"`
	Payment       *payment.HandleRef `json:"payment"`
	ExpectedValue any                `json:"expectedValue,omitempty"`
}

// PurseDepositResponse represents the response structure for the "purse_deposit" method.
type PurseDepositResponse struct {
	Deposited WireAmount `json:"deposited"`
	Balance   WireAmount `json:"balance"`
}

// PurseWithdrawRequest represents the request structure for the "purse_withdraw" method.
type PurseWithdrawRequest struct {
	Issuer string `json:"issuer"`
	Purse  uint64 `json:"purse"`
	Value  any    `json:"value"`
}

// PurseWithdrawResponse represents the response structure for the "purse_withdraw" method.
type PurseWithdrawResponse struct {
	Payment payment.HandleRef `json:"payment"`
	Balance WireAmount        `json:"balance"`
}

// PurseBalanceRequest represents the request structure for the "purse_balance" method.
type PurseBalanceRequest struct {
	Issuer string `json:"issuer"`
	Purse  uint64 `json:"purse"`
}

// PurseBalanceResponse represents the response structure for the "purse_balance" method.
type PurseBalanceResponse struct {
	Balance WireAmount `json:"balance"`
}

// LedgerSnapshotRequest represents the request structure for the "ledger_snapshot" method.
type LedgerSnapshotRequest struct {
	Issuer string `json:"issuer,omitempty"`
}

// LedgerSnapshotResponse represents the response structure for the "ledger_snapshot" method.
type LedgerSnapshotResponse struct {
	Sequences map[string]uint64 `json:"sequences"`
}
