package jsonrpc

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/server/methods"
)

// Handler dispatches asset-ledger JSON-RPC methods.
type Handler struct {
	methods map[string]func(interface{}) (interface{}, error)
}

// NewHandler initializes a Handler over the given service.
func NewHandler(svc *methods.Service) *Handler {
	h := &Handler{
		methods: make(map[string]func(interface{}) (interface{}, error)),
	}

	// Register available methods.
	h.methods["issuer_create"] = svc.HandleIssuerCreate
	h.methods["issuer_mint"] = svc.HandleIssuerMint
	h.methods["issuer_burn"] = svc.HandleIssuerBurn
	h.methods["issuer_claim"] = svc.HandleIssuerClaim
	h.methods["issuer_split"] = svc.HandleIssuerSplit
	h.methods["issuer_splitMany"] = svc.HandleIssuerSplitMany
	h.methods["issuer_combine"] = svc.HandleIssuerCombine
	h.methods["issuer_isLive"] = svc.HandleIssuerIsLive
	h.methods["issuer_getAmountOf"] = svc.HandleIssuerAmountOf
	h.methods["purse_create"] = svc.HandlePurseCreate
	h.methods["purse_deposit"] = svc.HandlePurseDeposit
	h.methods["purse_withdraw"] = svc.HandlePurseWithdraw
	h.methods["purse_balance"] = svc.HandlePurseBalance
	h.methods["ledger_snapshot"] = svc.HandleLedgerSnapshot

	return h
}

// Handle dispatches a JSON-RPC method to the appropriate handler.
func (h *Handler) Handle(method string, params interface{}) (interface{}, error) {
	handler, exists := h.methods[method]
	if !exists {
		return nil, fmt.Errorf("method %s not found", method)
	}
	return handler(params)
}
