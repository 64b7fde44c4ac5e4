package methods

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/core/amount"
	"github.com/LeJamon/goassetd/internal/core/payment"
	"github.com/LeJamon/goassetd/internal/server/utils"
)

func (s *Service) decodeAmount(kit *payment.IssuerKit, raw any) (amount.Amount, error) {
	value, err := DecodeValue(kit.Brand.AssetKind(), raw)
	if err != nil {
		return amount.Amount{}, err
	}
	return amount.Make(kit.Brand, value)
}

// decodeExpected turns an optional expected-value param into the
// variadic form the core takes.
func (s *Service) decodeExpected(kit *payment.IssuerKit, raw any) ([]amount.Amount, error) {
	if raw == nil {
		return nil, nil
	}
	a, err := s.decodeAmount(kit, raw)
	if err != nil {
		return nil, err
	}
	return []amount.Amount{a}, nil
}

func requirePayment(ref *payment.HandleRef) (payment.Payment, error) {
	if ref == nil {
		return payment.Payment{}, fmt.Errorf("missing payment handle")
	}
	return ref.Payment(), nil
}

func refs(payments []payment.Payment) []payment.HandleRef {
	out := make([]payment.HandleRef, len(payments))
	for i, p := range payments {
		out[i] = p.Ref()
	}
	return out
}

func (s *Service) HandleIssuerCreate(params any) (any, error) {
	var req IssuerCreateRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_create: %v", err)
	}
	kind, err := amount.ParseKind(req.AssetKind)
	if err != nil {
		return nil, err
	}
	kit, err := s.CreateIssuer(req.Name, kind, req.DecimalPlaces)
	if err != nil {
		return nil, err
	}
	return IssuerCreateResponse{
		Issuer:        kit.Brand.AllegedName(),
		AssetKind:     kit.Brand.AssetKind().String(),
		DecimalPlaces: kit.Brand.DisplayInfo().DecimalPlaces,
	}, nil
}

func (s *Service) HandleIssuerMint(params any) (any, error) {
	var req IssuerMintRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_mint: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	amt, err := s.decodeAmount(kit, req.Value)
	if err != nil {
		return nil, err
	}
	p, err := kit.Mint.MintPayment(amt)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(amt)
	if err != nil {
		return nil, err
	}
	return IssuerMintResponse{Payment: p.Ref(), Amount: wire}, nil
}

func (s *Service) HandleIssuerBurn(params any) (any, error) {
	var req IssuerBurnRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_burn: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	expected, err := s.decodeExpected(kit, req.ExpectedValue)
	if err != nil {
		return nil, err
	}
	burned, err := kit.Issuer.Burn(p, expected...)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(burned)
	if err != nil {
		return nil, err
	}
	return IssuerBurnResponse{Burned: wire}, nil
}

func (s *Service) HandleIssuerClaim(params any) (any, error) {
	var req IssuerClaimRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_claim: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	expected, err := s.decodeExpected(kit, req.ExpectedValue)
	if err != nil {
		return nil, err
	}
	claimed, err := kit.Issuer.Claim(p, expected...)
	if err != nil {
		return nil, err
	}
	amt, err := kit.Issuer.AmountOf(claimed)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(amt)
	if err != nil {
		return nil, err
	}
	return IssuerClaimResponse{Payment: claimed.Ref(), Amount: wire}, nil
}

func (s *Service) HandleIssuerSplit(params any) (any, error) {
	var req IssuerSplitRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_split: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	amt, err := s.decodeAmount(kit, req.Value)
	if err != nil {
		return nil, err
	}
	a, b, err := kit.Issuer.Split(p, amt)
	if err != nil {
		return nil, err
	}
	return IssuerSplitResponse{Payments: refs([]payment.Payment{a, b})}, nil
}

func (s *Service) HandleIssuerSplitMany(params any) (any, error) {
	var req IssuerSplitManyRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_splitMany: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	amounts := make([]amount.Amount, len(req.Values))
	for i, raw := range req.Values {
		if amounts[i], err = s.decodeAmount(kit, raw); err != nil {
			return nil, err
		}
	}
	parts, err := kit.Issuer.SplitMany(p, amounts)
	if err != nil {
		return nil, err
	}
	return IssuerSplitManyResponse{Payments: refs(parts)}, nil
}

func (s *Service) HandleIssuerCombine(params any) (any, error) {
	var req IssuerCombineRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_combine: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	payments := make([]payment.Payment, len(req.Payments))
	for i, ref := range req.Payments {
		payments[i] = ref.Payment()
	}
	expected, err := s.decodeExpected(kit, req.ExpectedTotal)
	if err != nil {
		return nil, err
	}
	combined, err := kit.Issuer.Combine(payments, expected...)
	if err != nil {
		return nil, err
	}
	amt, err := kit.Issuer.AmountOf(combined)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(amt)
	if err != nil {
		return nil, err
	}
	return IssuerCombineResponse{Payment: combined.Ref(), Amount: wire}, nil
}

func (s *Service) HandleIssuerIsLive(params any) (any, error) {
	var req IssuerIsLiveRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_isLive: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	return IssuerIsLiveResponse{Live: kit.Issuer.IsLive(p)}, nil
}

func (s *Service) HandleIssuerAmountOf(params any) (any, error) {
	var req IssuerAmountOfRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for issuer_getAmountOf: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	p, err := requirePayment(req.Payment)
	if err != nil {
		return nil, err
	}
	amt, err := kit.Issuer.AmountOf(p)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(amt)
	if err != nil {
		return nil, err
	}
	return IssuerAmountOfResponse{Amount: wire}, nil
}
