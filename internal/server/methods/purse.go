package methods

import (
	"fmt"

	"github.com/LeJamon/goassetd/internal/core/payment"
	"github.com/LeJamon/goassetd/internal/server/utils"
)

func (s *Service) purse(issuer string, id uint64) (*payment.IssuerKit, *payment.Purse, error) {
	kit, err := s.kit(issuer)
	if err != nil {
		return nil, nil, err
	}
	p, ok := kit.Issuer.PurseByID(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: issuer %q purse %d", ErrUnknownPurse, issuer, id)
	}
	return kit, p, nil
}

func (s *Service) HandlePurseCreate(params any) (any, error) {
	var req PurseCreateRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for purse_create: %v", err)
	}
	kit, err := s.kit(req.Issuer)
	if err != nil {
		return nil, err
	}
	purse := kit.Issuer.NewEmptyPurse()
	return PurseCreateResponse{Purse: purse.ID()}, nil
}

func (s *Service) HandlePurseDeposit(params any) (any, error) {
	var req PurseDepositRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for purse_deposit: %v", err)
	}
	kit, purse, err := s.purse(req.Issuer, req.Purse)
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
	deposited, err := purse.Deposit(p, expected...)
	if err != nil {
		return nil, err
	}
	depositedWire, err := EncodeAmount(deposited)
	if err != nil {
		return nil, err
	}
	balanceWire, err := EncodeAmount(purse.CurrentAmount())
	if err != nil {
		return nil, err
	}
	return PurseDepositResponse{Deposited: depositedWire, Balance: balanceWire}, nil
}

func (s *Service) HandlePurseWithdraw(params any) (any, error) {
	var req PurseWithdrawRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for purse_withdraw: %v", err)
	}
	kit, purse, err := s.purse(req.Issuer, req.Purse)
	if err != nil {
		return nil, err
	}
	amt, err := s.decodeAmount(kit, req.Value)
	if err != nil {
		return nil, err
	}
	withdrawn, err := purse.Withdraw(amt)
	if err != nil {
		return nil, err
	}
	balanceWire, err := EncodeAmount(purse.CurrentAmount())
	if err != nil {
		return nil, err
	}
	return PurseWithdrawResponse{Payment: withdrawn.Ref(), Balance: balanceWire}, nil
}

func (s *Service) HandlePurseBalance(params any) (any, error) {
	var req PurseBalanceRequest
	if err := utils.ConvertParams(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params for purse_balance: %v", err)
	}
	_, purse, err := s.purse(req.Issuer, req.Purse)
	if err != nil {
		return nil, err
	}
	wire, err := EncodeAmount(purse.CurrentAmount())
	if err != nil {
		return nil, err
	}
	return PurseBalanceResponse{Balance: wire}, nil
}
