package methods

import (
	"context"
	"fmt"

	"github.com/LeJamon/goassetd/internal/server/utils"
)

func (s *Service) HandleLedgerSnapshot(params any) (any, error) {
	var req LedgerSnapshotRequest
	if params != nil {
		if err := utils.ConvertParams(params, &req); err != nil {
			return nil, fmt.Errorf("invalid params for ledger_snapshot: %v", err)
		}
	}

	ctx := context.Background()
	if req.Issuer != "" {
		seq, err := s.SnapshotIssuer(ctx, req.Issuer)
		if err != nil {
			return nil, err
		}
		return LedgerSnapshotResponse{Sequences: map[string]uint64{req.Issuer: seq}}, nil
	}

	seqs, err := s.SnapshotAll(ctx)
	if err != nil {
		return nil, err
	}
	return LedgerSnapshotResponse{Sequences: seqs}, nil
}
