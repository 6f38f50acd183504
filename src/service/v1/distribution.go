package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

// AssignInitialOwner routes an administrative assignment to the
// ledger.
func AssignInitialOwner(ctx context.Context, svcCtx *svc.ServerCtx, caller, to common.Address, assetID uint32) error {
	return svcCtx.Market.AssignInitialOwner(caller, to, assetID)
}

// AssignInitialOwners applies a pairwise batch assignment.
func AssignInitialOwners(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, owners []common.Address, assetIDs []uint32) error {
	return svcCtx.Market.AssignInitialOwners(caller, owners, assetIDs)
}

// FinalizeDistribution closes the assigning phase for good.
func FinalizeDistribution(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address) error {
	return svcCtx.Market.FinalizeDistribution(caller)
}

// ClaimAsset claims a never-assigned asset for the caller.
func ClaimAsset(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32) error {
	return svcCtx.Market.ClaimAsset(caller, assetID)
}
