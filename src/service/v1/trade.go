package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

func TransferAsset(ctx context.Context, svcCtx *svc.ServerCtx, caller, to common.Address, assetID uint32) error {
	return svcCtx.Market.TransferAsset(caller, to, assetID)
}

// OfferForSale lists an asset; onlySellTo is nil for an open offer.
func OfferForSale(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32, minPrice uint64, onlySellTo *common.Address) error {
	return svcCtx.Market.OfferForSale(caller, assetID, minPrice, onlySellTo)
}

func RevokeOffer(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32) error {
	return svcCtx.Market.RevokeOffer(caller, assetID)
}

func BuyAsset(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32, value uint64) error {
	return svcCtx.Market.BuyAsset(caller, assetID, value)
}

func EnterBid(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32, value uint64) error {
	return svcCtx.Market.EnterBid(caller, assetID, value)
}

func WithdrawBid(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32) error {
	return svcCtx.Market.WithdrawBid(caller, assetID)
}

func AcceptBid(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address, assetID uint32, minPrice uint64) error {
	return svcCtx.Market.AcceptBid(caller, assetID, minPrice)
}

func Withdraw(ctx context.Context, svcCtx *svc.ServerCtx, caller common.Address) error {
	return svcCtx.Market.Withdraw(caller)
}
