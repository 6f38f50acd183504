package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipjonsen/cryptopunks/base/logger/xzap"
	"github.com/philipjonsen/cryptopunks/src/market"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
	types "github.com/philipjonsen/cryptopunks/src/types/v1"
)

const statsCacheKey = "cache:punks:stats"

// GetAssetDetail aggregates owner, offer and bid for one asset.
func GetAssetDetail(ctx context.Context, svcCtx *svc.ServerCtx, assetID uint32) (*types.AssetDetail, error) {
	if assetID >= market.TotalSupply {
		return nil, errors.Wrap(market.ErrInvariantViolation, "asset index out of range")
	}

	detail := &types.AssetDetail{AssetID: assetID}
	if owner, ok := svcCtx.Market.OwnerOf(assetID); ok {
		detail.Owner = owner.Hex()
	}
	if offer, ok := svcCtx.Market.OfferOf(assetID); ok {
		info := &types.OfferInfo{
			Seller:   offer.Seller.Hex(),
			MinPrice: offer.MinPrice,
		}
		if offer.OnlySellTo != nil {
			info.OnlySellTo = offer.OnlySellTo.Hex()
		}
		detail.Offer = info
	}
	if bid, ok := svcCtx.Market.BidOf(assetID); ok {
		detail.Bid = &types.BidInfo{
			Bidder: bid.Bidder.Hex(),
			Value:  bid.Value,
		}
	}
	return detail, nil
}

// GetUserDetail aggregates one identity's holdings and pending
// withdrawal balance.
func GetUserDetail(ctx context.Context, svcCtx *svc.ServerCtx, addr common.Address) (*types.UserDetail, error) {
	return &types.UserDetail{
		Address:      addr.Hex(),
		HoldingCount: svcCtx.Market.BalanceOf(addr),
		Pending:      svcCtx.Market.PendingOf(addr),
	}, nil
}

// GetStats returns ledger-wide counters, served from cache when
// available.
func GetStats(ctx context.Context, svcCtx *svc.ServerCtx) (*market.Stats, error) {
	ttl := 0
	if svcCtx.C != nil {
		ttl = svcCtx.C.Market.StatsCacheSeconds
	}

	if svcCtx.KvStore != nil && ttl > 0 {
		var cached market.Stats
		ok, err := svcCtx.KvStore.ReadJson(statsCacheKey, &cached)
		if err != nil {
			xzap.WithContext(ctx).Warn("failed on read stats cache", zap.Error(err))
		} else if ok {
			return &cached, nil
		}
	}

	stats := svcCtx.Market.Snapshot()

	if svcCtx.KvStore != nil && ttl > 0 {
		if err := svcCtx.KvStore.WriteJson(statsCacheKey, stats, ttl); err != nil {
			xzap.WithContext(ctx).Warn("failed on write stats cache", zap.Error(err))
		}
	}
	return &stats, nil
}

// GetActivities pages through the persisted event index.
func GetActivities(ctx context.Context, svcCtx *svc.ServerCtx, assetID int64, user string, eventTypes []string, page, pageSize int) (*types.ActivityPage, error) {
	if svcCtx.Dao == nil {
		return nil, errors.New("activity index not configured")
	}

	records, total, err := svcCtx.Dao.QueryActivities(ctx, assetID, user, eventTypes, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query activities")
	}

	res := &types.ActivityPage{Total: total, Activities: make([]types.ActivityInfo, 0, len(records))}
	for _, r := range records {
		res.Activities = append(res.Activities, types.ActivityInfo{
			AssetID:      r.AssetID,
			ActivityType: r.ActivityType,
			Maker:        r.Maker,
			Taker:        r.Taker,
			Price:        r.Price.String(),
			EventTime:    r.EventTime,
		})
	}
	return res, nil
}
