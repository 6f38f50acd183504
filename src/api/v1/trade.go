package v1

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/philipjonsen/cryptopunks/base/errcode"
	"github.com/philipjonsen/cryptopunks/base/xhttp"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
	service "github.com/philipjonsen/cryptopunks/src/service/v1"
	types "github.com/philipjonsen/cryptopunks/src/types/v1"
)

func TransferAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.TransferReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.TransferAsset(c.Request.Context(), svcCtx, mustAddr(req.Caller), mustAddr(req.To), idx); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func OfferForSaleHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.OfferReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		var onlySellTo *common.Address
		if req.OnlySellTo != "" {
			addr := mustAddr(req.OnlySellTo)
			onlySellTo = &addr
		}
		if err := service.OfferForSale(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx, req.MinPrice, onlySellTo); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func RevokeOfferHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.CallerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.RevokeOffer(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func BuyAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.ValueReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.BuyAsset(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx, req.Value); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func EnterBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.ValueReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.EnterBid(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx, req.Value); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func WithdrawBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.CallerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.WithdrawBid(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func AcceptBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		var req types.AcceptBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.AcceptBid(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx, req.MinPrice); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

func WithdrawHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CallerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.Withdraw(c.Request.Context(), svcCtx, mustAddr(req.Caller)); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}
