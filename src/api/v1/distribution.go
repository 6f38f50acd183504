package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/philipjonsen/cryptopunks/base/errcode"
	"github.com/philipjonsen/cryptopunks/base/xhttp"
	service "github.com/philipjonsen/cryptopunks/src/service/v1"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
	types "github.com/philipjonsen/cryptopunks/src/types/v1"

	"github.com/ethereum/go-ethereum/common"
)

// AssignInitialOwnerHandler assigns one asset during distribution.
func AssignInitialOwnerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AssignReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.AssignInitialOwner(c.Request.Context(), svcCtx, mustAddr(req.Caller), mustAddr(req.To), req.AssetID); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// AssignInitialOwnersHandler assigns assets pairwise in one atomic
// batch.
func AssignInitialOwnersHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AssignBatchReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		owners := make([]common.Address, 0, len(req.Owners))
		for _, o := range req.Owners {
			owners = append(owners, mustAddr(o))
		}
		if err := service.AssignInitialOwners(c.Request.Context(), svcCtx, mustAddr(req.Caller), owners, req.AssetIDs); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// FinalizeDistributionHandler opens trading; one-shot.
func FinalizeDistributionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CallerReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		if err := service.FinalizeDistribution(c.Request.Context(), svcCtx, mustAddr(req.Caller)); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// ClaimAssetHandler claims a never-assigned asset for the caller.
func ClaimAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
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
		if err := service.ClaimAsset(c.Request.Context(), svcCtx, mustAddr(req.Caller), idx); err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}
