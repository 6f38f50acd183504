package v1

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/philipjonsen/cryptopunks/base/errcode"
	"github.com/philipjonsen/cryptopunks/base/xhttp"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
	service "github.com/philipjonsen/cryptopunks/src/service/v1"
)

func AssetDetailHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, ok := parseAssetIndex(c)
		if !ok {
			return
		}
		res, err := service.GetAssetDetail(c.Request.Context(), svcCtx, idx)
		if err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func UserDetailHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("address")
		if !common.IsHexAddress(raw) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		res, err := service.GetUserDetail(c.Request.Context(), svcCtx, common.HexToAddress(raw))
		if err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

func StatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetStats(c.Request.Context(), svcCtx)
		if err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// ActivitiesHandler pages the persisted event index. Filters:
// asset_id, user, event_types (comma separated), page, page_size.
func ActivitiesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID := int64(-1)
		if raw := c.Query("asset_id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 0 {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			assetID = parsed
		}

		user := c.Query("user")
		if user != "" {
			if !common.IsHexAddress(user) {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			user = common.HexToAddress(user).Hex()
		}

		var eventTypes []string
		if raw := c.Query("event_types"); raw != "" {
			eventTypes = strings.Split(raw, ",")
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

		res, err := service.GetActivities(c.Request.Context(), svcCtx, assetID, user, eventTypes, page, pageSize)
		if err != nil {
			fail(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
