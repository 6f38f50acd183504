package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ethereum/go-ethereum/common"

	"github.com/philipjonsen/cryptopunks/src/api/middleware"
	v1 "github.com/philipjonsen/cryptopunks/src/api/v1"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))

	registerValidations()
	loadV1(r, svcCtx)
	return r
}

// registerValidations installs the eth_addr rule used by request
// binding tags.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eth_addr", func(fl validator.FieldLevel) bool {
			return common.IsHexAddress(fl.Field().String())
		})
	}
}

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	distribution := api.Group("/distribution")
	{
		distribution.POST("/assign", v1.AssignInitialOwnerHandler(svcCtx))
		distribution.POST("/assign-batch", v1.AssignInitialOwnersHandler(svcCtx))
		distribution.POST("/finalize", v1.FinalizeDistributionHandler(svcCtx))
	}

	assets := api.Group("/assets")
	{
		assets.GET("/:index", v1.AssetDetailHandler(svcCtx))
		assets.POST("/:index/claim", v1.ClaimAssetHandler(svcCtx))
		assets.POST("/:index/transfer", v1.TransferAssetHandler(svcCtx))
		assets.POST("/:index/offer", v1.OfferForSaleHandler(svcCtx))
		assets.DELETE("/:index/offer", v1.RevokeOfferHandler(svcCtx))
		assets.POST("/:index/buy", v1.BuyAssetHandler(svcCtx))
		assets.POST("/:index/bid", v1.EnterBidHandler(svcCtx))
		assets.DELETE("/:index/bid", v1.WithdrawBidHandler(svcCtx))
		assets.POST("/:index/accept-bid", v1.AcceptBidHandler(svcCtx))
	}

	api.GET("/users/:address", v1.UserDetailHandler(svcCtx))
	api.POST("/withdraw", v1.WithdrawHandler(svcCtx))
	api.GET("/stats", v1.StatsHandler(svcCtx))
	api.GET("/activities", v1.ActivitiesHandler(svcCtx))
}
