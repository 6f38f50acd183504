package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/philipjonsen/cryptopunks/base/logger/xzap"
	"github.com/philipjonsen/cryptopunks/src/config"
	"github.com/philipjonsen/cryptopunks/src/service/svc"
)

// Platform carries the assembled application.
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
}

func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
	}, nil
}

// Start runs the HTTP server; blocks until the listener fails.
func (p *Platform) Start() error {
	xzap.WithContext(context.Background()).Info("punks market run",
		zap.String("port", p.config.Api.Port))
	return p.router.Run(p.config.Api.Port)
}
