// Package router assembles the gin engine: global middleware plus the
// dashboard routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/infrastructure/config"
	"github.com/tectle/backend/internal/infrastructure/logger"
	"github.com/tectle/backend/internal/interfaces/http/handler"
	"github.com/tectle/backend/internal/interfaces/http/middleware"
)

// Handlers groups the handlers mounted by New.
type Handlers struct {
	System *handler.SystemHandler
	Orders *handler.OrdersHandler
}

// New builds the HTTP engine with the standard middleware chain and all
// application routes.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		// SetTrustedProxies only fails on unparseable entries; surface
		// that at startup instead of silently trusting everyone.
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("invalid trusted proxy list", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORS(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api")
	{
		api.GET("/orders", h.Orders.List)
		api.POST("/orders/import", h.Orders.Import)
		api.GET("/report", h.Orders.Report)
	}

	return engine
}
