package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/pointsvc/internal/server/http/handlers"
	"github.com/ledgerkit/pointsvc/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PointFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	pointHandler := handlers.NewPointHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	engine.GET("/ping", healthHandler.Ping)

	point := engine.Group("/point")
	point.GET("/:id", pointHandler.Balance)
	point.GET("/:id/histories", pointHandler.Histories)
	point.PATCH("/:id/charge", pointHandler.Charge)
	point.PATCH("/:id/use", pointHandler.Use)

	return engine
}
