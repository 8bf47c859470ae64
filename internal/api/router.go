// Package api implements the read-only status HTTP surface served next to
// the scheduler.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	serverconfig "github.com/offerwatch/offerwatch/internal/config/server"
	"github.com/offerwatch/offerwatch/internal/logger"
)

// NewRouter builds the gin router with all status routes registered.
func NewRouter(handler *StatusHandler, log logger.Interface) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/schedule", handler.GetSchedule)
	v1.GET("/catalogs/:marketID", handler.GetCatalog)

	return router
}

// NewServer wraps the router in an http.Server with the configured timeouts.
func NewServer(cfg *serverconfig.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
