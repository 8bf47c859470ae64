package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/logger"
)

// ScheduleReader reports the scheduler's persisted and in-memory state.
type ScheduleReader interface {
	Status(ctx context.Context) (*domain.ScheduleState, error)
}

// CatalogReader reads cached catalogs.
type CatalogReader interface {
	Get(ctx context.Context, marketID string) (*domain.Catalog, error)
}

// StatusHandler serves the read-only status endpoints.
type StatusHandler struct {
	schedule ScheduleReader
	catalogs CatalogReader
	log      logger.Interface
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(schedule ScheduleReader, catalogs CatalogReader, log logger.Interface) *StatusHandler {
	return &StatusHandler{
		schedule: schedule,
		catalogs: catalogs,
		log:      log.WithComponent("api"),
	}
}

// Health handles GET /health
func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSchedule handles GET /api/v1/schedule
func (h *StatusHandler) GetSchedule(c *gin.Context) {
	state, err := h.schedule.Status(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotArmed) {
			c.JSON(http.StatusOK, gin.H{"armed": false})
			return
		}
		h.log.Error("Failed to read schedule state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read schedule state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"armed":        true,
		"next_fire_at": state.NextFireAt,
		"last_outcome": state.LastOutcome,
		"updated_at":   state.UpdatedAt,
	})
}

// GetCatalog handles GET /api/v1/catalogs/:marketID
func (h *StatusHandler) GetCatalog(c *gin.Context) {
	marketID := c.Param("marketID")

	catalog, err := h.catalogs.Get(c.Request.Context(), marketID)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogNotCached) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no cached catalog for market"})
			return
		}
		h.log.Error("Failed to read cached catalog", "market_id", marketID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read cached catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"market_id":   catalog.MarketID,
		"valid_from":  catalog.ValidFrom,
		"valid_until": catalog.ValidUntil,
		"valid_now":   catalog.ValidAt(time.Now()),
		"offer_count": len(catalog.Offers),
	})
}
