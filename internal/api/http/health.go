package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/gin-gonic/gin"
)

// Pinger is anything whose backing connection can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// WishStatser reports wish generator counters
type WishStatser interface {
	Stats() wishes.Stats
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Storage   string        `json:"storage"`
	Wishes    *wishes.Stats `json:"wishes,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	storage     Pinger
	wishes      WishStatser
}

func NewHealthHandler(serviceName, version string, storage Pinger, wishStats WishStatser) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		storage:     storage,
		wishes:      wishStats,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageStatus := "disabled"
	if h.storage != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.storage.Ping(pingCtx); err != nil {
			storageStatus = "down"
		} else {
			storageStatus = "up"
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Storage:   storageStatus,
	}
	if h.wishes != nil {
		stats := h.wishes.Stats()
		resp.Wishes = &stats
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
