package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BreakerStater reports the backend circuit breaker state for readiness.
type BreakerStater interface {
	BreakerState() string
}

// Handler contains dependencies shared by the operational endpoints
type Handler struct {
	backend BreakerStater
}

// NewHandler creates a new handler instance
func NewHandler(backend BreakerStater) *Handler {
	return &Handler{backend: backend}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

// ReadinessCheck degrades when the backend breaker is open: the gateway is
// up but cannot usefully serve any surface.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	state := h.backend.BreakerState()
	if state == "open" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"reason": "hospital backend unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
