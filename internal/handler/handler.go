package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Readiness reports how many municipalities are available for generation.
type Readiness interface {
	CadastralEntries() int
}

// Handler serves the operational endpoints.
type Handler struct {
	readiness Readiness
	metrics   http.Handler
}

// NewHandler creates a new handler instance. Metrics are served from gatherer.
func NewHandler(readiness Readiness, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		readiness: readiness,
		metrics:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

// ReadinessCheck fails while the cadastral table is empty: no code can be
// generated without it.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	entries := h.readiness.CadastralEntries()
	if entries == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":            "not_ready",
			"cadastral_entries": 0,
			"time":              time.Now(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "ready",
		"cadastral_entries": entries,
		"time":              time.Now(),
	})
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
