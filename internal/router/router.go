package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/optoclinic-api/internal/handler"
	"github.com/jwalitptl/optoclinic-api/internal/middleware"
	"github.com/jwalitptl/optoclinic-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	h       *handler.Handler
	fiscalH Handler
	opticsH Handler
	metrics *metrics.Metrics
	config  RouterConfig
}

type RouterConfig struct {
	Mode           string
	RequestTimeout time.Duration
	RateLimit      *middleware.RateLimiterConfig
	CORSConfig     middleware.CORSConfig
	MetricsEnabled bool
	MetricsPath    string
}

func NewRouter(
	h *handler.Handler,
	fiscalH Handler,
	opticsH Handler,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	engine := gin.New()

	r := &Router{
		engine:  engine,
		h:       h,
		fiscalH: fiscalH,
		opticsH: opticsH,
		metrics: m,
		config:  config,
	}

	// Recovery must be outermost and RequestID must precede everything that logs.
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
	)

	if config.RateLimit != nil {
		rateLimiter := middleware.NewRateLimiter(*config.RateLimit)
		engine.Use(rateLimiter.RateLimit())
	}

	engine.Use(middleware.Validation(middleware.DefaultValidationConfig()))

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	r.fiscalH.RegisterRoutes(api)
	r.opticsH.RegisterRoutes(api)

	if r.config.MetricsEnabled {
		r.engine.GET(r.config.MetricsPath, r.h.MetricsHandler)
	}
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			errType := "client"
			if c.Writer.Status() >= 500 {
				errType = "server"
			}
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, errType).Inc()
		}
	}
}
