package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Fiscal code metrics
	FiscalCodesGenerated *prometheus.CounterVec
	FiscalCodesValidated *prometheus.CounterVec
	GenerationCacheHits  prometheus.Counter
	CadastralEntries     prometheus.Gauge

	// Optics metrics
	OpticsConversions *prometheus.CounterVec

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FiscalCodesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fiscal_code",
			Name:      "generated_total",
			Help:      "Fiscal code generation attempts by result",
		}, []string{"result"}),
		FiscalCodesValidated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fiscal_code",
			Name:      "validated_total",
			Help:      "Fiscal code validations by outcome",
		}, []string{"valid"}),
		GenerationCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fiscal_code",
			Name:      "cache_hits_total",
			Help:      "Generations served from the in-memory cache",
		}),
		CadastralEntries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cadastral",
			Name:      "entries",
			Help:      "Number of municipalities in the loaded cadastral table",
		}),

		OpticsConversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "optics",
			Name:      "conversions_total",
			Help:      "Optical conversions by kind",
		}, []string{"kind"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"method", "path", "status"}),
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "path", "type"}),
	}
}
