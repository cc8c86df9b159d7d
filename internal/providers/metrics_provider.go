package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Na1awut/NDLP/internal/structures"
)

// EngineStats is the narrow view the gauge functions read from the engine
// without the providers package depending on the services package.
type EngineStats interface {
	ProcessedTotal() int64
	IdentityCount() int
	LiveTokenCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncMessagesProcessed(platform string)
	IncAlertsRaised()
	IncAlertsSuppressed()
	IncLockTimeouts()
	IncExtractionFallbacks()
	IncCompositionFallbacks()
	ObserveEnergy(e float64)
	ObservePersistenceDuration(duration time.Duration)
	RegisterEngine(stats EngineStats)
}

type MetricsProvider struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	cacheHits            prometheus.Counter
	cacheMisses          prometheus.Counter
	messagesProcessed    *prometheus.CounterVec
	alertsRaised         prometheus.Counter
	alertsSuppressed     prometheus.Counter
	lockTimeouts         prometheus.Counter
	extractionFallbacks  prometheus.Counter
	compositionFallbacks prometheus.Counter
	energy               prometheus.Histogram
	persistenceDuration  prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits()   { m.cacheHits.Inc() }
func (m *MetricsProvider) IncCacheMisses() { m.cacheMisses.Inc() }

func (m *MetricsProvider) IncMessagesProcessed(platform string) {
	m.messagesProcessed.WithLabelValues(platform).Inc()
}

func (m *MetricsProvider) IncAlertsRaised()         { m.alertsRaised.Inc() }
func (m *MetricsProvider) IncAlertsSuppressed()     { m.alertsSuppressed.Inc() }
func (m *MetricsProvider) IncLockTimeouts()         { m.lockTimeouts.Inc() }
func (m *MetricsProvider) IncExtractionFallbacks()  { m.extractionFallbacks.Inc() }
func (m *MetricsProvider) IncCompositionFallbacks() { m.compositionFallbacks.Inc() }

func (m *MetricsProvider) ObserveEnergy(e float64) {
	m.energy.Observe(e)
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

// RegisterEngine hooks the gauge functions up once the engine exists; wire
// builds the metrics provider before the engine, so this is a second step.
func (m *MetricsProvider) RegisterEngine(stats EngineStats) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "evcd_engine_processed_total",
		Help: "Total number of processed messages since start",
	}, func() float64 {
		return float64(stats.ProcessedTotal())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "evcd_identities_total",
		Help: "Total number of canonical identities",
	}, func() float64 {
		return float64(stats.IdentityCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "evcd_link_tokens_live",
		Help: "Number of unexpired, unredeemed link tokens",
	}, func() float64 {
		return float64(stats.LiveTokenCount())
	})
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evcd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evcd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_cache_hits_total",
			Help: "Total number of status cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_cache_misses_total",
			Help: "Total number of status cache misses",
		}),

		messagesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "evcd_messages_processed_total",
			Help: "Messages run through the scoring pipeline",
		}, []string{"platform"}),

		alertsRaised: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_alerts_raised_total",
			Help: "Crisis alerts raised",
		}),

		alertsSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_alerts_suppressed_total",
			Help: "Crisis alerts suppressed by the cool-down",
		}),

		lockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_lock_timeouts_total",
			Help: "Identity critical sections that could not be acquired in time",
		}),

		extractionFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_extraction_fallbacks_total",
			Help: "Messages scored with the neutral feature vector",
		}),

		compositionFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "evcd_composition_fallbacks_total",
			Help: "Replies served from the fixed fallback text",
		}),

		energy: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evcd_energy",
			Help:    "Distribution of post-update energy values",
			Buckets: []float64{-10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10},
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evcd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncMessagesProcessed(_ string)                    {}
func (n *noopMetrics) IncAlertsRaised()                                 {}
func (n *noopMetrics) IncAlertsSuppressed()                             {}
func (n *noopMetrics) IncLockTimeouts()                                 {}
func (n *noopMetrics) IncExtractionFallbacks()                          {}
func (n *noopMetrics) IncCompositionFallbacks()                         {}
func (n *noopMetrics) ObserveEnergy(_ float64)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) RegisterEngine(_ EngineStats)                     {}
