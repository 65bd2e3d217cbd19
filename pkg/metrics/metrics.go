package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Business metrics
	LeadWrites    *prometheus.CounterVec
	ImportedLeads prometheus.Counter
	LoginAttempts *prometheus.CounterVec

	// Pipeline snapshot, refreshed by the scheduler
	PipelineLeads *prometheus.GaugeVec
	PipelineValue *prometheus.GaugeVec

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	factory promauto.Factory
}

// New registers every metric with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 500000, 1000000},
			},
			[]string{"method", "path"},
		),

		LeadWrites: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lead_writes_total",
				Help: "Total number of lead writes",
			},
			[]string{"operation"}, // create, update, delete, assign
		),
		ImportedLeads: f.NewCounter(prometheus.CounterOpts{
			Name: "leads_imported_total",
			Help: "Total number of leads created by bulk import",
		}),
		LoginAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"status"}, // success, failed
		),
		PipelineLeads: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_leads",
				Help: "Number of leads per status at the last pipeline snapshot",
			},
			[]string{"status"},
		),
		PipelineValue: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_lead_value",
				Help: "Summed lead value per status at the last pipeline snapshot",
			},
			[]string{"status"},
		),

		CacheHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"view"}, // list, stats
		),
		CacheMisses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"view"},
		),
		factory: f,
	}

	return m
}

// WatchDBConnections exposes the number of open storage connections,
// sampled from open on every scrape.
func (m *Metrics) WatchDBConnections(open func() int) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "db_connections_open",
		Help: "Number of open database connections",
	}, func() float64 { return float64(open()) })
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, e.g. /api/leads/:id

			if req.ContentLength > 0 {
				m.HTTPRequestSize.WithLabelValues(req.Method, path).Observe(float64(req.ContentLength))
			}

			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, status).Observe(time.Since(start).Seconds())
			m.HTTPResponseSize.WithLabelValues(req.Method, path).Observe(float64(c.Response().Size))

			return nil
		}
	}
}

// LeadWritten counts one lead write.
func (m *Metrics) LeadWritten(op string) {
	m.LeadWrites.WithLabelValues(op).Inc()
}

// LeadsImported counts leads created by a bulk import.
func (m *Metrics) LeadsImported(n int) {
	m.ImportedLeads.Add(float64(n))
}

// CacheLookup counts a cache hit or miss for a lead view.
func (m *Metrics) CacheLookup(view string, hit bool) {
	if hit {
		m.CacheHits.WithLabelValues(view).Inc()
		return
	}
	m.CacheMisses.WithLabelValues(view).Inc()
}

// RecordLoginAttempt increments login attempts counter
func (m *Metrics) RecordLoginAttempt(success bool) {
	status := "failed"
	if success {
		status = "success"
	}
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// SetPipeline records the snapshot of one status.
func (m *Metrics) SetPipeline(status string, count int, value float64) {
	m.PipelineLeads.WithLabelValues(status).Set(float64(count))
	m.PipelineValue.WithLabelValues(status).Set(value)
}
