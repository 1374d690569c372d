package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchRequestsTotal prometheus.Counter
	NoResultTotal       prometheus.Counter
	CacheHitsTotal      prometheus.Counter
	RateLimitDropsTotal prometheus.Counter

	DatasetLoadErrors   *prometheus.CounterVec
	DatasetLoadDuration *prometheus.HistogramVec
	DatasetRecords      *prometheus.GaugeVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// Create Prometheus collectors and register them
func NewMetrics(p *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holiday_search_requests_total",
			Help: "Total number of holiday searches",
		}),
		NoResultTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holiday_search_no_result_total",
			Help: "Searches that found no matching flight and hotel",
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holiday_cache_hits_total",
			Help: "Number of cache hits for search results",
		}),
		RateLimitDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "holiday_ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}),
		DatasetLoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Failed dataset loads per provider",
		}, []string{"provider"},
		),
		DatasetLoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dataset_load_duration_seconds",
				Help:    "Time taken to load flights and hotels",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		DatasetRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dataset_records",
				Help: "Records in the current dataset snapshot",
			},
			[]string{"dataset"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: p,
	}

	p.MustRegister(
		m.SearchRequestsTotal,
		m.NoResultTotal,
		m.CacheHitsTotal,
		m.RateLimitDropsTotal,
		m.DatasetLoadErrors,
		m.DatasetLoadDuration,
		m.DatasetRecords,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

func (m *Metrics) IncSearches()  { m.SearchRequestsTotal.Inc() }
func (m *Metrics) IncNoResult()  { m.NoResultTotal.Inc() }
func (m *Metrics) IncCacheHits() { m.CacheHitsTotal.Inc() }

func (m *Metrics) IncRateLimitDrops() { m.RateLimitDropsTotal.Inc() }

func (m *Metrics) ObserveDatasetLoad(provider string, seconds float64) {
	m.DatasetLoadDuration.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) IncDatasetLoadFailure(provider string) {
	m.DatasetLoadErrors.WithLabelValues(provider).Inc()
}

func (m *Metrics) SetDatasetSize(flights, hotels int) {
	m.DatasetRecords.WithLabelValues("flights").Set(float64(flights))
	m.DatasetRecords.WithLabelValues("hotels").Set(float64(hotels))
}

func (m *Metrics) ObserveHTTPRequestDuration(method string, path string, status string, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func (m *Metrics) IncHTTPRequestsTotal(method string, path string, status string) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
