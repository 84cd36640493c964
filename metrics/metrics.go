package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_brain_queries_total",
		Help: "Answered plain-text questions by query type and outcome",
	}, []string{"query_type", "outcome"})

	queryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asset_brain_query_latency_ms",
		Help:    "Latency of answering a question in milliseconds",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"query_type"})

	queryRows = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asset_brain_query_rows",
		Help:    "Number of result rows returned with an answer",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	}, []string{"query_type"})

	uploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_brain_uploads_total",
		Help: "Document uploads by outcome",
	}, []string{"outcome"})

	uploadBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "asset_brain_upload_bytes",
		Help:    "Size of accepted document uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_brain_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"route", "code"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(queriesTotal, queryLatency, queryRows, uploadsTotal, uploadBytes, httpRequests)
	})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveQuery records one answered question.
func ObserveQuery(queryType string, start time.Time, rows int, err error) {
	ensureRegistered()
	queriesTotal.WithLabelValues(queryType, outcome(err)).Inc()
	queryLatency.WithLabelValues(queryType).Observe(float64(time.Since(start).Milliseconds()))
	if err == nil {
		queryRows.WithLabelValues(queryType).Observe(float64(rows))
	}
}

// ObserveUpload records one upload attempt and, on success, its size.
func ObserveUpload(size int64, err error) {
	ensureRegistered()
	uploadsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		uploadBytes.Observe(float64(size))
	}
}

// IncHTTPRequest counts one served request.
func IncHTTPRequest(route, code string) {
	ensureRegistered()
	httpRequests.WithLabelValues(route, code).Inc()
}

// Handler serves the default registry in the exposition format.
func Handler() http.Handler {
	ensureRegistered()
	return promhttp.Handler()
}
