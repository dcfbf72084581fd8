package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "copo", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "copo", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "copo", Name: "import_rows_total", Help: "Bulk import rows by outcome",
	}, []string{"kind", "outcome"})
	RenderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "copo", Name: "render_duration_seconds", Help: "Exam paper render latency",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})
	LLMDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "copo", Name: "llm_duration_seconds", Help: "Question generation latency",
		Buckets: []float64{1, 2, 5, 10, 20, 40, 60, 120},
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ImportRows, RenderDuration, LLMDuration)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveImport(kind, outcome string, n int) {
	if n > 0 {
		ImportRows.WithLabelValues(kind, outcome).Add(float64(n))
	}
}

func ObserveRender(d time.Duration) { RenderDuration.Observe(d.Seconds()) }

func ObserveLLM(d time.Duration) { LLMDuration.Observe(d.Seconds()) }
